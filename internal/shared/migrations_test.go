package shared

import (
	"context"
	"database/sql"
	"testing"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	ConfigureDatabase(db, 1, 1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		if migrations[0].Name != "create_kv" {
			t.Errorf("expected first migration name create_kv, got %q", migrations[0].Name)
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db := newTestDB(t)

		applied, err := RunMigrations(ctx, db)
		if err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
		if len(applied) == 0 {
			t.Fatal("expected at least one migration to be applied")
		}

		if _, err := db.Exec("SELECT 1 FROM kv LIMIT 1"); err != nil {
			t.Errorf("kv table should exist after migrations: %v", err)
		}

		if err := RollbackMigration(ctx, db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to query schema_migrations after rollback: %v", err)
		}
		if count != len(applied)-1 {
			t.Errorf("expected %d applied migrations after rollback, got %d", len(applied)-1, count)
		}
	})

	t.Run("Rollback with nothing applied", func(t *testing.T) {
		db := newTestDB(t)
		if err := createMigrationsTable(ctx, db); err != nil {
			t.Fatalf("failed to create migrations table: %v", err)
		}
		if err := RollbackMigration(ctx, db); err == nil {
			t.Error("expected error when nothing is applied")
		}
	})

	t.Run("Idempotent Migrations", func(t *testing.T) {
		db := newTestDB(t)

		if _, err := RunMigrations(ctx, db); err != nil {
			t.Fatalf("failed to run migrations first time: %v", err)
		}

		applied, err := RunMigrations(ctx, db)
		if err != nil {
			t.Fatalf("failed to run migrations second time: %v", err)
		}
		if len(applied) != 0 {
			t.Errorf("expected no migrations on second run, got %v", applied)
		}
	})
}

func TestRemoveComments(t *testing.T) {
	got := removeComments("-- header\nCREATE TABLE t (id INT); -- trailing\n")
	if got != "CREATE TABLE t (id INT);" {
		t.Errorf("removeComments() = %q", got)
	}
}
