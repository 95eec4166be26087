package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/desertthunder/cowork/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the example configuration to the given path. With --effective it writes
// the configuration in use instead, with .env and environment overrides applied.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		configPath = r.configPath
	}
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if cmd.Bool("effective") {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists at %s", configPath)
		}
		r.logger.Info("saving effective config", "path", configPath)
		if err := shared.SaveConfig(configPath, r.config); err != nil {
			return err
		}
		return r.writePlain("✓ Effective config written to %s\n", configPath)
	}

	r.logger.Info("creating config file from template", "path", configPath)
	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.writePlain("✓ Config written to %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Set api.base_url (or API_BASE_URL) to your reservation server\n")
	r.writePlain("2. Run 'cowork setup database' to create the token store\n")
	return nil
}

// SetupDatabase initializes the SQLite token store and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	db, path, err := r.openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Info("running database migrations", "path", path)
	applied, err := shared.RunMigrations(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if len(applied) == 0 {
		return r.writePlain("✓ Database is up to date: %s\n", path)
	}

	r.logger.Infof("setup complete for database: %v", path)
	return r.writePlain("✓ Applied %d migration(s) to %s\n", len(applied), path)
}

// RollbackDatabase reverts the most recently applied migration.
func (r *Runner) RollbackDatabase(ctx context.Context, cmd *cli.Command) error {
	db, path, err := r.openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Info("rolling back last migration", "path", path)
	if err := shared.RollbackMigration(ctx, db); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	return r.writePlain("✓ Rolled back last migration on %s\n", path)
}

func (r *Runner) openDatabase(cmd *cli.Command) (*sql.DB, string, error) {
	path := cmd.String("path")
	if path == "" {
		path = r.config.Store.Path
	}
	if path == "" {
		return nil, "", fmt.Errorf("%w: store.path is not set", shared.ErrMissingConfig)
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Store.MaxOpenConns, r.config.Store.MaxIdleConns)

	return db, path, nil
}
