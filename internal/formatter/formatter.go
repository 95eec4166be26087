// package formatter renders seat grids and reservation listings as CSV, plain text or files
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/desertthunder/cowork/internal/models"
)

// SeatsToCSV converts a seat grid to CSV with columns: Date, Seat, Available
func SeatsToCSV(date string, seats []models.Seat) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Date", "Seat", "Available"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, seat := range seats {
		record := []string{date, strconv.Itoa(seat.Number), strconv.FormatBool(seat.Available)}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// SeatsToText draws the grid in rows of [models.GridColumns]. Reserved seats are marked with "x".
func SeatsToText(date string, seats []models.Seat) []byte {
	var buf bytes.Buffer

	if date == "" {
		date = "(none)"
	}
	fmt.Fprintf(&buf, "Date: %s\n\n", date)

	free := 0
	for i, seat := range seats {
		mark := " "
		if seat.Available {
			free++
		} else {
			mark = "x"
		}
		fmt.Fprintf(&buf, "[%s] %02d", mark, seat.Number)

		if (i+1)%models.GridColumns == 0 || i == len(seats)-1 {
			buf.WriteString("\n")
		} else {
			buf.WriteString("  ")
		}
	}

	fmt.Fprintf(&buf, "\nAvailable: %d/%d\n", free, len(seats))
	return buf.Bytes()
}

// ReservationsToCSV converts reservations to CSV with columns: ID, User, Seat, Date
func ReservationsToCSV(reservations []models.Reservation) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "User", "Seat", "Date"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, r := range reservations {
		record := []string{strconv.Itoa(r.ID), r.UserName, strconv.Itoa(r.SeatNumber.Int()), r.ReservationDate}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ReservationsToText renders reservations as an aligned table.
func ReservationsToText(reservations []models.Reservation) []byte {
	var buf bytes.Buffer

	if len(reservations) == 0 {
		buf.WriteString("No reservations found.\n")
		return buf.Bytes()
	}

	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSER\tSEAT\tDATE")
	for _, r := range reservations {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", r.ID, r.UserName, r.SeatNumber.Int(), r.ReservationDate)
	}
	w.Flush()

	fmt.Fprintf(&buf, "\nTotal: %d\n", len(reservations))
	return buf.Bytes()
}

// ReservationToText renders a single reservation as key/value lines.
func ReservationToText(r models.Reservation) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "ID:   %d\n", r.ID)
	fmt.Fprintf(&buf, "User: %s\n", r.UserName)
	fmt.Fprintf(&buf, "Seat: %d\n", r.SeatNumber.Int())
	fmt.Fprintf(&buf, "Date: %s\n", r.ReservationDate)
	if r.CreatedAt != nil {
		fmt.Fprintf(&buf, "Created: %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return buf.Bytes()
}

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
