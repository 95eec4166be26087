package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/cowork/internal/controller"
	"github.com/desertthunder/cowork/internal/formatter"
	"github.com/desertthunder/cowork/internal/models"
	"github.com/desertthunder/cowork/internal/shared"
	"github.com/urfave/cli/v3"
)

// seatGrid is the JSON shape of `seats show`.
type seatGrid struct {
	Date      string        `json:"date"`
	Available int           `json:"available"`
	Seats     []models.Seat `json:"seats"`
}

func newSeatGrid(date string, seats []models.Seat) seatGrid {
	grid := seatGrid{Date: date, Seats: seats}
	for _, s := range seats {
		if s.Available {
			grid.Available++
		}
	}
	return grid
}

// SeatsShow selects a date, checks availability and prints the grid. Nothing is printed when
// the check fails.
func (r *Runner) SeatsShow(ctx context.Context, cmd *cli.Command) error {
	ctl, err := r.session(ctx)
	if err != nil {
		return err
	}

	date := cmd.String("date")
	if err := ctl.SetDate(date); err != nil {
		return err
	}
	if _, err := ctl.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to check availability: %w", err)
	}

	seats := ctl.Seats()

	switch {
	case cmd.Bool("csv"):
		data, err := formatter.SeatsToCSV(date, seats)
		if err != nil {
			return err
		}
		return r.writeOrSave(cmd.String("output"), data)
	case cmd.Bool("json"):
		return r.writeJSON(newSeatGrid(date, seats), cmd.Bool("pretty"))
	default:
		r.writePlainHeader("Seat Reservation")
		return r.writeBytes(formatter.SeatsToText(date, seats))
	}
}

// SeatsReserve reserves a seat for the logged-in user on the given date.
//
// Without --date the reservation is refused locally.
func (r *Runner) SeatsReserve(ctx context.Context, cmd *cli.Command) error {
	seat := cmd.Int("seat")
	if err := models.ValidateSeatNumber(seat); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidArgument, err)
	}

	ctl, err := r.session(ctx)
	if err != nil {
		return err
	}

	if err := ctl.SelectDate(ctx, cmd.String("date")); err != nil {
		return err
	}

	r.logger.Info("reserving seat", "seat", seat, "date", ctl.Date())
	if !ctl.SelectSeat(ctx, seat) {
		return errActionFailed
	}

	return r.writeBytes(formatter.SeatsToText(ctl.Date(), ctl.Seats()))
}

// SeatsWatch polls availability for a date until interrupted.
func (r *Runner) SeatsWatch(ctx context.Context, cmd *cli.Command) error {
	interval := cmd.Duration("interval")
	if interval == 0 {
		interval = r.config.Watch.Interval()
	}

	ctl, err := r.session(ctx)
	if err != nil {
		return err
	}

	date := cmd.String("date")
	if err := ctl.SelectDate(ctx, date); err != nil {
		return err
	}

	r.writePlain("→ Watching seats for %s every %v (Ctrl+C to stop)\n", date, interval)
	return r.watch(ctx, ctl, interval)
}

// watch prints every applied poll and returns nil once ctx is canceled.
func (r *Runner) watch(ctx context.Context, ctl *controller.Controller, interval time.Duration) error {
	updates := make(chan controller.WatchUpdate, 4)
	done := make(chan error, 1)

	go func() {
		done <- ctl.Watch(ctx, interval, updates)
	}()

	for {
		select {
		case update := <-updates:
			if update.Err != nil {
				r.writePlain("⚠ Poll %d failed: %v\n", update.Tick, update.Err)
				continue
			}
			if !update.Applied {
				continue
			}
			r.writePlainln("Poll %d at %s", update.Tick, time.Now().Format(time.TimeOnly))
			r.writeBytes(formatter.SeatsToText(update.Date, update.Seats))
		case err := <-done:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				r.logger.Debug("watch stopped", "reason", err)
				return nil
			}
			return err
		}
	}
}
