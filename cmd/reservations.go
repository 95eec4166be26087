package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/cowork/internal/formatter"
	"github.com/desertthunder/cowork/internal/models"
	"github.com/desertthunder/cowork/internal/shared"
	"github.com/urfave/cli/v3"
)

// ReserveSecure submits an API-key authenticated reservation for a named user.
func (r *Runner) ReserveSecure(ctx context.Context, cmd *cli.Command) error {
	ctl, err := r.controller(ctx, nil)
	if err != nil {
		return err
	}

	req := models.SecureReservationRequest{
		UserName:        cmd.String("name"),
		SeatNumber:      cmd.Int("seat"),
		ReservationDate: cmd.String("date"),
	}

	r.logger.Info("submitting secure reservation", "user", req.UserName, "seat", req.SeatNumber, "date", req.ReservationDate)
	if !ctl.SecureReserve(ctx, req) {
		return errActionFailed
	}
	return nil
}

// ReservationsList lists stored reservations, optionally filtered.
func (r *Runner) ReservationsList(ctx context.Context, cmd *cli.Command) error {
	filter := models.ReservationFilter{
		UserName:        cmd.String("user"),
		SeatNumber:      cmd.Int("seat"),
		ReservationDate: cmd.String("date"),
	}
	if filter.ReservationDate != "" {
		if err := models.ValidateDate(filter.ReservationDate); err != nil {
			return fmt.Errorf("%w: %w", shared.ErrInvalidArgument, err)
		}
	}

	r.logger.Debug("listing reservations", "filter", filter)
	reservations, err := r.api.ListReservations(ctx, filter)
	if err != nil {
		return err
	}

	switch {
	case cmd.Bool("csv"):
		data, err := formatter.ReservationsToCSV(reservations)
		if err != nil {
			return err
		}
		return r.writeOrSave(cmd.String("output"), data)
	case cmd.Bool("json"):
		if reservations == nil {
			reservations = []models.Reservation{}
		}
		return r.writeJSON(reservations, cmd.Bool("pretty"))
	default:
		return r.writeBytes(formatter.ReservationsToText(reservations))
	}
}

// ReservationsGet prints one reservation.
func (r *Runner) ReservationsGet(ctx context.Context, cmd *cli.Command) error {
	id := cmd.IntArg("id")
	if id <= 0 {
		return fmt.Errorf("%w: reservation id", shared.ErrMissingArgument)
	}

	reservation, err := r.api.GetReservation(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(reservation, true)
	}
	return r.writeBytes(formatter.ReservationToText(*reservation))
}

// ReservationsCancel deletes one of the logged-in user's reservations.
func (r *Runner) ReservationsCancel(ctx context.Context, cmd *cli.Command) error {
	id := cmd.IntArg("id")
	if id <= 0 {
		return fmt.Errorf("%w: reservation id", shared.ErrMissingArgument)
	}

	ctl, err := r.session(ctx)
	if err != nil {
		return err
	}

	message, err := r.api.CancelReservation(ctx, ctl.Session().Token, id)
	if err != nil {
		return err
	}

	if message == "" {
		message = fmt.Sprintf("Reservation %d cancelled", id)
	}
	return r.writePlain("✓ %s\n", message)
}

// writeOrSave writes data to path when set, otherwise to the runner's output.
func (r *Runner) writeOrSave(path string, data []byte) error {
	if path == "" {
		return r.writeBytes(data)
	}

	if err := formatter.WriteFile(path, data); err != nil {
		return err
	}
	r.logger.Info("output saved", "path", path)
	return r.writePlain("✓ Saved to %s\n", path)
}
