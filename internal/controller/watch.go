package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/cowork/internal/models"
	"github.com/desertthunder/cowork/internal/shared"
	"golang.org/x/time/rate"
)

// WatchUpdate reports one availability poll.
type WatchUpdate struct {
	Tick    int
	Date    string
	Applied bool          // response was current and reached the grid
	Seats   []models.Seat // grid after the poll
	Err     error
}

// Watch re-runs the availability check at most once per interval until ctx is done.
//
// Poll failures are logged and reported on updates; they never stop the loop. Updates are
// dropped when the channel is full. Returns ctx.Err() on cancellation.
func (c *Controller) Watch(ctx context.Context, interval time.Duration, updates chan<- WatchUpdate) error {
	if interval <= 0 {
		return fmt.Errorf("%w: watch interval must be positive", shared.ErrInvalidArgument)
	}

	limiter := rate.NewLimiter(rate.Every(interval), 1)

	for tick := 1; ; tick++ {
		if err := limiter.Wait(ctx); err != nil {
			// Wait gives up early when the deadline falls before the next token.
			if ctx.Err() == nil {
				<-ctx.Done()
			}
			return ctx.Err()
		}

		applied, err := c.Refresh(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("availability poll failed", "tick", tick, "error", err)
		}

		c.mu.Lock()
		update := WatchUpdate{Tick: tick, Date: c.date, Applied: applied, Seats: c.snapshotLocked(), Err: err}
		c.mu.Unlock()

		sendUpdate(updates, update)
	}
}

func sendUpdate(updates chan<- WatchUpdate, update WatchUpdate) {
	if updates == nil {
		return
	}
	select {
	case updates <- update:
	default:
	}
}
