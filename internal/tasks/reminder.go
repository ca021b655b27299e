package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"alphahunter/internal/ports"
)

// Reminder pushes the TODO digest to the operator once a day at a fixed
// local hour.
type Reminder struct {
	tracker  *Tracker
	notifier ports.Notifier
	hour     int
	location *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

// NewReminder constructs the daily reminder. A nil location means local time.
func NewReminder(tracker *Tracker, notifier ports.Notifier, hour int, location *time.Location, logger *slog.Logger) *Reminder {
	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reminder{
		tracker:  tracker,
		notifier: notifier,
		hour:     hour,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// NextFireTime returns the next instant at the reminder hour: today when the
// hour is still ahead, otherwise tomorrow.
func (r *Reminder) NextFireTime(now time.Time) time.Time {
	local := now.In(r.location)
	target := time.Date(local.Year(), local.Month(), local.Day(), r.hour, 0, 0, 0, r.location)
	if !target.After(local) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}

// RunOnce builds and sends the digest immediately.
func (r *Reminder) RunOnce(ctx context.Context) error {
	message, err := r.tracker.TodoMessage(ctx)
	if err != nil {
		return fmt.Errorf("build todo digest: %w", err)
	}
	if err := r.notifier.Send(ctx, message); err != nil {
		return fmt.Errorf("send todo digest: %w", err)
	}
	return nil
}

// Run loops until the context is cancelled: sleep to the next reminder hour,
// send the digest, repeat. Send failures are logged and the loop keeps going.
func (r *Reminder) Run(ctx context.Context) error {
	for {
		next := r.NextFireTime(r.now())
		r.logger.Debug("task reminder sleeping", "until", next)

		timer := time.NewTimer(next.Sub(r.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}

		if err := r.RunOnce(ctx); err != nil {
			r.logger.Warn("todo digest failed", "error", err)
		}
	}
}
