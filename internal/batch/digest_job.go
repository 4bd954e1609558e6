package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tablebook/internal/domain/reservation"
)

// DailyDigestJob logs a morning summary of the reservations starting in
// the next 24 hours so staff can plan the day. Read-only.
type DailyDigestJob struct {
	reservations reservation.Repository
	logger       *slog.Logger
	now          func() time.Time
}

func NewDailyDigestJob(reservations reservation.Repository, logger *slog.Logger) *DailyDigestJob {
	if reservations == nil || logger == nil {
		panic("DailyDigestJob dependencies cannot be nil")
	}
	return &DailyDigestJob{
		reservations: reservations,
		logger:       logger.With("job", "DailyDigest"),
		now:          time.Now,
	}
}

func (j *DailyDigestJob) Run(ctx context.Context) error {
	startTime := j.now()
	j.logger.InfoContext(ctx, "Starting daily reservation digest job.")

	from := startTime
	to := from.Add(24 * time.Hour)

	upcoming, err := j.reservations.FindStartingBetween(ctx, from, to)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to fetch upcoming reservations, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run digest, failed to fetch upcoming reservations: %w", err)
	}

	totalGuests := 0
	for _, res := range upcoming {
		totalGuests += res.NumGuests
		j.logger.InfoContext(ctx, "Upcoming reservation",
			slog.Int64("reservationID", res.ID),
			slog.String("customer", res.CustomerName),
			slog.String("startAt", res.FormattedStart()),
			slog.Int("numGuests", res.NumGuests),
		)
	}

	j.logger.InfoContext(ctx, "Daily reservation digest job finished.",
		slog.Int("reservations", len(upcoming)),
		slog.Int("totalGuests", totalGuests),
		slog.Duration("duration", time.Since(startTime)),
	)
	return nil
}
