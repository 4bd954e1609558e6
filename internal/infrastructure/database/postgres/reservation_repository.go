package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/infrastructure/monitoring"
	"tablebook/internal/pkg/apperrors"
)

type ReservationRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ reservation.Repository = (*ReservationRepository)(nil)

func NewReservationRepository(db DBPool, logger *slog.Logger) *ReservationRepository {
	if db == nil {
		panic("DBPool cannot be nil for ReservationRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewReservationRepository, using default stderr handler")
	}
	return &ReservationRepository{
		db:     db,
		logger: logger.With("component", "ReservationRepository"),
	}
}

func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	if res == nil {
		return fmt.Errorf("%w: reservation cannot be nil", apperrors.ErrInvalidArgument)
	}

	if res.ID == 0 {
		return r.createReservation(ctx, res)
	}
	return r.updateReservation(ctx, res)
}

func (r *ReservationRepository) createReservation(ctx context.Context, res *reservation.Reservation) error {
	defer monitoring.ObserveDBQuery("reservation_insert", time.Now())
	r.logger.InfoContext(ctx, "Attempting to insert new reservation", slog.Int64("customerID", res.CustomerID))

	query := `
        INSERT INTO reservations (customer_id, num_guests, start_at, notes)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	err := r.db.QueryRow(ctx, query,
		res.CustomerID,
		res.NumGuests,
		res.StartAt,
		res.Notes,
	).Scan(&res.ID)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		r.logger.ErrorContext(ctx, "Failed to insert reservation", slog.Any("error", err))
		return translatedErr
	}

	r.logger.InfoContext(ctx, "Reservation inserted successfully", slog.Int64("reservationID", res.ID))
	return nil
}

// updateReservation is scoped to both the reservation id and the owning
// customer id. If the row's customer id was changed out-of-band the update
// matches zero rows; the reservation is never moved between customers.
func (r *ReservationRepository) updateReservation(ctx context.Context, res *reservation.Reservation) error {
	defer monitoring.ObserveDBQuery("reservation_update", time.Now())
	r.logger.InfoContext(ctx, "Attempting to update reservation", slog.Int64("reservationID", res.ID))

	query := `
        UPDATE reservations
        SET num_guests = $1,
            start_at = $2,
            notes = $3
        WHERE id = $4 AND customer_id = $5`

	cmdTag, err := r.db.Exec(ctx, query,
		res.NumGuests,
		res.StartAt,
		res.Notes,
		res.ID,
		res.CustomerID,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update reservation", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update reservation: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, reservation id and customer id did not match")
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Reservation updated successfully")
	return nil
}

func (r *ReservationRepository) FindByCustomer(ctx context.Context, customerID int64) ([]*reservation.Reservation, error) {
	defer monitoring.ObserveDBQuery("reservation_find_by_customer", time.Now())
	r.logger.DebugContext(ctx, "Attempting to find reservations for customer", slog.Int64("customerID", customerID))

	query := `
        SELECT id, customer_id, num_guests, start_at, notes
        FROM reservations
        WHERE customer_id = $1`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query reservations", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query reservations: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	reservations := make([]*reservation.Reservation, 0)
	for rows.Next() {
		var res reservation.Reservation
		err := rows.Scan(
			&res.ID,
			&res.CustomerID,
			&res.NumGuests,
			&res.StartAt,
			&res.Notes,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan reservation row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan reservation row: %w", apperrors.ErrDatabase, err)
		}
		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating reservation rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating reservation rows: %w", apperrors.ErrDatabase, err)
	}

	return reservations, nil
}

func (r *ReservationRepository) FindStartingBetween(ctx context.Context, from, to time.Time) ([]reservation.UpcomingReservation, error) {
	defer monitoring.ObserveDBQuery("reservation_find_starting_between", time.Now())
	r.logger.DebugContext(ctx, "Attempting to find reservations in window", slog.Time("from", from), slog.Time("to", to))

	query := `
        SELECT r.id, r.customer_id, r.num_guests, r.start_at, r.notes, c.first_name, c.last_name
        FROM reservations r
        JOIN customers c ON r.customer_id = c.id
        WHERE r.start_at >= $1 AND r.start_at < $2
        ORDER BY r.start_at`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query upcoming reservations", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query upcoming reservations: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	upcoming := make([]reservation.UpcomingReservation, 0)
	for rows.Next() {
		var (
			entry     reservation.UpcomingReservation
			firstName string
			lastName  string
		)
		err := rows.Scan(
			&entry.ID,
			&entry.CustomerID,
			&entry.NumGuests,
			&entry.StartAt,
			&entry.Notes,
			&firstName,
			&lastName,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan upcoming reservation row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan upcoming reservation row: %w", apperrors.ErrDatabase, err)
		}
		entry.CustomerName = fmt.Sprintf("%s, %s", lastName, firstName)
		upcoming = append(upcoming, entry)
	}

	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating upcoming reservation rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating upcoming reservation rows: %w", apperrors.ErrDatabase, err)
	}

	return upcoming, nil
}
