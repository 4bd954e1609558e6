package reservation

import (
	"context"
	"time"
)

// UpcomingReservation is a read model joining a reservation to its
// customer's name, used by the daily digest job.
type UpcomingReservation struct {
	Reservation
	CustomerName string
}

type Repository interface {
	// Save inserts the reservation when it has no identifier yet, otherwise
	// updates guest count, start time and notes scoped to both the
	// reservation id and the owning customer id. An update whose customer
	// id no longer matches affects zero rows and never moves the row.
	Save(ctx context.Context, res *Reservation) error

	// FindByCustomer returns the reservations for one customer in storage's
	// natural order.
	FindByCustomer(ctx context.Context, customerID int64) ([]*Reservation, error)

	// FindStartingBetween returns reservations with from <= start_at < to,
	// joined to their customer's name, ordered by start time.
	FindStartingBetween(ctx context.Context, from, to time.Time) ([]UpcomingReservation, error)
}
