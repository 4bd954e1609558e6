package customer

import (
	"context"
)

type Repository interface {
	// Save inserts the customer when it has no identifier yet and lets the
	// database assign one, otherwise updates all mutable fields by id.
	Save(ctx context.Context, cust *Customer) error

	// FindByID returns apperrors.CustomerNotFoundError when no row matches.
	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	// FindAll returns every customer ordered by (last name, first name).
	FindAll(ctx context.Context) ([]*Customer, error)

	// Search returns customers where every token matches the first or last
	// name case-insensitively, ordered by (last name, first name).
	Search(ctx context.Context, tokens []string) ([]*Customer, error)

	// TopReservationHolders returns at most ten customers ranked by
	// reservation count descending. Customers without reservations are
	// absent.
	TopReservationHolders(ctx context.Context) ([]VIPEntry, error)
}
