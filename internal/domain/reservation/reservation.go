package reservation

import (
	"errors"
	"time"

	"tablebook/internal/pkg/apperrors"
)

// Reservation is one booked party for a customer. ID is zero until the
// repository persists the record.
type Reservation struct {
	ID         int64
	CustomerID int64
	NumGuests  int
	StartAt    time.Time
	Notes      string
}

// NewReservation validates every field before constructing the value, so a
// reservation that fails validation never exists, not even transiently.
// All field failures are reported together in the returned error.
func NewReservation(customerID int64, numGuests int, startAt time.Time, notes string) (*Reservation, error) {
	var errs []error

	if customerID <= 0 {
		errs = append(errs, apperrors.NewValidationError("customerId", "a reservation requires a customer"))
	}
	if numGuests < 1 {
		errs = append(errs, apperrors.NewValidationError("numGuests", "cannot make a reservation for fewer than 1 guest"))
	}
	if startAt.IsZero() {
		errs = append(errs, apperrors.NewValidationError("startAt", "start date and time must be provided"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Reservation{
		CustomerID: customerID,
		NumGuests:  numGuests,
		StartAt:    startAt,
		Notes:      notes,
	}, nil
}

// ChangeCustomer assigns the owning customer. The linkage is immutable: a
// reservation that already belongs to a customer cannot be moved.
func (r *Reservation) ChangeCustomer(customerID int64) error {
	if r.CustomerID != 0 {
		return apperrors.NewValidationError("customerId", "customer id cannot be changed once set")
	}
	if customerID <= 0 {
		return apperrors.NewValidationError("customerId", "a reservation requires a customer")
	}
	r.CustomerID = customerID
	return nil
}

// FormattedStart renders the start timestamp for display, e.g.
// "January 2, 2006, 3:04 PM".
func (r *Reservation) FormattedStart() string {
	return r.StartAt.Format("January 2, 2006, 3:04 PM")
}
