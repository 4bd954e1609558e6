package reservation

import (
	"testing"
	"time"

	"tablebook/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

var validStart = time.Date(2026, time.September, 12, 19, 30, 0, 0, time.UTC)

func TestNewReservationValidation(t *testing.T) {
	tests := []struct {
		name       string
		customerID int64
		numGuests  int
		startAt    time.Time
		wantErr    bool
	}{
		{"valid with one guest", 1, 1, validStart, false},
		{"valid with several guests", 1, 8, validStart, false},
		{"zero guests", 1, 0, validStart, true},
		{"negative guests", 1, -3, validStart, true},
		{"zero start time", 1, 2, time.Time{}, true},
		{"missing customer", 0, 2, validStart, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewReservation(tt.customerID, tt.numGuests, tt.startAt, "")
			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				assert.Nil(t, res, "an invalid reservation must never exist")
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, res)
				assert.Equal(t, int64(0), res.ID)
			}
		})
	}
}

func TestNewReservationReportsAllFieldFailures(t *testing.T) {
	_, err := NewReservation(0, 0, time.Time{}, "")
	assert.Error(t, err)

	var ve *apperrors.ValidationError
	assert.ErrorAs(t, err, &ve)

	// Each violated field appears in the joined error.
	msg := err.Error()
	assert.Contains(t, msg, "customerId")
	assert.Contains(t, msg, "numGuests")
	assert.Contains(t, msg, "startAt")
}

func TestChangeCustomer(t *testing.T) {
	t.Run("first assignment succeeds", func(t *testing.T) {
		res := &Reservation{}
		err := res.ChangeCustomer(5)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), res.CustomerID)
	})

	t.Run("second assignment fails", func(t *testing.T) {
		res := &Reservation{CustomerID: 5}
		err := res.ChangeCustomer(6)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, int64(5), res.CustomerID, "the linkage must not change")
	})

	t.Run("non-positive customer id fails", func(t *testing.T) {
		res := &Reservation{}
		err := res.ChangeCustomer(0)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestFormattedStart(t *testing.T) {
	res := &Reservation{StartAt: time.Date(2026, time.March, 7, 18, 5, 0, 0, time.UTC)}
	assert.Equal(t, "March 7, 2026, 6:05 PM", res.FormattedStart())
}
