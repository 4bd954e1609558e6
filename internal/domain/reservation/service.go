package reservation

import (
	"context"
	"log/slog"
	"os"
	"time"

	"tablebook/internal/domain/customer"
	"tablebook/internal/infrastructure/monitoring"
)

type Service interface {
	ListForCustomer(ctx context.Context, customerID int64) ([]*Reservation, error)
	CreateReservation(ctx context.Context, customerID int64, numGuests int, startAt time.Time, notes string) (*Reservation, error)
}

var _ Service = (*reservationService)(nil)

type reservationService struct {
	repo      Repository
	customers customer.Repository
	logger    *slog.Logger
}

func NewService(repo Repository, customers customer.Repository, logger *slog.Logger) Service {
	if repo == nil {
		panic("reservation repository cannot be nil")
	}
	if customers == nil {
		panic("customer repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewService, using default stderr handler")
	}
	return &reservationService{
		repo:      repo,
		customers: customers,
		logger:    logger.With(slog.String("component", "reservationService")),
	}
}

func (s *reservationService) ListForCustomer(ctx context.Context, customerID int64) ([]*Reservation, error) {
	s.logger.DebugContext(ctx, "Listing reservations for customer", slog.Int64("customerID", customerID))
	return s.repo.FindByCustomer(ctx, customerID)
}

// CreateReservation validates the fields, checks that the customer exists
// and persists the reservation. Validation failures surface before any
// write is attempted.
func (s *reservationService) CreateReservation(ctx context.Context, customerID int64, numGuests int, startAt time.Time, notes string) (*Reservation, error) {
	s.logger.InfoContext(ctx, "Attempting to create reservation", slog.Int64("customerID", customerID))

	res, err := NewReservation(customerID, numGuests, startAt, notes)
	if err != nil {
		s.logger.WarnContext(ctx, "Reservation validation failed", slog.Any("error", err))
		return nil, err
	}

	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		s.logger.WarnContext(ctx, "Reservation rejected, customer lookup failed", slog.Any("error", err))
		return nil, err
	}

	if err := s.repo.Save(ctx, res); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save reservation", slog.Any("error", err))
		return nil, err
	}

	monitoring.Business.ReservationsCreatedTotal.Inc()
	s.logger.InfoContext(ctx, "Reservation created", slog.Int64("reservationID", res.ID))
	return res, nil
}
