package customer

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"tablebook/internal/infrastructure/monitoring"
	"tablebook/internal/pkg/apperrors"
)

type Service interface {
	ListCustomers(ctx context.Context) ([]*Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	SearchCustomers(ctx context.Context, query string) ([]*Customer, error)
	TopReservationHolders(ctx context.Context) ([]VIPEntry, error)
	CreateCustomer(ctx context.Context, firstName, lastName, phone, notes string) (*Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, firstName, lastName, phone, notes string) (*Customer, error)
}

var _ Service = (*customerService)(nil)

type customerService struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) Service {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewService, using default stderr handler")
	}
	return &customerService{
		repo:   repo,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.DebugContext(ctx, "Listing all customers")
	return s.repo.FindAll(ctx)
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	if customerID <= 0 {
		return nil, apperrors.NewCustomerNotFound(customerID)
	}
	return s.repo.FindByID(ctx, customerID)
}

// SearchCustomers tokenizes the query on whitespace. An empty query yields
// an empty result without touching storage.
func (s *customerService) SearchCustomers(ctx context.Context, query string) ([]*Customer, error) {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		s.logger.DebugContext(ctx, "Empty search query, skipping storage")
		return []*Customer{}, nil
	}
	s.logger.InfoContext(ctx, "Searching customers", slog.Int("tokens", len(tokens)))
	return s.repo.Search(ctx, tokens)
}

func (s *customerService) TopReservationHolders(ctx context.Context) ([]VIPEntry, error) {
	s.logger.DebugContext(ctx, "Fetching top reservation holders")
	monitoring.Business.VIPQueriesTotal.Inc()
	return s.repo.TopReservationHolders(ctx)
}

func (s *customerService) CreateCustomer(ctx context.Context, firstName, lastName, phone, notes string) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create new customer")

	cust, err := buildCustomer(firstName, lastName, phone, notes)
	if err != nil {
		s.logger.WarnContext(ctx, "Customer input validation failed", slog.Any("error", err))
		return nil, err
	}

	if err := s.repo.Save(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save new customer", slog.Any("error", err))
		return nil, err
	}

	monitoring.Business.CustomersCreatedTotal.Inc()
	s.logger.InfoContext(ctx, "Customer created", slog.Int64("customerID", cust.ID))
	return cust, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, firstName, lastName, phone, notes string) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to update customer", slog.Int64("customerID", customerID))

	cust, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	updated, err := buildCustomer(firstName, lastName, phone, notes)
	if err != nil {
		s.logger.WarnContext(ctx, "Customer input validation failed", slog.Any("error", err))
		return nil, err
	}

	cust.FirstName = updated.FirstName
	cust.LastName = updated.LastName
	cust.Phone = updated.Phone
	cust.Notes = updated.Notes

	if err := s.repo.Save(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save updated customer", slog.Any("error", err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "Customer updated", slog.Int64("customerID", cust.ID))
	return cust, nil
}

func buildCustomer(firstName, lastName, phone, notes string) (*Customer, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if firstName == "" {
		return nil, apperrors.NewValidationError("firstName", "first name cannot be empty")
	}
	if lastName == "" {
		return nil, apperrors.NewValidationError("lastName", "last name cannot be empty")
	}

	return NewCustomer(firstName, lastName, strings.TrimSpace(phone), notes), nil
}
