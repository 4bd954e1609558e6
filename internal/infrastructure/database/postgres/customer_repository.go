package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"tablebook/internal/domain/customer"
	"tablebook/internal/infrastructure/monitoring"
	"tablebook/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
)

type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	if cust.ID == 0 {
		return r.createCustomer(ctx, cust)
	}
	return r.updateCustomer(ctx, cust)
}

func (r *CustomerRepository) createCustomer(ctx context.Context, cust *customer.Customer) error {
	defer monitoring.ObserveDBQuery("customer_insert", time.Now())
	r.logger.InfoContext(ctx, "Attempting to insert new customer", slog.String("name", cust.FullName()))

	query := `
        INSERT INTO customers (first_name, last_name, phone, notes)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	err := r.db.QueryRow(ctx, query,
		cust.FirstName,
		cust.LastName,
		cust.Phone,
		cust.Notes,
	).Scan(&cust.ID)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return nil
}

func (r *CustomerRepository) updateCustomer(ctx context.Context, cust *customer.Customer) error {
	defer monitoring.ObserveDBQuery("customer_update", time.Now())
	r.logger.InfoContext(ctx, "Attempting to update customer", slog.Int64("customerID", cust.ID))

	query := `
        UPDATE customers
        SET first_name = $1,
            last_name = $2,
            phone = $3,
            notes = $4
        WHERE id = $5`

	cmdTag, err := r.db.Exec(ctx, query,
		cust.FirstName,
		cust.LastName,
		cust.Phone,
		cust.Notes,
		cust.ID,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, customer likely not found")
		return apperrors.NewCustomerNotFound(cust.ID)
	}

	r.logger.InfoContext(ctx, "Customer updated successfully")
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	defer monitoring.ObserveDBQuery("customer_find_by_id", time.Now())
	r.logger.DebugContext(ctx, "Attempting to find customer by ID", slog.Int64("customerID", customerID))

	query := `
        SELECT id, first_name, last_name, phone, notes
        FROM customers
        WHERE id = $1`

	var cust customer.Customer
	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&cust.ID,
		&cust.FirstName,
		&cust.LastName,
		&cust.Phone,
		&cust.Notes,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Customer not found", slog.Int64("customerID", customerID))
			return nil, apperrors.NewCustomerNotFound(customerID)
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan customer by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer by ID: %w", apperrors.ErrDatabase, err)
	}

	return &cust, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	defer monitoring.ObserveDBQuery("customer_find_all", time.Now())
	r.logger.DebugContext(ctx, "Attempting to find all customers")

	query := `
        SELECT id, first_name, last_name, phone, notes
        FROM customers
        ORDER BY last_name, first_name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	return scanCustomers(rows, r.logger)
}

// searchConditions builds one (condition, parameter) pair per token so the
// positional placeholder index stays correct for any token count.
func searchConditions(tokens []string) (string, []any) {
	conditions := make([]string, 0, len(tokens))
	args := make([]any, 0, len(tokens))
	for i, token := range tokens {
		conditions = append(conditions, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", i+1, i+1))
		args = append(args, "%"+token+"%")
	}
	return strings.Join(conditions, " AND "), args
}

func (r *CustomerRepository) Search(ctx context.Context, tokens []string) ([]*customer.Customer, error) {
	if len(tokens) == 0 {
		return []*customer.Customer{}, nil
	}

	defer monitoring.ObserveDBQuery("customer_search", time.Now())
	r.logger.DebugContext(ctx, "Attempting to search customers", slog.Int("tokens", len(tokens)))

	where, args := searchConditions(tokens)
	query := fmt.Sprintf(`
        SELECT id, first_name, last_name, phone, notes
        FROM customers
        WHERE %s
        ORDER BY last_name, first_name`, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to search customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to search customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	return scanCustomers(rows, r.logger)
}

func (r *CustomerRepository) TopReservationHolders(ctx context.Context) ([]customer.VIPEntry, error) {
	defer monitoring.ObserveDBQuery("customer_top_reservation_holders", time.Now())
	r.logger.DebugContext(ctx, "Attempting to rank customers by reservation count")

	query := `
        SELECT c.id, c.first_name, c.last_name, COUNT(r.id) AS reservation_count
        FROM reservations r
        JOIN customers c ON r.customer_id = c.id
        GROUP BY c.id, c.first_name, c.last_name
        ORDER BY reservation_count DESC
        LIMIT 10`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query top reservation holders", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query top reservation holders: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	entries := make([]customer.VIPEntry, 0)
	for rows.Next() {
		var (
			entry     customer.VIPEntry
			firstName string
			lastName  string
		)
		if err := rows.Scan(&entry.CustomerID, &firstName, &lastName, &entry.ReservationCount); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan ranking row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan ranking row: %w", apperrors.ErrDatabase, err)
		}
		entry.FullName = fmt.Sprintf("%s, %s", lastName, firstName)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating ranking rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating ranking rows: %w", apperrors.ErrDatabase, err)
	}

	return entries, nil
}

func scanCustomers(rows pgx.Rows, logger *slog.Logger) ([]*customer.Customer, error) {
	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		var cust customer.Customer
		err := rows.Scan(
			&cust.ID,
			&cust.FirstName,
			&cust.LastName,
			&cust.Phone,
			&cust.Notes,
		)
		if err != nil {
			logger.Error("Failed to scan customer row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, &cust)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error iterating customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}

	return customers, nil
}

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {

		if pgErr.Code == "23503" {
			contextLogger.Warn("Database foreign key violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrInvalidArgument, pgErr.ConstraintName)
		}

		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}
