package repository

import (
	"context"
	"fmt"

	"kitedesk/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// customerRepository implements the CustomerRepository interface using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

// GetAll retrieves all customers with pagination support.
func (r *customerRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Customer, error) {
	query := `
		SELECT id, name, email, phone, created_at
		FROM customers
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query customers")
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan customer row")
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// GetByID retrieves a single customer by its ID.
func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := `
		SELECT id, name, email, phone, created_at
		FROM customers
		WHERE id = $1
	`

	var c model.Customer
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("customer_id", id.String()).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return &c, nil
}
