package repository

import (
	"context"
	"fmt"
	"time"

	"kitedesk/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

const orderColumns = `id, customer_id, service_id, group_id, cancelled,
	calculated_price, calculated_price_per_hour, hours, calculated_at, created_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.ServiceID,
		&o.GroupID,
		&o.Cancelled,
		&o.CalculatedPrice,
		&o.CalculatedPricePerHour,
		&o.Hours,
		&o.CalculatedAt,
		&o.CreatedAt,
	)
}

// GetAll retrieves all orders with pagination support.
func (r *orderRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// GetByID retrieves a single order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`

	var o model.Order
	err := scanOrder(r.pool.QueryRow(ctx, query, id), &o)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return &o, nil
}

// GetKind resolves which detail record exists for the order. Lesson wins over
// rental, rental over storage, matching how the order-entry side creates
// exactly one detail row per order.
func (r *orderRepository) GetKind(ctx context.Context, orderID uuid.UUID) (model.OrderKind, error) {
	query := `
		SELECT CASE
			WHEN EXISTS (SELECT 1 FROM lesson_details WHERE order_id = $1) THEN 'lesson'
			WHEN EXISTS (SELECT 1 FROM rental_details WHERE order_id = $1) THEN 'rental'
			WHEN EXISTS (SELECT 1 FROM storage_details WHERE order_id = $1) THEN 'storage'
			ELSE 'unknown'
		END
	`

	var kind model.OrderKind
	if err := r.pool.QueryRow(ctx, query, orderID).Scan(&kind); err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to resolve order kind")
		return model.KindUnknown, fmt.Errorf("failed to resolve order kind: %w", err)
	}

	return kind, nil
}

// GetLessonDetail retrieves the lesson detail of an order.
func (r *orderRepository) GetLessonDetail(ctx context.Context, orderID uuid.UUID) (*model.LessonDetail, error) {
	query := `
		SELECT order_id, starting, ending
		FROM lesson_details
		WHERE order_id = $1
	`

	var d model.LessonDetail
	err := r.pool.QueryRow(ctx, query, orderID).Scan(&d.OrderID, &d.Starting, &d.Ending)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query lesson detail")
		return nil, fmt.Errorf("failed to query lesson detail: %w", err)
	}

	return &d, nil
}

// GetRentalDetail retrieves the rental detail of an order.
func (r *orderRepository) GetRentalDetail(ctx context.Context, orderID uuid.UUID) (*model.RentalDetail, error) {
	query := `
		SELECT order_id, starting, ending, hourly, daily, weekly
		FROM rental_details
		WHERE order_id = $1
	`

	var d model.RentalDetail
	err := r.pool.QueryRow(ctx, query, orderID).Scan(&d.OrderID, &d.Starting, &d.Ending, &d.Hourly, &d.Daily, &d.Weekly)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query rental detail")
		return nil, fmt.Errorf("failed to query rental detail: %w", err)
	}

	return &d, nil
}

// GetStorageDetail retrieves the storage detail of an order.
func (r *orderRepository) GetStorageDetail(ctx context.Context, orderID uuid.UUID) (*model.StorageDetail, error) {
	query := `
		SELECT order_id, starting, ending, daily, weekly, monthly
		FROM storage_details
		WHERE order_id = $1
	`

	var d model.StorageDetail
	err := r.pool.QueryRow(ctx, query, orderID).Scan(&d.OrderID, &d.Starting, &d.Ending, &d.Daily, &d.Weekly, &d.Monthly)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query storage detail")
		return nil, fmt.Errorf("failed to query storage detail: %w", err)
	}

	return &d, nil
}

// queryScopedOrders runs a scope query returning (order_id, starting, ending)
// rows joined through lesson_details.
func (r *orderRepository) queryScopedOrders(ctx context.Context, query string, args ...any) ([]model.ScopedOrder, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query scope orders")
		return nil, fmt.Errorf("failed to query scope orders: %w", err)
	}
	defer rows.Close()

	var orders []model.ScopedOrder
	for rows.Next() {
		var o model.ScopedOrder
		if err := rows.Scan(&o.OrderID, &o.Starting, &o.Ending); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan scope order row")
			return nil, fmt.Errorf("failed to scan scope order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scope orders: %w", err)
	}

	return orders, nil
}

// ListServiceScope lists the customer's non-cancelled orders for one service
// that carry a lesson detail.
func (r *orderRepository) ListServiceScope(ctx context.Context, serviceID, customerID uuid.UUID) ([]model.ScopedOrder, error) {
	query := `
		SELECT o.id, ld.starting, ld.ending
		FROM orders o
		JOIN lesson_details ld ON ld.order_id = o.id
		WHERE o.service_id = $1
		  AND o.customer_id = $2
		  AND NOT o.cancelled
		ORDER BY ld.starting
	`
	return r.queryScopedOrders(ctx, query, serviceID, customerID)
}

// ListGroupScope lists the customer's non-cancelled lesson-category orders in
// an order group.
func (r *orderRepository) ListGroupScope(ctx context.Context, groupID, customerID uuid.UUID) ([]model.ScopedOrder, error) {
	query := `
		SELECT o.id, ld.starting, ld.ending
		FROM orders o
		JOIN lesson_details ld ON ld.order_id = o.id
		JOIN services s ON s.id = o.service_id
		WHERE o.group_id = $1
		  AND o.customer_id = $2
		  AND NOT o.cancelled
		  AND s.category = 'lessons'
		ORDER BY ld.starting
	`
	return r.queryScopedOrders(ctx, query, groupID, customerID)
}

// ListCustomerScope lists all non-cancelled lesson-category orders of a
// customer.
func (r *orderRepository) ListCustomerScope(ctx context.Context, customerID uuid.UUID) ([]model.ScopedOrder, error) {
	query := `
		SELECT o.id, ld.starting, ld.ending
		FROM orders o
		JOIN lesson_details ld ON ld.order_id = o.id
		JOIN services s ON s.id = o.service_id
		WHERE o.customer_id = $1
		  AND NOT o.cancelled
		  AND s.category = 'lessons'
		ORDER BY ld.starting
	`
	return r.queryScopedOrders(ctx, query, customerID)
}

// queryPendingOrders runs a query returning (order_id, service_id, customer_id) rows.
func (r *orderRepository) queryPendingOrders(ctx context.Context, query string, args ...any) ([]model.PendingOrder, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query pending orders")
		return nil, fmt.Errorf("failed to query pending orders: %w", err)
	}
	defer rows.Close()

	var orders []model.PendingOrder
	for rows.Next() {
		var o model.PendingOrder
		if err := rows.Scan(&o.OrderID, &o.ServiceID, &o.CustomerID); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan pending order row")
			return nil, fmt.Errorf("failed to scan pending order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending orders: %w", err)
	}

	return orders, nil
}

// ListGroupLessonOrders lists the orders of a group eligible for a cascade
// recalculation.
func (r *orderRepository) ListGroupLessonOrders(ctx context.Context, groupID uuid.UUID) ([]model.PendingOrder, error) {
	query := `
		SELECT o.id, o.service_id, o.customer_id
		FROM orders o
		JOIN lesson_details ld ON ld.order_id = o.id
		WHERE o.group_id = $1
		  AND NOT o.cancelled
		ORDER BY ld.starting
	`
	return r.queryPendingOrders(ctx, query, groupID)
}

// ListCustomerLessonOrders lists a customer's lesson orders eligible for a
// cascade recalculation.
func (r *orderRepository) ListCustomerLessonOrders(ctx context.Context, customerID uuid.UUID) ([]model.PendingOrder, error) {
	query := `
		SELECT o.id, o.service_id, o.customer_id
		FROM orders o
		JOIN lesson_details ld ON ld.order_id = o.id
		JOIN services s ON s.id = o.service_id
		WHERE o.customer_id = $1
		  AND NOT o.cancelled
		  AND s.category = 'lessons'
		ORDER BY ld.starting
	`
	return r.queryPendingOrders(ctx, query, customerID)
}

// ListMissingPrices lists non-cancelled orders with no calculated price,
// optionally restricted to one customer.
func (r *orderRepository) ListMissingPrices(ctx context.Context, customerID *uuid.UUID) ([]model.PendingOrder, error) {
	if customerID != nil {
		query := `
			SELECT id, service_id, customer_id
			FROM orders
			WHERE calculated_price IS NULL
			  AND NOT cancelled
			  AND customer_id = $1
			ORDER BY created_at
		`
		return r.queryPendingOrders(ctx, query, *customerID)
	}

	query := `
		SELECT id, service_id, customer_id
		FROM orders
		WHERE calculated_price IS NULL
		  AND NOT cancelled
		ORDER BY created_at
	`
	return r.queryPendingOrders(ctx, query)
}

// UpdateCalculatedPrice persists the pricing engine's output fields for one
// order.
func (r *orderRepository) UpdateCalculatedPrice(ctx context.Context, orderID uuid.UUID, price, pricePerHour, hours float64, at time.Time) error {
	query := `
		UPDATE orders
		SET calculated_price = $2,
		    calculated_price_per_hour = $3,
		    hours = $4,
		    calculated_at = $5
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, orderID, price, pricePerHour, hours, at)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID.String()).
			Msg("failed to update calculated price")
		return fmt.Errorf("failed to update calculated price: %w", err)
	}

	r.logger.Debug().
		Str("order_id", orderID.String()).
		Float64("price", price).
		Float64("price_per_hour", pricePerHour).
		Float64("hours", hours).
		Msg("calculated price persisted")

	return nil
}
