package repository

import (
	"context"
	"time"

	"kitedesk/internal/model"

	"github.com/google/uuid"
)

// ServiceRepository defines data access for services and their pricing
// configuration. Config getters return (nil, nil) when the service has no
// configuration row of that type.
type ServiceRepository interface {
	// GetAll retrieves all services with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Service, error)

	// GetByID retrieves a single service by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Service, error)

	// GetLessonConfig retrieves the lesson pricing configuration of a service.
	GetLessonConfig(ctx context.Context, serviceID uuid.UUID) (*model.LessonConfig, error)

	// GetRentalConfig retrieves the rental rate configuration of a service.
	GetRentalConfig(ctx context.Context, serviceID uuid.UUID) (*model.RentalConfig, error)

	// GetStorageConfig retrieves the storage rate configuration of a service.
	GetStorageConfig(ctx context.Context, serviceID uuid.UUID) (*model.StorageConfig, error)

	// GetPricingTiers retrieves a service's tiers ordered by from_hours ascending.
	GetPricingTiers(ctx context.Context, serviceID uuid.UUID) ([]model.PricingTier, error)
}

// OrderRepository defines data access for orders, their detail records and
// the scope queries the pricing engine aggregates over.
type OrderRepository interface {
	// GetAll retrieves all orders with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Order, error)

	// GetByID retrieves a single order by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetKind resolves which detail record exists for the order.
	GetKind(ctx context.Context, orderID uuid.UUID) (model.OrderKind, error)

	// GetLessonDetail retrieves the lesson detail of an order, or (nil, nil).
	GetLessonDetail(ctx context.Context, orderID uuid.UUID) (*model.LessonDetail, error)

	// GetRentalDetail retrieves the rental detail of an order, or (nil, nil).
	GetRentalDetail(ctx context.Context, orderID uuid.UUID) (*model.RentalDetail, error)

	// GetStorageDetail retrieves the storage detail of an order, or (nil, nil).
	GetStorageDetail(ctx context.Context, orderID uuid.UUID) (*model.StorageDetail, error)

	// ListServiceScope lists the customer's non-cancelled orders for one
	// service that carry a lesson detail.
	ListServiceScope(ctx context.Context, serviceID, customerID uuid.UUID) ([]model.ScopedOrder, error)

	// ListGroupScope lists the customer's non-cancelled lesson-category
	// orders in an order group.
	ListGroupScope(ctx context.Context, groupID, customerID uuid.UUID) ([]model.ScopedOrder, error)

	// ListCustomerScope lists all non-cancelled lesson-category orders of a
	// customer.
	ListCustomerScope(ctx context.Context, customerID uuid.UUID) ([]model.ScopedOrder, error)

	// ListGroupLessonOrders lists the orders of a group eligible for a
	// cascade recalculation.
	ListGroupLessonOrders(ctx context.Context, groupID uuid.UUID) ([]model.PendingOrder, error)

	// ListCustomerLessonOrders lists a customer's lesson orders eligible for
	// a cascade recalculation.
	ListCustomerLessonOrders(ctx context.Context, customerID uuid.UUID) ([]model.PendingOrder, error)

	// ListMissingPrices lists non-cancelled orders with no calculated price,
	// optionally restricted to one customer.
	ListMissingPrices(ctx context.Context, customerID *uuid.UUID) ([]model.PendingOrder, error)

	// UpdateCalculatedPrice persists the pricing engine's output fields for
	// one order. This is the engine's only mutation.
	UpdateCalculatedPrice(ctx context.Context, orderID uuid.UUID, price, pricePerHour, hours float64, at time.Time) error
}

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	// GetAll retrieves all customers with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Customer, error)

	// GetByID retrieves a single customer by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
}
