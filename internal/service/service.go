package service

import (
	"context"

	"kitedesk/internal/model"
	"kitedesk/internal/pricing"

	"github.com/google/uuid"
)

// CustomerService defines operations for customer management.
type CustomerService interface {
	// GetAll retrieves all customers with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Customer, error)

	// GetByID retrieves a single customer by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
}

// CatalogService defines operations for browsing services and their tiers.
type CatalogService interface {
	// GetAll retrieves all services with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Service, error)

	// GetByID retrieves a single service with its pricing tiers.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Service, []model.PricingTier, error)
}

// OrderService defines read operations for orders.
type OrderService interface {
	// GetAll retrieves all orders with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Order, error)

	// GetByID retrieves a single order by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
}

// PricingService exposes the pricing engine to the HTTP surface.
type PricingService interface {
	// CalculateOrderPrice prices one order, resolving its service and
	// customer from the order row.
	CalculateOrderPrice(ctx context.Context, orderID uuid.UUID) (*model.PriceResult, error)

	// PreviewTierPrice matches a quantity against an ad-hoc tier set without
	// touching any order.
	PreviewTierPrice(quantity float64, tiers []model.PricingTier) pricing.TierMatch

	// CalculateMissingPrices prices every order missing a calculated price.
	CalculateMissingPrices(ctx context.Context, customerID *uuid.UUID) (*model.BatchResult, error)

	// RecalculateGroupPrices re-prices every lesson order in a group.
	RecalculateGroupPrices(ctx context.Context, groupID uuid.UUID) (*model.BatchResult, error)

	// RecalculateCustomerPrices re-prices every lesson order of a customer.
	RecalculateCustomerPrices(ctx context.Context, customerID uuid.UUID) (*model.BatchResult, error)
}
