package service

import (
	"context"
	"fmt"

	"kitedesk/internal/model"
	"kitedesk/internal/pricing"
	"kitedesk/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// pricingService implements PricingService on top of the pricing engine.
type pricingService struct {
	engine *pricing.Engine
	orders repository.OrderRepository
	logger zerolog.Logger
}

// NewPricingService creates a new pricing service.
func NewPricingService(engine *pricing.Engine, orders repository.OrderRepository, logger zerolog.Logger) PricingService {
	return &pricingService{
		engine: engine,
		orders: orders,
		logger: logger.With().Str("service", "pricing").Logger(),
	}
}

// CalculateOrderPrice prices one order, resolving its service and customer
// from the order row.
func (s *pricingService) CalculateOrderPrice(ctx context.Context, orderID uuid.UUID) (*model.PriceResult, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		s.logger.Debug().Str("order_id", orderID.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	result, err := s.engine.CalculateOrderPrice(ctx, order.ID, order.ServiceID, order.CustomerID)
	if err != nil {
		s.logger.Warn().Err(err).Str("order_id", orderID.String()).Msg("price calculation failed")
		return nil, err
	}

	return result, nil
}

// PreviewTierPrice matches a quantity against an ad-hoc tier set.
func (s *pricingService) PreviewTierPrice(quantity float64, tiers []model.PricingTier) pricing.TierMatch {
	return pricing.MatchTier(quantity, tiers)
}

// CalculateMissingPrices prices every order missing a calculated price.
func (s *pricingService) CalculateMissingPrices(ctx context.Context, customerID *uuid.UUID) (*model.BatchResult, error) {
	return s.engine.CalculateMissingPrices(ctx, customerID)
}

// RecalculateGroupPrices re-prices every lesson order in a group.
func (s *pricingService) RecalculateGroupPrices(ctx context.Context, groupID uuid.UUID) (*model.BatchResult, error) {
	return s.engine.RecalculateGroupPrices(ctx, groupID)
}

// RecalculateCustomerPrices re-prices every lesson order of a customer.
func (s *pricingService) RecalculateCustomerPrices(ctx context.Context, customerID uuid.UUID) (*model.BatchResult, error) {
	return s.engine.RecalculateCustomerPrices(ctx, customerID)
}
