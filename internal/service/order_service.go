package service

import (
	"context"
	"fmt"

	"kitedesk/internal/model"
	"kitedesk/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orders repository.OrderRepository
	logger zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orders repository.OrderRepository, logger zerolog.Logger) OrderService {
	return &orderService{
		orders: orders,
		logger: logger.With().Str("service", "order").Logger(),
	}
}

// GetAll retrieves all orders with pagination.
func (s *orderService) GetAll(ctx context.Context, limit, offset int) ([]model.Order, error) {
	orders, err := s.orders.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order by ID.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, nil
	}
	return order, nil
}
