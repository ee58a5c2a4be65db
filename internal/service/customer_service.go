package service

import (
	"context"
	"fmt"

	"kitedesk/internal/model"
	"kitedesk/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// customerService implements CustomerService.
type customerService struct {
	customers repository.CustomerRepository
	logger    zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customers repository.CustomerRepository, logger zerolog.Logger) CustomerService {
	return &customerService{
		customers: customers,
		logger:    logger.With().Str("service", "customer").Logger(),
	}
}

// GetAll retrieves all customers with pagination.
func (s *customerService) GetAll(ctx context.Context, limit, offset int) ([]model.Customer, error) {
	customers, err := s.customers.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}
	return customers, nil
}

// GetByID retrieves a single customer by ID.
func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}
