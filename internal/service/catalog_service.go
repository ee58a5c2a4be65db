package service

import (
	"context"
	"fmt"

	"kitedesk/internal/model"
	"kitedesk/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	services repository.ServiceRepository
	logger   zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(services repository.ServiceRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		services: services,
		logger:   logger.With().Str("service", "catalog").Logger(),
	}
}

// GetAll retrieves all services with pagination.
func (s *catalogService) GetAll(ctx context.Context, limit, offset int) ([]model.Service, error) {
	services, err := s.services.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get services: %w", err)
	}
	return services, nil
}

// GetByID retrieves a single service with its pricing tiers.
func (s *catalogService) GetByID(ctx context.Context, id uuid.UUID) (*model.Service, []model.PricingTier, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get service: %w", err)
	}
	if svc == nil {
		return nil, nil, nil
	}

	tiers, err := s.services.GetPricingTiers(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get pricing tiers: %w", err)
	}

	return svc, tiers, nil
}
