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

// serviceRepository implements the ServiceRepository interface using PostgreSQL.
type serviceRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewServiceRepository creates a new PostgreSQL-backed service repository.
func NewServiceRepository(pool *pgxpool.Pool, logger zerolog.Logger) ServiceRepository {
	return &serviceRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "service").Logger(),
	}
}

// GetAll retrieves all services with pagination support.
func (r *serviceRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Service, error) {
	query := `
		SELECT id, name, category, created_at
		FROM services
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query services")
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	var services []model.Service
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan service row")
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating services: %w", err)
	}

	return services, nil
}

// GetByID retrieves a single service by its ID.
func (r *serviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `
		SELECT id, name, category, created_at
		FROM services
		WHERE id = $1
	`

	var s model.Service
	err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("service_id", id.String()).Msg("service not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("service_id", id.String()).Msg("failed to query service")
		return nil, fmt.Errorf("failed to query service: %w", err)
	}

	return &s, nil
}

// GetLessonConfig retrieves the lesson pricing configuration of a service.
func (r *serviceRepository) GetLessonConfig(ctx context.Context, serviceID uuid.UUID) (*model.LessonConfig, error) {
	query := `
		SELECT service_id, requires_package_pricing, tier_scope, base_price_per_hour, default_duration_hours
		FROM lesson_configs
		WHERE service_id = $1
	`

	var cfg model.LessonConfig
	err := r.pool.QueryRow(ctx, query, serviceID).Scan(
		&cfg.ServiceID,
		&cfg.RequiresPackagePricing,
		&cfg.TierScope,
		&cfg.BasePricePerHour,
		&cfg.DefaultDurationHours,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("service_id", serviceID.String()).Msg("no lesson config")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("service_id", serviceID.String()).Msg("failed to query lesson config")
		return nil, fmt.Errorf("failed to query lesson config: %w", err)
	}

	return &cfg, nil
}

// GetRentalConfig retrieves the rental rate configuration of a service.
func (r *serviceRepository) GetRentalConfig(ctx context.Context, serviceID uuid.UUID) (*model.RentalConfig, error) {
	query := `
		SELECT service_id, hourly_rate, daily_rate, weekly_rate
		FROM rental_configs
		WHERE service_id = $1
	`

	var cfg model.RentalConfig
	err := r.pool.QueryRow(ctx, query, serviceID).Scan(
		&cfg.ServiceID,
		&cfg.HourlyRate,
		&cfg.DailyRate,
		&cfg.WeeklyRate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("service_id", serviceID.String()).Msg("no rental config")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("service_id", serviceID.String()).Msg("failed to query rental config")
		return nil, fmt.Errorf("failed to query rental config: %w", err)
	}

	return &cfg, nil
}

// GetStorageConfig retrieves the storage rate configuration of a service.
func (r *serviceRepository) GetStorageConfig(ctx context.Context, serviceID uuid.UUID) (*model.StorageConfig, error) {
	query := `
		SELECT service_id, daily_rate, weekly_rate, monthly_rate
		FROM storage_configs
		WHERE service_id = $1
	`

	var cfg model.StorageConfig
	err := r.pool.QueryRow(ctx, query, serviceID).Scan(
		&cfg.ServiceID,
		&cfg.DailyRate,
		&cfg.WeeklyRate,
		&cfg.MonthlyRate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("service_id", serviceID.String()).Msg("no storage config")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("service_id", serviceID.String()).Msg("failed to query storage config")
		return nil, fmt.Errorf("failed to query storage config: %w", err)
	}

	return &cfg, nil
}

// GetPricingTiers retrieves a service's tiers ordered by from_hours ascending.
func (r *serviceRepository) GetPricingTiers(ctx context.Context, serviceID uuid.UUID) ([]model.PricingTier, error) {
	query := `
		SELECT id, service_id, from_hours, to_hours, price_per_hour
		FROM pricing_tiers
		WHERE service_id = $1
		ORDER BY from_hours ASC
	`

	rows, err := r.pool.Query(ctx, query, serviceID)
	if err != nil {
		r.logger.Error().Err(err).Str("service_id", serviceID.String()).Msg("failed to query pricing tiers")
		return nil, fmt.Errorf("failed to query pricing tiers: %w", err)
	}
	defer rows.Close()

	var tiers []model.PricingTier
	for rows.Next() {
		var t model.PricingTier
		if err := rows.Scan(&t.ID, &t.ServiceID, &t.FromHours, &t.ToHours, &t.PricePerHour); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan pricing tier row")
			return nil, fmt.Errorf("failed to scan pricing tier: %w", err)
		}
		tiers = append(tiers, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pricing tiers: %w", err)
	}

	return tiers, nil
}
