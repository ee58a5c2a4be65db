package pricing

import (
	"context"
	"fmt"
	"time"

	"kitedesk/internal/model"
	"kitedesk/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Engine computes and persists order prices. All cross-order work runs
// sequentially over one connection pool; cascades must not be parallelised
// because sibling orders receive writes from the same run.
type Engine struct {
	services repository.ServiceRepository
	orders   repository.OrderRepository
	now      func() time.Time
	logger   zerolog.Logger
}

// NewEngine creates a new pricing engine.
func NewEngine(services repository.ServiceRepository, orders repository.OrderRepository, logger zerolog.Logger) *Engine {
	return &Engine{
		services: services,
		orders:   orders,
		now:      time.Now,
		logger:   logger.With().Str("component", "pricing-engine").Logger(),
	}
}

func hoursBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

// CalculateLessonPrice prices a lesson order. Flat-rate services bill the
// order's own hours at the base rate. Package-priced services aggregate the
// billable hours of every sibling order in the configured scope, match the
// total against the service's tier table and bill this order at the matched
// rate; when the scope spans more than one order, every other order in scope
// is re-billed at the same rate.
func (e *Engine) CalculateLessonPrice(ctx context.Context, orderID, serviceID, customerID uuid.UUID) (*model.PriceResult, error) {
	cfg, err := e.services.GetLessonConfig(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson config: %w", err)
	}
	if cfg == nil {
		return nil, model.ErrServiceConfigNotFound
	}

	detail, err := e.orders.GetLessonDetail(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson detail: %w", err)
	}
	if detail == nil {
		return nil, model.ErrOrderDetailNotFound
	}

	orderHours := hoursBetween(detail.Starting, detail.Ending)
	calculatedAt := e.now()

	if !cfg.RequiresPackagePricing {
		price := cfg.BasePricePerHour * orderHours
		if err := e.orders.UpdateCalculatedPrice(ctx, orderID, price, cfg.BasePricePerHour, orderHours, calculatedAt); err != nil {
			return nil, fmt.Errorf("failed to persist flat-rate price: %w", err)
		}

		e.logger.Info().
			Str("order_id", orderID.String()).
			Float64("price", price).
			Float64("hours", orderHours).
			Msg("flat-rate lesson price calculated")

		return &model.PriceResult{
			Price:        price,
			PricePerHour: cfg.BasePricePerHour,
			TotalHours:   orderHours,
		}, nil
	}

	scope, err := e.resolveScope(ctx, cfg.TierScope, orderID, serviceID, customerID, detail)
	if err != nil {
		return nil, err
	}

	var totalHours float64
	for _, s := range scope {
		totalHours += hoursBetween(s.Starting, s.Ending)
	}

	tiers, err := e.services.GetPricingTiers(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing tiers: %w", err)
	}

	match := MatchTier(totalHours, tiers)
	pricePerHour := match.UnitPrice
	if match.Tier == nil {
		// No tier applied: bill at the service's base rate rather than zero.
		pricePerHour = cfg.BasePricePerHour
	}

	price := pricePerHour * orderHours
	if err := e.orders.UpdateCalculatedPrice(ctx, orderID, price, pricePerHour, orderHours, calculatedAt); err != nil {
		return nil, fmt.Errorf("failed to persist tiered price: %w", err)
	}

	// The aggregate changed the effective rate, so every sibling in scope is
	// re-billed at the same rate. service_only scopes keep per-order pricing.
	if cfg.TierScope != model.ScopeServiceOnly && len(scope) > 1 {
		for _, s := range scope {
			if s.OrderID == orderID {
				continue
			}
			h := hoursBetween(s.Starting, s.Ending)
			if err := e.orders.UpdateCalculatedPrice(ctx, s.OrderID, pricePerHour*h, pricePerHour, h, calculatedAt); err != nil {
				return nil, fmt.Errorf("failed to cascade price to order %s: %w", s.OrderID, err)
			}
		}
	}

	e.logger.Info().
		Str("order_id", orderID.String()).
		Str("scope", string(cfg.TierScope)).
		Float64("total_hours", totalHours).
		Float64("price_per_hour", pricePerHour).
		Int("scope_size", len(scope)).
		Msg("tiered lesson price calculated")

	return &model.PriceResult{
		Price:        price,
		PricePerHour: pricePerHour,
		TotalHours:   totalHours,
		Tier:         match.Tier,
	}, nil
}

// resolveScope loads the sibling orders whose hours aggregate with the
// current order's.
func (e *Engine) resolveScope(ctx context.Context, scope model.TierScope, orderID, serviceID, customerID uuid.UUID, detail *model.LessonDetail) ([]model.ScopedOrder, error) {
	switch scope {
	case model.ScopeOrderGroup:
		order, err := e.orders.GetByID(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("failed to load order: %w", err)
		}
		if order == nil || order.GroupID == nil {
			// Ungrouped orders aggregate with themselves only.
			return []model.ScopedOrder{{OrderID: orderID, Starting: detail.Starting, Ending: detail.Ending}}, nil
		}
		orders, err := e.orders.ListGroupScope(ctx, *order.GroupID, customerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load group scope: %w", err)
		}
		return orders, nil

	case model.ScopeCustomerAll:
		orders, err := e.orders.ListCustomerScope(ctx, customerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load customer scope: %w", err)
		}
		return orders, nil

	default:
		orders, err := e.orders.ListServiceScope(ctx, serviceID, customerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load service scope: %w", err)
		}
		return orders, nil
	}
}

// RecalculateGroupPrices re-prices every non-cancelled lesson order in a
// group, one at a time. A failing order is recorded and skipped so one bad
// order never blocks the rest of the group.
func (e *Engine) RecalculateGroupPrices(ctx context.Context, groupID uuid.UUID) (*model.BatchResult, error) {
	pending, err := e.orders.ListGroupLessonOrders(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group orders: %w", err)
	}
	return e.recalculate(ctx, pending), nil
}

// RecalculateCustomerPrices re-prices every non-cancelled lesson order of a
// customer.
func (e *Engine) RecalculateCustomerPrices(ctx context.Context, customerID uuid.UUID) (*model.BatchResult, error) {
	pending, err := e.orders.ListCustomerLessonOrders(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer orders: %w", err)
	}
	return e.recalculate(ctx, pending), nil
}

func (e *Engine) recalculate(ctx context.Context, pending []model.PendingOrder) *model.BatchResult {
	result := &model.BatchResult{}
	for _, p := range pending {
		if _, err := e.CalculateLessonPrice(ctx, p.OrderID, p.ServiceID, p.CustomerID); err != nil {
			e.logger.Warn().
				Err(err).
				Str("order_id", p.OrderID.String()).
				Msg("recalculation failed for order, continuing")
			result.Outcomes = append(result.Outcomes, model.Outcome{OrderID: p.OrderID, Err: err.Error()})
			continue
		}
		result.Processed++
		result.Outcomes = append(result.Outcomes, model.Outcome{OrderID: p.OrderID})
	}
	return result
}
