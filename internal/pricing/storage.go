package pricing

import (
	"context"
	"fmt"
	"math"

	"kitedesk/internal/model"

	"github.com/google/uuid"
)

// CalculateStoragePrice prices a storage order from its elapsed days, with a
// minimum of one billable day. Billing units apply in precedence order
// monthly > weekly > daily. The hours column of a storage order stores the
// billed day count, matching what the rest of the system displays for
// storage.
func (e *Engine) CalculateStoragePrice(ctx context.Context, orderID, serviceID uuid.UUID) (*model.PriceResult, error) {
	cfg, err := e.services.GetStorageConfig(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}
	if cfg == nil {
		return nil, model.ErrServiceConfigNotFound
	}

	detail, err := e.orders.GetStorageDetail(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage detail: %w", err)
	}
	if detail == nil {
		return nil, model.ErrOrderDetailNotFound
	}
	if detail.Starting == nil || detail.Ending == nil {
		return nil, model.ErrStorageWindowMissing
	}

	elapsedMs := float64(detail.Ending.Sub(*detail.Starting).Milliseconds())
	days := math.Max(1, math.Ceil(elapsedMs/86400000))

	var price float64
	switch {
	case detail.Monthly && cfg.MonthlyRate != nil:
		months := math.Ceil(days / 30)
		price = months * *cfg.MonthlyRate
		days = months * 30

	case detail.Weekly && cfg.WeeklyRate != nil:
		weeks := math.Ceil(days / 7)
		price = weeks * *cfg.WeeklyRate
		days = weeks * 7

	case detail.Daily && cfg.DailyRate != nil:
		price = days * *cfg.DailyRate

	default:
		price = 0
	}

	var pricePerDay float64
	if days > 0 {
		pricePerDay = price / days
	}

	calculatedAt := e.now()
	if err := e.orders.UpdateCalculatedPrice(ctx, orderID, price, pricePerDay, days, calculatedAt); err != nil {
		return nil, fmt.Errorf("failed to persist storage price: %w", err)
	}

	e.logger.Info().
		Str("order_id", orderID.String()).
		Float64("price", price).
		Float64("days", days).
		Msg("storage price calculated")

	return &model.PriceResult{
		Price:        price,
		PricePerHour: pricePerDay,
		TotalHours:   days,
	}, nil
}
