package pricing

import (
	"context"
	"fmt"
	"math"

	"kitedesk/internal/model"

	"github.com/google/uuid"
)

// CalculateRentalPrice prices a rental order from its elapsed time. Billing
// units apply in precedence order hourly > daily > weekly; a unit applies
// only when the detail's flag is set and the service carries a rate for it.
// Hourly billing uses exact fractional hours; daily and weekly billing round
// whole units up and record the rounded-up duration as the order's hours.
func (e *Engine) CalculateRentalPrice(ctx context.Context, orderID, serviceID uuid.UUID) (*model.PriceResult, error) {
	cfg, err := e.services.GetRentalConfig(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rental config: %w", err)
	}
	if cfg == nil {
		return nil, model.ErrServiceConfigNotFound
	}

	detail, err := e.orders.GetRentalDetail(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rental detail: %w", err)
	}
	if detail == nil {
		return nil, model.ErrOrderDetailNotFound
	}
	if detail.Starting == nil || detail.Ending == nil {
		return nil, model.ErrRentalWindowMissing
	}

	elapsed := detail.Ending.Sub(*detail.Starting).Hours()

	var price, hours float64
	switch {
	case detail.Hourly && cfg.HourlyRate != nil:
		hours = elapsed
		price = elapsed * *cfg.HourlyRate

	case detail.Daily && cfg.DailyRate != nil:
		days := math.Ceil(elapsed / 24)
		price = days * *cfg.DailyRate
		hours = days * 24

	case detail.Weekly && cfg.WeeklyRate != nil:
		days := math.Ceil(elapsed / 24)
		weeks := math.Ceil(days / 7)
		price = weeks * *cfg.WeeklyRate
		hours = weeks * 7 * 24

	default:
		price = 0
		hours = elapsed
	}

	var pricePerHour float64
	if hours > 0 {
		pricePerHour = price / hours
	}

	calculatedAt := e.now()
	if err := e.orders.UpdateCalculatedPrice(ctx, orderID, price, pricePerHour, hours, calculatedAt); err != nil {
		return nil, fmt.Errorf("failed to persist rental price: %w", err)
	}

	e.logger.Info().
		Str("order_id", orderID.String()).
		Float64("price", price).
		Float64("hours", hours).
		Msg("rental price calculated")

	return &model.PriceResult{
		Price:        price,
		PricePerHour: pricePerHour,
		TotalHours:   hours,
	}, nil
}
