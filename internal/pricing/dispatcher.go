package pricing

import (
	"context"
	"fmt"

	"kitedesk/internal/model"

	"github.com/google/uuid"
)

// CalculateOrderPrice resolves the order's kind from its detail record and
// routes to the matching calculator.
func (e *Engine) CalculateOrderPrice(ctx context.Context, orderID, serviceID, customerID uuid.UUID) (*model.PriceResult, error) {
	kind, err := e.orders.GetKind(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve order kind: %w", err)
	}

	switch kind {
	case model.KindLesson:
		return e.CalculateLessonPrice(ctx, orderID, serviceID, customerID)
	case model.KindRental:
		return e.CalculateRentalPrice(ctx, orderID, serviceID)
	case model.KindStorage:
		return e.CalculateStoragePrice(ctx, orderID, serviceID)
	default:
		return nil, model.ErrOrderTypeUnknown
	}
}

// CalculateMissingPrices prices every non-cancelled order that has no
// calculated price yet, optionally restricted to one customer. Orders are
// processed one at a time; a failing order is recorded and skipped.
func (e *Engine) CalculateMissingPrices(ctx context.Context, customerID *uuid.UUID) (*model.BatchResult, error) {
	pending, err := e.orders.ListMissingPrices(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders missing prices: %w", err)
	}

	result := &model.BatchResult{}
	for _, p := range pending {
		if _, err := e.CalculateOrderPrice(ctx, p.OrderID, p.ServiceID, p.CustomerID); err != nil {
			e.logger.Warn().
				Err(err).
				Str("order_id", p.OrderID.String()).
				Msg("price calculation failed for order, continuing")
			result.Outcomes = append(result.Outcomes, model.Outcome{OrderID: p.OrderID, Err: err.Error()})
			continue
		}
		result.Processed++
		result.Outcomes = append(result.Outcomes, model.Outcome{OrderID: p.OrderID})
	}

	e.logger.Info().
		Int("processed", result.Processed).
		Int("total", len(pending)).
		Msg("missing price batch finished")

	return result, nil
}
