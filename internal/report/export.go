// Package report renders order listings as xlsx workbooks for the back
// office.
package report

import (
	"context"
	"fmt"
	"io"

	"kitedesk/internal/model"
	"kitedesk/internal/repository"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// exportBatchSize caps one workbook; the back office paginates beyond it.
const exportBatchSize = 10000

// OrderExporter writes order listings with their calculated prices.
type OrderExporter struct {
	orders repository.OrderRepository
	logger zerolog.Logger
}

// NewOrderExporter creates a new order exporter.
func NewOrderExporter(orders repository.OrderRepository, logger zerolog.Logger) *OrderExporter {
	return &OrderExporter{
		orders: orders,
		logger: logger.With().Str("component", "order-exporter").Logger(),
	}
}

// WriteOrders writes an xlsx workbook with one row per order to w.
func (e *OrderExporter) WriteOrders(ctx context.Context, w io.Writer) error {
	orders, err := e.orders.GetAll(ctx, exportBatchSize, 0)
	if err != nil {
		return fmt.Errorf("failed to load orders for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := []any{"Order", "Customer", "Service", "Group", "Cancelled", "Hours", "Rate", "Price", "Calculated At"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		row := orderRow(o)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write order row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Info().Int("orders", len(orders)).Msg("order export written")

	return nil
}

func orderRow(o model.Order) []any {
	row := []any{
		o.ID.String(),
		o.CustomerID.String(),
		o.ServiceID.String(),
		"",
		o.Cancelled,
		"",
		"",
		"",
		"",
	}
	if o.GroupID != nil {
		row[3] = o.GroupID.String()
	}
	if o.Hours != nil {
		row[5] = *o.Hours
	}
	if o.CalculatedPricePerHour != nil {
		row[6] = *o.CalculatedPricePerHour
	}
	if o.CalculatedPrice != nil {
		row[7] = *o.CalculatedPrice
	}
	if o.CalculatedAt != nil {
		row[8] = o.CalculatedAt.Format("2006-01-02 15:04")
	}
	return row
}
