package handler

import (
	"net/http"

	"kitedesk/internal/report"

	"github.com/rs/zerolog"
)

// ReportHandler serves back-office exports.
type ReportHandler struct {
	exporter *report.OrderExporter
	logger   zerolog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(exporter *report.OrderExporter, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		exporter: exporter,
		logger:   logger.With().Str("handler", "report").Logger(),
	}
}

// OrdersExport handles GET /api/reports/orders.xlsx requests.
func (h *ReportHandler) OrdersExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.xlsx"`)

	if err := h.exporter.WriteOrders(r.Context(), w); err != nil {
		// Headers are already out; log and drop the connection.
		h.logger.Error().Err(err).Msg("order export failed")
	}
}
