package handler

import (
	"encoding/json"
	"net/http"

	"kitedesk/internal/model"
	"kitedesk/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PricingHandler handles pricing-related HTTP requests.
type PricingHandler struct {
	service service.PricingService
	logger  zerolog.Logger
}

// NewPricingHandler creates a new pricing handler.
func NewPricingHandler(service service.PricingService, logger zerolog.Logger) *PricingHandler {
	return &PricingHandler{
		service: service,
		logger:  logger.With().Str("handler", "pricing").Logger(),
	}
}

// CalculateOrder handles POST /api/pricing/orders/{id}/calculate requests.
func (h *PricingHandler) CalculateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	orderID, err := pathID(r.URL.Path, "/api/pricing/orders/", "/calculate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID", h.logger)
		return
	}

	result, err := h.service.CalculateOrderPrice(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// TierPreviewRequest is the payload for a standalone tier-price preview.
type TierPreviewRequest struct {
	Quantity float64             `json:"quantity"`
	Tiers    []model.PricingTier `json:"tiers"`
}

// TierPreviewResponse is the outcome of a tier-price preview.
type TierPreviewResponse struct {
	UnitPrice  float64            `json:"unitPrice"`
	TotalPrice float64            `json:"totalPrice"`
	Tier       *model.PricingTier `json:"tier,omitempty"`
}

// Preview handles POST /api/pricing/preview requests. It runs the tier
// matcher against the posted tiers without reading or writing any order.
func (h *PricingHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req TierPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	match := h.service.PreviewTierPrice(req.Quantity, req.Tiers)

	writeJSON(w, http.StatusOK, TierPreviewResponse{
		UnitPrice:  match.UnitPrice,
		TotalPrice: match.TotalPrice,
		Tier:       match.Tier,
	})
}

// RecalculateMissing handles POST /api/pricing/recalculate requests. An
// optional customerId query parameter restricts the batch to one customer.
func (h *PricingHandler) RecalculateMissing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var customerID *uuid.UUID
	if v := r.URL.Query().Get("customerId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid customer ID", h.logger)
			return
		}
		customerID = &id
	}

	result, err := h.service.CalculateMissingPrices(r.Context(), customerID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// RecalculateGroup handles POST /api/pricing/groups/{id}/recalculate requests.
func (h *PricingHandler) RecalculateGroup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	groupID, err := pathID(r.URL.Path, "/api/pricing/groups/", "/recalculate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group ID", h.logger)
		return
	}

	result, err := h.service.RecalculateGroupPrices(r.Context(), groupID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// RecalculateCustomer handles POST /api/pricing/customers/{id}/recalculate requests.
func (h *PricingHandler) RecalculateCustomer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	customerID, err := pathID(r.URL.Path, "/api/pricing/customers/", "/recalculate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer ID", h.logger)
		return
	}

	result, err := h.service.RecalculateCustomerPrices(r.Context(), customerID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
