package handler

import (
	"net/http"
	"strings"

	"kitedesk/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	service service.CustomerService
	logger  zerolog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(service service.CustomerService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		logger:  logger.With().Str("handler", "customer").Logger(),
	}
}

// GetAll handles GET /api/customers requests.
func (h *CustomerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	limit, offset := pagination(r)
	customers, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get customers", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customers)
}

// GetByID handles GET /api/customers/{id} requests.
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/customers/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer ID", h.logger)
		return
	}

	customer, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get customer", h.logger)
		return
	}
	if customer == nil {
		writeError(w, http.StatusNotFound, "customer not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}
