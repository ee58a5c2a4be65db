package handler

import (
	"net/http"
	"strings"

	"kitedesk/internal/model"
	"kitedesk/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ServiceHandler handles service-catalog HTTP requests.
type ServiceHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewServiceHandler creates a new service handler.
func NewServiceHandler(service service.CatalogService, logger zerolog.Logger) *ServiceHandler {
	return &ServiceHandler{
		service: service,
		logger:  logger.With().Str("handler", "service").Logger(),
	}
}

// GetAll handles GET /api/services requests.
func (h *ServiceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	limit, offset := pagination(r)
	services, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get services", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, services)
}

// ServiceResponse is a service together with its pricing tiers.
type ServiceResponse struct {
	Service *model.Service      `json:"service"`
	Tiers   []model.PricingTier `json:"tiers"`
}

// GetByID handles GET /api/services/{id} requests.
func (h *ServiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/services/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid service ID", h.logger)
		return
	}

	svc, tiers, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get service", h.logger)
		return
	}
	if svc == nil {
		writeError(w, http.StatusNotFound, "service not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ServiceResponse{Service: svc, Tiers: tiers})
}
