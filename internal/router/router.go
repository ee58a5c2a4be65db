package router

import (
	"net/http"
	"strings"

	"kitedesk/internal/handler"
	"kitedesk/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	customerHandler *handler.CustomerHandler,
	serviceHandler *handler.ServiceHandler,
	orderHandler *handler.OrderHandler,
	pricingHandler *handler.PricingHandler,
	reportHandler *handler.ReportHandler,
	registry *prometheus.Registry,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()
	metrics := middleware.NewHTTPMetrics(registry)

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// handle registers a route under both its bare and trailing-slash forms
	// and instruments it with the pattern as the metric label.
	handle := func(pattern string, h http.HandlerFunc) {
		instrumented := metrics.Instrument(pattern, h)
		mux.Handle(pattern, instrumented)
		if !strings.HasSuffix(pattern, "/") {
			mux.Handle(pattern+"/", instrumented)
		}
	}

	handle("/api/customers", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/customers" && r.URL.Path != "/api/customers/" {
			customerHandler.GetByID(w, r)
			return
		}
		customerHandler.GetAll(w, r)
	})

	handle("/api/services", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/services" && r.URL.Path != "/api/services/" {
			serviceHandler.GetByID(w, r)
			return
		}
		serviceHandler.GetAll(w, r)
	})

	handle("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orders" && r.URL.Path != "/api/orders/" {
			orderHandler.GetByID(w, r)
			return
		}
		orderHandler.GetAll(w, r)
	})

	handle("/api/pricing/preview", pricingHandler.Preview)
	handle("/api/pricing/recalculate", pricingHandler.RecalculateMissing)

	handle("/api/pricing/orders", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/calculate") {
			pricingHandler.CalculateOrder(w, r)
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	})

	handle("/api/pricing/groups", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/recalculate") {
			pricingHandler.RecalculateGroup(w, r)
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	})

	handle("/api/pricing/customers", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/recalculate") {
			pricingHandler.RecalculateCustomer(w, r)
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	})

	handle("/api/reports/orders.xlsx", reportHandler.OrdersExport)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
