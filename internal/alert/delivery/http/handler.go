package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/warehouse-inventory/internal/alert"
	"github.com/tair/warehouse-inventory/internal/httpx"
	"github.com/tair/warehouse-inventory/internal/middleware"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// AlertHandler serves derived stock alerts
type AlertHandler struct {
	engine *alert.Engine
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(engine *alert.Engine) *AlertHandler {
	return &AlertHandler{engine: engine}
}

// RegisterRoutes registers the alert routes. Every route requires a token.
func (h *AlertHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator) {
	router.Handle("/api/alerts", authn.Auth(h.CurrentAlerts)).Methods("GET")
	router.Handle("/api/alerts/statistics", authn.Auth(h.Statistics)).Methods("GET")
	router.Handle("/api/alerts/monitor", authn.Auth(h.Monitor)).Methods("GET")
	router.Handle("/api/alerts/severity/{severity}", authn.Auth(h.BySeverity)).Methods("GET")
	router.Handle("/api/alerts/category/{category}", authn.Auth(h.ByCategory)).Methods("GET")
	router.Handle("/api/alerts/location/{location}", authn.Auth(h.ByLocation)).Methods("GET")
}

// CurrentAlerts handles GET /api/alerts
func (h *AlertHandler) CurrentAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.engine.CurrentAlerts(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	respondAlerts(w, alerts)
}

// BySeverity handles GET /api/alerts/severity/{severity}
func (h *AlertHandler) BySeverity(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["severity"]
	severity, ok := alert.ParseSeverity(raw)
	if !ok {
		httpx.RespondError(w, r, apperror.InvalidArgument("Invalid severity: %s", raw))
		return
	}

	alerts, err := h.engine.BySeverity(r.Context(), severity)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	respondAlerts(w, alerts)
}

// ByCategory handles GET /api/alerts/category/{category}
func (h *AlertHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.engine.ByCategory(r.Context(), mux.Vars(r)["category"])
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	respondAlerts(w, alerts)
}

// ByLocation handles GET /api/alerts/location/{location}
func (h *AlertHandler) ByLocation(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.engine.ByLocation(r.Context(), mux.Vars(r)["location"])
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	respondAlerts(w, alerts)
}

// Statistics handles GET /api/alerts/statistics
func (h *AlertHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.engine.Statistics(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondData(w, http.StatusOK, "", stats)
}

// Monitor handles GET /api/alerts/monitor
func (h *AlertHandler) Monitor(w http.ResponseWriter, r *http.Request) {
	report, err := h.engine.Monitor(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondData(w, http.StatusOK, "", report)
}

func respondAlerts(w http.ResponseWriter, alerts []alert.Alert) {
	httpx.RespondData(w, http.StatusOK, "", map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}
