package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/warehouse-inventory/internal/audit/usecase/query"
	"github.com/tair/warehouse-inventory/internal/httpx"
	"github.com/tair/warehouse-inventory/internal/middleware"
)

// AuditHandler serves the audit trail to admins
type AuditHandler struct {
	listHandler  *query.ListAuditLogsHandler
	statsHandler *query.GetAuditStatsHandler
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(listHandler *query.ListAuditLogsHandler, statsHandler *query.GetAuditStatsHandler) *AuditHandler {
	return &AuditHandler{listHandler: listHandler, statsHandler: statsHandler}
}

// RegisterRoutes registers the admin-only audit routes
func (h *AuditHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator) {
	router.Handle("/api/audit", authn.Admin(h.ListAuditLogs)).Methods("GET")
	router.Handle("/api/audit/stats", authn.Admin(h.GetAuditStats)).Methods("GET")
}

// ListAuditLogs handles GET /api/audit
func (h *AuditHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := httpx.Pagination(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	start, end, err := httpx.DateRange(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	q := r.URL.Query()
	page, err := h.listHandler.Handle(r.Context(), query.ListAuditLogsQuery{
		UserID:       q.Get("user_id"),
		Action:       q.Get("action"),
		ResourceType: q.Get("resource_type"),
		ResourceID:   q.Get("resource_id"),
		StartDate:    start,
		EndDate:      end,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "", page)
}

// GetAuditStats handles GET /api/audit/stats
func (h *AuditHandler) GetAuditStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "", stats)
}
