package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/tair/warehouse-inventory/internal/httpx"
	"github.com/tair/warehouse-inventory/internal/middleware"
	"github.com/tair/warehouse-inventory/internal/report"
	"github.com/tair/warehouse-inventory/internal/report/export"
	"github.com/tair/warehouse-inventory/pkg/apperror"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

// ReportHandler serves reports, metrics and exports
type ReportHandler struct {
	service *report.Service
	now     func() time.Time
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *report.Service) *ReportHandler {
	return &ReportHandler{service: service, now: time.Now}
}

// RegisterRoutes registers the report routes
func (h *ReportHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator) {
	router.Handle("/api/reports/inventory", authn.Auth(h.InventoryReport)).Methods("GET")
	router.Handle("/api/reports/metrics", authn.Auth(h.Metrics)).Methods("GET")
	router.Handle("/api/reports/dashboard", authn.Auth(h.Dashboard)).Methods("GET")
	router.Handle("/api/reports/export", authn.Auth(h.Export)).Methods("GET")
}

func filterFrom(r *http.Request) (report.Filter, error) {
	start, end, err := httpx.DateRange(r)
	if err != nil {
		return report.Filter{}, err
	}

	q := r.URL.Query()
	return report.Filter{
		StartDate: start,
		EndDate:   end,
		Category:  q.Get("category"),
		Location:  q.Get("location"),
		ItemID:    q.Get("item_id"),
	}, nil
}

// InventoryReport handles GET /api/reports/inventory
func (h *ReportHandler) InventoryReport(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFrom(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	rep, err := h.service.GenerateInventoryReport(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "", rep)
}

// Metrics handles GET /api/reports/metrics
func (h *ReportHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFrom(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	m, err := h.service.CalculateInventoryMetrics(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "", m)
}

// Dashboard handles GET /api/reports/dashboard
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFrom(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	d, err := h.service.CalculateDashboardMetrics(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "", d)
}

// Export handles GET /api/reports/export. The file is rendered in memory
// first so a rendering failure can still be answered with a JSON error.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	filter, err := filterFrom(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	rep, err := h.service.GenerateInventoryReport(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Render(&buf, rep, format); err != nil {
		httpx.RespondError(w, r, apperror.Internal(err, "failed to render %s export", format))
		return
	}

	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(format, h.now())))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn(r.Context()).Err(err).Str("format", string(format)).Msg("Failed to write export")
	}
}
