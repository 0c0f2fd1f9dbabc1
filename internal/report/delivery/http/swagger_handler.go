package http

// InventoryReport godoc
// @Summary Inventory report
// @Description Summary, per-item rows with stock status and up to 100 recent actions
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param start_date query string false "YYYY-MM-DD or RFC3339"
// @Param end_date query string false "YYYY-MM-DD (inclusive) or RFC3339"
// @Param category query string false "Category substring"
// @Param location query string false "Location substring"
// @Param item_id query string false "Item ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/reports/inventory [get]
func (h *ReportHandler) InventoryReportDoc() {}

// Metrics godoc
// @Summary Inventory metrics
// @Description Totals, top 10 categories and locations by value, 30-day action and movement trends
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param category query string false "Category substring"
// @Param location query string false "Location substring"
// @Param item_id query string false "Item ID"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/reports/metrics [get]
func (h *ReportHandler) MetricsDoc() {}

// Dashboard godoc
// @Summary Dashboard metrics
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/reports/dashboard [get]
func (h *ReportHandler) DashboardDoc() {}

// Export godoc
// @Summary Export inventory report
// @Tags Reports
// @Security BearerAuth
// @Produce text/csv,application/json,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv (default), json, pdf or xlsx"
// @Param start_date query string false "YYYY-MM-DD or RFC3339"
// @Param end_date query string false "YYYY-MM-DD (inclusive) or RFC3339"
// @Param category query string false "Category substring"
// @Param location query string false "Location substring"
// @Success 200 {file} file
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/reports/export [get]
func (h *ReportHandler) ExportDoc() {}
