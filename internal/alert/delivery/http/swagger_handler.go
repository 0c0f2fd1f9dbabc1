package http

// CurrentAlerts godoc
// @Summary List current stock alerts
// @Description Every item at or below its minimum stock, most urgent first
// @Tags Alerts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{alerts=array,count=int}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/alerts [get]
func (h *AlertHandler) CurrentAlertsDoc() {}

// BySeverity godoc
// @Summary List alerts of one severity
// @Tags Alerts
// @Security BearerAuth
// @Produce json
// @Param severity path string true "OUT_OF_STOCK, CRITICAL or LOW"
// @Success 200 {object} object{success=bool,data=object{alerts=array,count=int}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/alerts/severity/{severity} [get]
func (h *AlertHandler) BySeverityDoc() {}

// ByCategory godoc
// @Summary List alerts by category
// @Tags Alerts
// @Security BearerAuth
// @Produce json
// @Param category path string true "Category substring, case-insensitive"
// @Success 200 {object} object{success=bool,data=object{alerts=array,count=int}}
// @Router /api/alerts/category/{category} [get]
func (h *AlertHandler) ByCategoryDoc() {}

// ByLocation godoc
// @Summary List alerts by location
// @Tags Alerts
// @Security BearerAuth
// @Produce json
// @Param location path string true "Location substring, case-insensitive"
// @Success 200 {object} object{success=bool,data=object{alerts=array,count=int}}
// @Router /api/alerts/location/{location} [get]
func (h *AlertHandler) ByLocationDoc() {}

// Statistics godoc
// @Summary Alert statistics
// @Description Alert counts by severity, category and location
// @Tags Alerts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/alerts/statistics [get]
func (h *AlertHandler) StatisticsDoc() {}

// Monitor godoc
// @Summary Alert monitor
// @Description Alerts split into low, critical and out-of-stock buckets with counts
// @Tags Alerts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/alerts/monitor [get]
func (h *AlertHandler) MonitorDoc() {}
