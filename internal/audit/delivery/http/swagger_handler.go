package http

// ListAuditLogs godoc
// @Summary List audit logs
// @Description Privileged changes, newest first (Admin only)
// @Tags Audit
// @Security BearerAuth
// @Produce json
// @Param user_id query string false "Acting user"
// @Param action query string false "CREATE, UPDATE, DELETE, STOCK_CHANGE, BULK_CREATE, ..."
// @Param resource_type query string false "item, bulk or user"
// @Param resource_id query string false "Resource ID"
// @Param start_date query string false "YYYY-MM-DD or RFC3339"
// @Param end_date query string false "YYYY-MM-DD (inclusive) or RFC3339"
// @Param limit query int false "Limit (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object{logs=array,total=int,limit=int,offset=int}}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/audit [get]
func (h *AuditHandler) ListAuditLogsDoc() {}

// GetAuditStats godoc
// @Summary Audit statistics
// @Description Audit log counts by action and resource type (Admin only)
// @Tags Audit
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{total=int,by_action=object,by_resource_type=object}}
// @Router /api/audit/stats [get]
func (h *AuditHandler) GetAuditStatsDoc() {}
