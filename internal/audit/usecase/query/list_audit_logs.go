package query

import (
	"context"
	"time"

	"github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// Pagination bounds
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListAuditLogsQuery represents the query to list audit logs
type ListAuditLogsQuery struct {
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}

// AuditLogPage is one page of audit logs
type AuditLogPage struct {
	Logs   []domain.AuditLog `json:"logs"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// ListAuditLogsHandler handles list audit logs query
type ListAuditLogsHandler struct {
	repo domain.Repository
}

// NewListAuditLogsHandler creates a new list audit logs handler
func NewListAuditLogsHandler(repo domain.Repository) *ListAuditLogsHandler {
	return &ListAuditLogsHandler{repo: repo}
}

// Handle executes the list audit logs query
func (h *ListAuditLogsHandler) Handle(ctx context.Context, query ListAuditLogsQuery) (*AuditLogPage, error) {
	if query.StartDate != nil && query.EndDate != nil && query.EndDate.Before(*query.StartDate) {
		return nil, apperror.InvalidArgument("end_date must not be before start_date")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	logs, total, err := h.repo.FindAll(ctx, domain.Filter{
		UserID:       query.UserID,
		Action:       query.Action,
		ResourceType: query.ResourceType,
		ResourceID:   query.ResourceID,
		StartDate:    query.StartDate,
		EndDate:      query.EndDate,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []domain.AuditLog{}
	}

	return &AuditLogPage{Logs: logs, Total: total, Limit: limit, Offset: offset}, nil
}
