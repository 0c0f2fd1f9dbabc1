package query

import (
	"context"

	"github.com/tair/warehouse-inventory/internal/audit/domain"
)

// GetAuditStatsHandler handles get audit stats query
type GetAuditStatsHandler struct {
	repo domain.Repository
}

// NewGetAuditStatsHandler creates a new get audit stats handler
func NewGetAuditStatsHandler(repo domain.Repository) *GetAuditStatsHandler {
	return &GetAuditStatsHandler{repo: repo}
}

// Handle counts audit logs overall, by action and by resource type
func (h *GetAuditStatsHandler) Handle(ctx context.Context) (*domain.Stats, error) {
	total, err := h.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	byAction, err := h.repo.CountBy(ctx, "action")
	if err != nil {
		return nil, err
	}
	byResource, err := h.repo.CountBy(ctx, "resource_type")
	if err != nil {
		return nil, err
	}

	return &domain.Stats{
		Total:          total,
		ByAction:       byAction,
		ByResourceType: byResource,
	}, nil
}
