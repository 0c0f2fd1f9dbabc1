package query

import (
	"context"

	"github.com/tair/warehouse-inventory/internal/user/domain"
)

// UserStats represents user statistics
type UserStats struct {
	TotalUsers  int64 `json:"total_users"`
	AdminCount  int64 `json:"admin_count"`
	UserCount   int64 `json:"user_count"`
	ActiveUsers int64 `json:"active_users"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.UserRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.UserRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(ctx context.Context) (*UserStats, error) {
	totalUsers, err := h.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	adminCount, err := h.repo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	userCount, err := h.repo.CountByRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	activeUsers, err := h.repo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		TotalUsers:  totalUsers,
		AdminCount:  adminCount,
		UserCount:   userCount,
		ActiveUsers: activeUsers,
	}, nil
}
