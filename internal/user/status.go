package user

import (
	"context"
	"errors"

	"github.com/tair/warehouse-inventory/internal/user/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// StatusChecker answers the authenticator's "is this account still
// active" question. A deleted account counts as inactive.
type StatusChecker struct {
	repo domain.UserRepository
}

// NewStatusChecker creates a status checker backed by repo
func NewStatusChecker(repo domain.UserRepository) *StatusChecker {
	return &StatusChecker{repo: repo}
}

// IsActive reports whether the user exists and is active
func (c *StatusChecker) IsActive(ctx context.Context, userID string) (bool, error) {
	user, err := c.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsActive, nil
}
