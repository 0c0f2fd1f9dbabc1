package command

import (
	"context"
	"strings"

	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/user/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// ChangeRoleCommand represents the command to change user role (admin only)
type ChangeRoleCommand struct {
	ActorID string
	UserID  string
	Role    string
}

// ChangeRoleHandler handles user role change command
type ChangeRoleHandler struct {
	repo     domain.UserRepository
	recorder auditdomain.Recorder
}

// NewChangeRoleHandler creates a new change role handler
func NewChangeRoleHandler(repo domain.UserRepository, recorder auditdomain.Recorder) *ChangeRoleHandler {
	return &ChangeRoleHandler{repo: repo, recorder: recorderOrNop(recorder)}
}

// Handle executes the change role command
func (h *ChangeRoleHandler) Handle(ctx context.Context, cmd ChangeRoleCommand) (*domain.User, error) {
	role := strings.ToUpper(strings.TrimSpace(cmd.Role))
	if !domain.ValidRole(role) {
		return nil, apperror.InvalidArgument("Invalid role: %s", cmd.Role)
	}
	if err := refuseSelf(cmd.ActorID, cmd.UserID, "change the role of"); err != nil {
		return nil, err
	}

	user, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	previous := user.Role
	user.Role = role
	if err := h.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	recordUserChange(ctx, h.recorder, auditdomain.ActionRoleChange, cmd.ActorID, user.ID, map[string]string{
		"from": previous,
		"to":   role,
	})
	return user, nil
}
