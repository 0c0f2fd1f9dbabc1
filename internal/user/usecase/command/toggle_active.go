package command

import (
	"context"

	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/user/domain"
)

// ToggleActiveCommand flips a user's active flag (admin only)
type ToggleActiveCommand struct {
	ActorID string
	UserID  string
}

// ToggleActiveHandler handles toggle active command
type ToggleActiveHandler struct {
	repo     domain.UserRepository
	recorder auditdomain.Recorder
}

// NewToggleActiveHandler creates a new toggle active handler
func NewToggleActiveHandler(repo domain.UserRepository, recorder auditdomain.Recorder) *ToggleActiveHandler {
	return &ToggleActiveHandler{repo: repo, recorder: recorderOrNop(recorder)}
}

// Handle executes the toggle active command. Deactivated users are
// rejected by the authenticator on their next request.
func (h *ToggleActiveHandler) Handle(ctx context.Context, cmd ToggleActiveCommand) (*domain.User, error) {
	if err := refuseSelf(cmd.ActorID, cmd.UserID, "deactivate"); err != nil {
		return nil, err
	}

	user, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := h.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	recordUserChange(ctx, h.recorder, auditdomain.ActionToggle, cmd.ActorID, user.ID, map[string]bool{
		"is_active": user.IsActive,
	})
	return user, nil
}
