package command

import (
	"context"

	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/user/domain"
)

// DeleteUserCommand represents the command to delete a user (admin only)
type DeleteUserCommand struct {
	ActorID string
	UserID  string
}

// DeleteUserHandler handles delete user command
type DeleteUserHandler struct {
	repo     domain.UserRepository
	recorder auditdomain.Recorder
}

// NewDeleteUserHandler creates a new delete user handler
func NewDeleteUserHandler(repo domain.UserRepository, recorder auditdomain.Recorder) *DeleteUserHandler {
	return &DeleteUserHandler{repo: repo, recorder: recorderOrNop(recorder)}
}

// Handle executes the delete user command
func (h *DeleteUserHandler) Handle(ctx context.Context, cmd DeleteUserCommand) error {
	if err := refuseSelf(cmd.ActorID, cmd.UserID, "delete"); err != nil {
		return err
	}

	user, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return err
	}
	if err := h.repo.Delete(ctx, user.ID); err != nil {
		return err
	}

	recordUserChange(ctx, h.recorder, auditdomain.ActionDelete, cmd.ActorID, user.ID, map[string]string{
		"email": user.Email,
	})
	return nil
}
