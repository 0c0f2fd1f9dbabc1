package command

import (
	"context"
	"strings"

	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/user/domain"
	"github.com/tair/warehouse-inventory/pkg/validation"
)

// CreateUserCommand represents the command to create a user (admin only)
type CreateUserCommand struct {
	ActorID  string `json:"-"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}

// CreateUserHandler handles create user command
type CreateUserHandler struct {
	repo     domain.UserRepository
	recorder auditdomain.Recorder
}

// NewCreateUserHandler creates a new create user handler
func NewCreateUserHandler(repo domain.UserRepository, recorder auditdomain.Recorder) *CreateUserHandler {
	return &CreateUserHandler{repo: repo, recorder: recorderOrNop(recorder)}
}

// Handle executes the create user command
func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*domain.User, error) {
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Role = strings.ToUpper(strings.TrimSpace(cmd.Role))
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}
	if cmd.Role == "" {
		cmd.Role = domain.RoleUser
	}

	user, err := createAccount(ctx, h.repo, cmd.Email, cmd.Password, cmd.Name, cmd.Role)
	if err != nil {
		return nil, err
	}

	recordUserChange(ctx, h.recorder, auditdomain.ActionCreate, cmd.ActorID, user.ID, map[string]string{
		"email": user.Email,
		"role":  user.Role,
	})
	return user, nil
}
