package command

import (
	"context"
	"errors"
	"strings"

	"github.com/tair/warehouse-inventory/internal/user/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
	"github.com/tair/warehouse-inventory/pkg/auth"
	"github.com/tair/warehouse-inventory/pkg/validation"
)

// UpdateProfileCommand changes the caller's own name, email or password.
// Empty fields are left unchanged.
type UpdateProfileCommand struct {
	UserID   string `json:"-"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Name     string `json:"name,omitempty" validate:"omitempty,max=100"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// UpdateProfileHandler handles profile updates
type UpdateProfileHandler struct {
	repo domain.UserRepository
}

// NewUpdateProfileHandler creates a new update profile handler
func NewUpdateProfileHandler(repo domain.UserRepository) *UpdateProfileHandler {
	return &UpdateProfileHandler{repo: repo}
}

// Handle executes the update profile command
func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*domain.User, error) {
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.Name = strings.TrimSpace(cmd.Name)
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	user, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.Email != "" && cmd.Email != user.Email {
		other, err := h.repo.FindByEmail(ctx, cmd.Email)
		if err != nil && !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, apperror.Conflict("User with email %s already exists", cmd.Email)
		}
		user.Email = cmd.Email
	}
	if cmd.Name != "" {
		user.Name = cmd.Name
	}
	if cmd.Password != "" {
		hashed, err := auth.HashPassword(cmd.Password)
		if err != nil {
			return nil, apperror.Internal(err, "failed to hash password")
		}
		user.Password = hashed
	}

	if err := h.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
