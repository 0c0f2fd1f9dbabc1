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

// LoginUserCommand represents the command to login a user
type LoginUserCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginUserHandler handles user login command
type LoginUserHandler struct {
	repo   domain.UserRepository
	tokens *auth.TokenManager
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository, tokens *auth.TokenManager) *LoginUserHandler {
	return &LoginUserHandler{repo: repo, tokens: tokens}
}

// Handle executes the login user command. Unknown email and wrong
// password produce the same error.
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*AuthResponse, error) {
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	user, err := h.repo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, apperror.Unauthorized("Invalid email or password")
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized("User account is inactive")
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperror.Internal(err, "failed to generate token")
	}
	return &AuthResponse{Token: token, User: user}, nil
}
