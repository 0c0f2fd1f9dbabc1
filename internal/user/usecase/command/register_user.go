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

// RegisterUserCommand represents the command to register a new user.
// Self-registered accounts always get the USER role.
type RegisterUserCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,max=100"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo   domain.UserRepository
	tokens *auth.TokenManager
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository, tokens *auth.TokenManager) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo, tokens: tokens}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*AuthResponse, error) {
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.Name = strings.TrimSpace(cmd.Name)
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	user, err := createAccount(ctx, h.repo, cmd.Email, cmd.Password, cmd.Name, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperror.Internal(err, "failed to generate token")
	}
	return &AuthResponse{Token: token, User: user}, nil
}

func createAccount(ctx context.Context, repo domain.UserRepository, email, password, name, role string) (*domain.User, error) {
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("User with email %s already exists", email)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperror.Internal(err, "failed to hash password")
	}

	user := &domain.User{
		Email:    email,
		Password: hashed,
		Name:     name,
		Role:     role,
		IsActive: true,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
