package user

import (
	"context"
	"errors"
	"strings"

	"github.com/tair/warehouse-inventory/internal/user/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
	"github.com/tair/warehouse-inventory/pkg/auth"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

// AdminSeed is the bootstrap administrator account
type AdminSeed struct {
	Email    string
	Password string
	Name     string
}

// SeedAdmin creates the bootstrap admin when no admin exists yet. It
// returns true when an account was created.
func SeedAdmin(ctx context.Context, repo domain.UserRepository, seed AdminSeed) (bool, error) {
	if seed.Email == "" || seed.Password == "" {
		logger.Debug(ctx).Msg("Admin seed not configured, skipping")
		return false, nil
	}

	admins, err := repo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return false, err
	}
	if admins > 0 {
		return false, nil
	}

	email := strings.ToLower(strings.TrimSpace(seed.Email))
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return false, err
	}
	if existing != nil {
		// promote rather than fail on the unique email
		existing.Role = domain.RoleAdmin
		existing.IsActive = true
		if err := repo.Update(ctx, existing); err != nil {
			return false, err
		}
		logger.Info(ctx).Str("email", email).Msg("Promoted existing user to admin")
		return true, nil
	}

	hashed, err := auth.HashPassword(seed.Password)
	if err != nil {
		return false, apperror.Internal(err, "failed to hash password")
	}

	name := seed.Name
	if name == "" {
		name = "Administrator"
	}
	admin := &domain.User{
		Email:    email,
		Password: hashed,
		Name:     name,
		Role:     domain.RoleAdmin,
		IsActive: true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return false, err
	}

	logger.Info(ctx).Str("email", email).Msg("Seeded admin user")
	return true, nil
}
