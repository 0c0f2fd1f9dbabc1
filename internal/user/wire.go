package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/warehouse-inventory/internal/user/delivery/http"
	"github.com/tair/warehouse-inventory/internal/user/domain"
	"github.com/tair/warehouse-inventory/internal/user/repository"
	"github.com/tair/warehouse-inventory/internal/user/usecase/command"
	"github.com/tair/warehouse-inventory/internal/user/usecase/query"
)

// ProvideUserRepository provides the traced user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewUserRepositoryWithTracing(repository.NewGormUserRepository(db))
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
	NewStatusChecker,
)

var CommandHandlerSet = wire.NewSet(
	command.NewRegisterUserHandler,
	command.NewLoginUserHandler,
	command.NewUpdateProfileHandler,
	command.NewCreateUserHandler,
	command.NewChangeRoleHandler,
	command.NewToggleActiveHandler,
	command.NewDeleteUserHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetUserHandler,
	query.NewListUsersHandler,
	query.NewGetStatsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
	http.NewUserHandler,
)
