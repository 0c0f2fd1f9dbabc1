package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/delivery/http"
	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/repository"
	"github.com/tair/warehouse-inventory/internal/inventory/usecase/command"
	"github.com/tair/warehouse-inventory/internal/inventory/usecase/query"
	"github.com/tair/warehouse-inventory/internal/notify"
)

// ProvideStore provides the traced gorm store
func ProvideStore(db *gorm.DB) domain.Store {
	return repository.NewStoreWithTracing(repository.NewGormStore(db))
}

// ProvideHooks provides the post-commit hooks shared by every command
func ProvideHooks(events notify.Sink, recorder auditdomain.Recorder) command.Hooks {
	return command.NewHooks(events, recorder)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideStore,
)

var CommandHandlerSet = wire.NewSet(
	ProvideHooks,
	command.NewApplyStockActionHandler,
	command.NewCreateItemHandler,
	command.NewUpdateItemHandler,
	command.NewDeleteItemHandler,
	command.NewBulkCreateHandler,
	command.NewBulkUpdateHandler,
	command.NewBulkStockUpdateHandler,
	command.NewBulkDeleteHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetItemHandler,
	query.NewListItemsHandler,
	query.NewListLowStockHandler,
	query.NewListActionsHandler,
	query.NewGetItemHistoryHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
	http.NewInventoryHandler,
)
