//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/tair/warehouse-inventory/config"
	alerthttp "github.com/tair/warehouse-inventory/internal/alert/delivery/http"
	"github.com/tair/warehouse-inventory/internal/audit"
	audithttp "github.com/tair/warehouse-inventory/internal/audit/delivery/http"
	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	auditquery "github.com/tair/warehouse-inventory/internal/audit/usecase/query"
	"github.com/tair/warehouse-inventory/internal/inventory"
	"github.com/tair/warehouse-inventory/internal/notify"
	reporthttp "github.com/tair/warehouse-inventory/internal/report/delivery/http"
	"github.com/tair/warehouse-inventory/internal/user"
)

var InfrastructureSet = wire.NewSet(
	ProvideDatabase,
	ProvideSQLDB,
	ProvideRedis,
	ProvideRedisSink,
	ProvideKafkaPublisher,
	ProvideKafkaConsumer,
	ProvideTokenManager,
	ProvideAuthenticator,
	ProvideRateLimiter,
	ProvideHub,
	ProvideEventSink,
	wire.Bind(new(notify.Sink), new(*notify.Async)),
	ProvideAuditRepository,
	ProvideRecorder,
	wire.Bind(new(auditdomain.Recorder), new(*audit.AsyncRecorder)),
	ProvideHealthMonitor,
)

var ModuleSet = wire.NewSet(
	inventory.AllHandlersSet,
	user.AllHandlersSet,
	ProvideAlertEngine,
	ProvideScanner,
	alerthttp.NewAlertHandler,
	ProvideReportService,
	reporthttp.NewReportHandler,
	auditquery.NewListAuditLogsHandler,
	auditquery.NewGetAuditStatsHandler,
	audithttp.NewAuditHandler,
	ProvideSweeper,
)

// InitializeServer wires the whole service from its configuration
func InitializeServer(cfg *config.Config) (*Server, func(), error) {
	wire.Build(
		InfrastructureSet,
		ModuleSet,
		wire.Struct(new(Handlers), "*"),
		wire.Struct(new(Workers), "*"),
		ProvideRouter,
		NewServer,
	)
	return nil, nil, nil
}
