package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/warehouse-inventory/config"
	"github.com/tair/warehouse-inventory/internal/alert"
	"github.com/tair/warehouse-inventory/internal/audit"
	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	auditrepo "github.com/tair/warehouse-inventory/internal/audit/repository"
	grpcDelivery "github.com/tair/warehouse-inventory/internal/inventory/delivery/grpc"
	inventorydomain "github.com/tair/warehouse-inventory/internal/inventory/domain"
	inventoryrepo "github.com/tair/warehouse-inventory/internal/inventory/repository"
	"github.com/tair/warehouse-inventory/internal/inventory/usecase/command"
	"github.com/tair/warehouse-inventory/internal/middleware"
	"github.com/tair/warehouse-inventory/internal/notify"
	"github.com/tair/warehouse-inventory/internal/realtime"
	"github.com/tair/warehouse-inventory/internal/report"
	"github.com/tair/warehouse-inventory/internal/user"
	userrepo "github.com/tair/warehouse-inventory/internal/user/repository"
	"github.com/tair/warehouse-inventory/kafka"
	"github.com/tair/warehouse-inventory/pkg/auth"
	"github.com/tair/warehouse-inventory/pkg/database"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

const (
	eventPublishTimeout = 5 * time.Second
	auditWriteTimeout   = 5 * time.Second
	healthCheckInterval = 15 * time.Second

	kafkaBreakerFailures = 5
	kafkaBreakerCooldown = 30 * time.Second
)

type migrator interface {
	AutoMigrate() error
}

// ProvideDatabase connects to Postgres and migrates every table
func ProvideDatabase(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := database.NewGormConnection(cfg.Postgres)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to close database")
		}
	}

	for _, m := range []migrator{
		inventoryrepo.NewGormStore(db),
		auditrepo.NewGormRepository(db),
		userrepo.NewGormUserRepository(db),
	} {
		if err := m.AutoMigrate(); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	logger.Logger.Info().Msg("Database initialized successfully")
	return db, cleanup, nil
}

// ProvideSQLDB exposes the pool behind gorm for health checks
func ProvideSQLDB(db *gorm.DB) (*sql.DB, error) {
	return db.DB()
}

// ProvideTokenManager provides the JWT token manager
func ProvideTokenManager(cfg *config.Config) *auth.TokenManager {
	return auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)
}

// ProvideAuthenticator provides the JWT authenticator backed by account status
func ProvideAuthenticator(tokens *auth.TokenManager, users *user.StatusChecker) *middleware.Authenticator {
	return middleware.NewAuthenticator(tokens, users)
}

// ProvideRedis connects to Redis. Without an address it returns nil and
// rate limiting and cross-instance fan-out are disabled.
func ProvideRedis(cfg *config.Config) (redis.UniversalClient, func(), error) {
	if cfg.Redis.Addr == "" {
		logger.Logger.Info().Msg("Redis not configured, rate limiting and event fan-out disabled")
		return nil, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Logger.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connected")
	return client, func() { client.Close() }, nil
}

// ProvideRateLimiter provides the Redis-backed rate limiter. A nil client
// yields a limiter that lets every request through.
func ProvideRateLimiter(cfg *config.Config, client redis.UniversalClient) *middleware.RateLimiter {
	return middleware.NewRateLimiter(client, cfg.Redis.RateLimit, cfg.Redis.RateLimitWindow)
}

// ProvideKafkaPublisher connects the event publisher, or returns nil when
// no brokers are configured
func ProvideKafkaPublisher(cfg *config.Config) (*kafka.Publisher, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Logger.Info().Msg("Kafka not configured, event publishing disabled")
		return nil, func() {}, nil
	}

	publisher, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.EventsTopic)
	if err != nil {
		return nil, nil, err
	}
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to close Kafka publisher")
		}
	}, nil
}

// ProvideKafkaConsumer subscribes to stock commands, or returns nil when
// no brokers are configured
func ProvideKafkaConsumer(cfg *config.Config, apply *command.ApplyStockActionHandler) (*kafka.Consumer, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, func() {}, nil
	}

	consumer, err := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, []string{cfg.Kafka.CommandsTopic})
	if err != nil {
		return nil, nil, err
	}
	consumer.RegisterHandler(kafka.EventTypeStockActionRequested, kafka.StockActionHandler(apply))

	return consumer, func() {
		if err := consumer.Close(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to close Kafka consumer")
		}
	}, nil
}

// ProvideHub provides the websocket hub
func ProvideHub(cfg *config.Config, authn *middleware.Authenticator) (*realtime.Hub, func()) {
	hub := realtime.NewHub(authn, cfg.Server.AllowedOrigins)
	return hub, hub.Close
}

// ProvideRedisSink returns nil without Redis
func ProvideRedisSink(cfg *config.Config, client redis.UniversalClient) *notify.RedisSink {
	if client == nil {
		return nil
	}
	return notify.NewRedisSink(client, cfg.Redis.EventsChannel)
}

// ProvideEventSink assembles the notification fan-out. With Redis, local
// websocket clients are reached through the pub/sub relay like every other
// instance's; without it the hub is published to directly.
func ProvideEventSink(hub *realtime.Hub, publisher *kafka.Publisher, redisSink *notify.RedisSink) (*notify.Async, func()) {
	var sinks notify.Multi
	if redisSink != nil {
		sinks = append(sinks, redisSink)
	} else {
		sinks = append(sinks, hub)
	}
	if publisher != nil {
		sinks = append(sinks, notify.NewBreaker("kafka", publisher, kafkaBreakerFailures, kafkaBreakerCooldown))
	}

	async := notify.NewAsync(sinks, eventPublishTimeout)
	return async, async.Close
}

// ProvideAuditRepository provides the gorm audit repository
func ProvideAuditRepository(db *gorm.DB) auditdomain.Repository {
	return auditrepo.NewGormRepository(db)
}

// ProvideRecorder provides the asynchronous audit recorder
func ProvideRecorder(repo auditdomain.Repository) (*audit.AsyncRecorder, func()) {
	recorder := audit.NewAsyncRecorder(repo, auditWriteTimeout)
	return recorder, recorder.Close
}

// ProvideSweeper provides the retention sweeper
func ProvideSweeper(cfg *config.Config, logs auditdomain.Repository, store inventorydomain.Store) *audit.Sweeper {
	return audit.NewSweeper(logs, store.Actions(), audit.SweepConfig{
		AuditRetention:  cfg.Audit.Retention,
		ActionRetention: cfg.Audit.ActionRetention,
		Interval:        cfg.Audit.SweepInterval,
	})
}

// ProvideAlertEngine provides the alert engine over the item repository
func ProvideAlertEngine(store inventorydomain.Store) *alert.Engine {
	return alert.NewEngine(store.Items())
}

// ProvideScanner provides the periodic low-stock scanner
func ProvideScanner(cfg *config.Config, engine *alert.Engine, events notify.Sink) *alert.Scanner {
	return alert.NewScanner(engine, events, cfg.Alerts.ScanInterval)
}

// ProvideReportService provides the report service
func ProvideReportService(store inventorydomain.Store) *report.Service {
	return report.NewService(store, nil)
}

// ProvideHealthMonitor provides the database health monitor
func ProvideHealthMonitor(db *sql.DB) *grpcDelivery.HealthMonitor {
	return grpcDelivery.NewHealthMonitor(db, healthCheckInterval)
}
