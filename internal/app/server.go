package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"google.golang.org/grpc"

	"github.com/tair/warehouse-inventory/config"
	"github.com/tair/warehouse-inventory/internal/alert"
	"github.com/tair/warehouse-inventory/internal/audit"
	grpcDelivery "github.com/tair/warehouse-inventory/internal/inventory/delivery/grpc"
	"github.com/tair/warehouse-inventory/internal/notify"
	"github.com/tair/warehouse-inventory/internal/realtime"
	"github.com/tair/warehouse-inventory/internal/user"
	userdomain "github.com/tair/warehouse-inventory/internal/user/domain"
	"github.com/tair/warehouse-inventory/kafka"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

// Workers are the background loops that run alongside the servers
type Workers struct {
	Scanner  *alert.Scanner
	Sweeper  *audit.Sweeper
	Monitor  *grpcDelivery.HealthMonitor
	Consumer *kafka.Consumer
	Relay    *notify.RedisSink
	Hub      *realtime.Hub
}

// Server owns the HTTP and gRPC listeners and the background workers
type Server struct {
	cfg     *config.Config
	handler http.Handler
	grpc    *grpc.Server
	workers Workers
	users   userdomain.UserRepository
}

// NewServer creates the server
func NewServer(cfg *config.Config, handler http.Handler, workers Workers, users userdomain.UserRepository) *Server {
	return &Server{
		cfg:     cfg,
		handler: handler,
		grpc:    grpcDelivery.NewServer(workers.Monitor),
		workers: workers,
		users:   users,
	}
}

// Run seeds the admin account, starts the workers and serves until ctx is
// cancelled or a listener fails, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	if _, err := user.SeedAdmin(ctx, s.users, user.AdminSeed{
		Email:    s.cfg.Seed.AdminEmail,
		Password: s.cfg.Seed.AdminPassword,
		Name:     s.cfg.Seed.AdminName,
	}); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	var wg sync.WaitGroup
	s.startWorkers(workerCtx, &wg)

	httpServer := &http.Server{
		Addr:    ":" + s.cfg.Server.HTTPPort,
		Handler: s.handler,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Logger.Info().
			Str("port", s.cfg.Server.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	lis, err := net.Listen("tcp", ":"+s.cfg.Server.GRPCPort)
	if err != nil {
		errCh <- fmt.Errorf("failed to listen on port %s: %w", s.cfg.Server.GRPCPort, err)
	} else {
		go func() {
			logger.Logger.Info().Str("port", s.cfg.Server.GRPCPort).Msg("gRPC health server started")
			if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Logger.Info().Msg("Shutting down server...")
	case runErr = <-errCh:
		logger.Logger.Error().Err(runErr).Msg("Server failed, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	s.workers.Monitor.Shutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Warn().Err(err).Msg("HTTP server shutdown incomplete")
	}
	s.grpc.GracefulStop()

	stopWorkers()
	wg.Wait()

	logger.Logger.Info().Msg("Server stopped")
	return runErr
}

func (s *Server) startWorkers(ctx context.Context, wg *sync.WaitGroup) {
	run := func(name string, fn func(context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Logger.Debug().Str("worker", name).Msg("Worker started")
			fn(ctx)
		}()
	}

	run("health-monitor", s.workers.Monitor.Run)
	run("alert-scanner", s.workers.Scanner.Run)
	run("retention-sweeper", s.workers.Sweeper.Run)

	if s.workers.Relay != nil {
		run("redis-relay", func(ctx context.Context) {
			if err := s.workers.Relay.Subscribe(ctx, s.workers.Hub); err != nil {
				logger.Logger.Error().Err(err).Msg("Redis event relay stopped")
			}
		})
	}
	if s.workers.Consumer != nil {
		s.workers.Consumer.Start(ctx)
	}
}
