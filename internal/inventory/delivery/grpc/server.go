package grpc

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/tair/warehouse-inventory/pkg/logger"
)

// ServiceName is the name reported through the gRPC health protocol
const ServiceName = "warehouse.inventory.v1.Inventory"

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthMonitor keeps the gRPC health status in line with database reachability
type HealthMonitor struct {
	db       Pinger
	server   *health.Server
	interval time.Duration

	mu      sync.RWMutex
	serving bool
	lastErr error
}

// NewHealthMonitor creates a monitor. It reports NOT_SERVING until the first check.
func NewHealthMonitor(db Pinger, interval time.Duration) *HealthMonitor {
	server := health.NewServer()
	server.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	server.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthMonitor{db: db, server: server, interval: interval}
}

// Check pings the database once and updates the served status
func (m *HealthMonitor) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	err := m.db.PingContext(ctx)

	m.mu.Lock()
	changed := m.serving != (err == nil)
	m.serving = err == nil
	m.lastErr = err
	m.mu.Unlock()

	status := healthpb.HealthCheckResponse_SERVING
	if err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	m.server.SetServingStatus("", status)
	m.server.SetServingStatus(ServiceName, status)

	if changed {
		if err != nil {
			logger.Warn(ctx).Err(err).Msg("Database unreachable, reporting NOT_SERVING")
		} else {
			logger.Info(ctx).Msg("Database reachable, reporting SERVING")
		}
	}
	return err
}

// Healthy returns the result of the last check
func (m *HealthMonitor) Healthy() (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.serving, m.lastErr
}

// Run checks immediately and then on every tick until ctx is done
func (m *HealthMonitor) Run(ctx context.Context) {
	_ = m.Check(ctx)
	if m.interval <= 0 {
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = m.Check(ctx)
		}
	}
}

// Shutdown flips every service to NOT_SERVING so clients drain first
func (m *HealthMonitor) Shutdown() {
	m.server.Shutdown()
}

// NewServer creates the gRPC server exposing health and reflection
func NewServer(monitor *HealthMonitor) *grpc.Server {
	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.UnaryInterceptor(ObserveUnary),
	)

	healthpb.RegisterHealthServer(server, monitor.server)

	// Register reflection service (for grpcurl and grpc tools)
	reflection.Register(server)

	return server
}
