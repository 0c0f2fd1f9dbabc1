package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/tair/warehouse-inventory/internal/metrics"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) PingContext(ctx context.Context) error {
	return p.err
}

func TestHealthMonitorFollowsDatabase(t *testing.T) {
	ctx := context.Background()
	db := &fakePinger{}
	monitor := NewHealthMonitor(db, time.Minute)

	resp, err := monitor.server.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)

	require.NoError(t, monitor.Check(ctx))
	resp, err = monitor.server.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
	healthy, _ := monitor.Healthy()
	assert.True(t, healthy)

	db.err = errors.New("connection refused")
	assert.Error(t, monitor.Check(ctx))
	resp, err = monitor.server.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
	healthy, lastErr := monitor.Healthy()
	assert.False(t, healthy)
	assert.EqualError(t, lastErr, "connection refused")
}

func TestHealthMonitorShutdown(t *testing.T) {
	ctx := context.Background()
	monitor := NewHealthMonitor(&fakePinger{}, 0)
	monitor.Run(ctx)

	monitor.Shutdown()
	resp, err := monitor.server.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
}

func TestObserveUnaryCountsByStatus(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
	ok := metrics.GRPCRequests.WithLabelValues(info.FullMethod, codes.OK.String())
	unavailable := metrics.GRPCRequests.WithLabelValues(info.FullMethod, codes.Unavailable.String())
	okBefore := testutil.ToFloat64(ok)
	unavailableBefore := testutil.ToFloat64(unavailable)

	resp, err := ObserveUnary(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "pong", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "pong", resp)

	_, err = ObserveUnary(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, status.Error(codes.Unavailable, "draining")
	})
	assert.Equal(t, codes.Unavailable, status.Code(err))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, unavailableBefore+1, testutil.ToFloat64(unavailable))
}
