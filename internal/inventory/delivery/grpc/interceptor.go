package grpc

import (
	"context"
	"path"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tair/warehouse-inventory/internal/metrics"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

// ObserveUnary records the Prometheus request metrics for every unary call
// and logs it. Health probes run every few seconds, so successful calls are
// logged at debug level only.
func ObserveUnary(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	elapsed := time.Since(start)

	code := status.Code(err)
	metrics.GRPCRequests.WithLabelValues(info.FullMethod, code.String()).Inc()
	metrics.GRPCDuration.WithLabelValues(info.FullMethod).Observe(elapsed.Seconds())

	event := logger.Debug(ctx)
	if code != codes.OK {
		event = logger.Warn(ctx).Err(err)
	}
	event.
		Str("method", path.Base(info.FullMethod)).
		Str("service", path.Dir(info.FullMethod)).
		Str("grpc_status", code.String()).
		Dur("duration", elapsed).
		Msg("gRPC call")

	return resp, err
}
