package audit

import (
	"context"
	"sync"
	"time"

	"github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/metrics"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

// AsyncRecorder writes audit logs on background goroutines. The caller's
// change has already committed, so a failed write is logged and dropped.
type AsyncRecorder struct {
	repo    domain.Repository
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewAsyncRecorder creates a recorder writing to repo
func NewAsyncRecorder(repo domain.Repository, timeout time.Duration) *AsyncRecorder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AsyncRecorder{repo: repo, timeout: timeout}
}

// Record queues entry for writing and returns immediately
func (r *AsyncRecorder) Record(ctx context.Context, entry domain.Entry) {
	log, err := entry.ToLog()
	if err != nil {
		metrics.AuditWrites.WithLabelValues("failure").Inc()
		logger.Warn(ctx).Err(err).Str("action", entry.Action).Msg("Failed to encode audit changes")
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		if err := r.repo.Create(writeCtx, log); err != nil {
			metrics.AuditWrites.WithLabelValues("failure").Inc()
			logger.WithContext(writeCtx).Error().
				Err(err).
				Str("action", log.Action).
				Str("resource_type", log.ResourceType).
				Str("resource_id", log.ResourceID).
				Msg("Failed to write audit log")
			return
		}
		metrics.AuditWrites.WithLabelValues("success").Inc()
	}()
}

// Close waits for in-flight writes
func (r *AsyncRecorder) Close() {
	r.wg.Wait()
}
