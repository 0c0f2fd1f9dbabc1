package audittest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// MemoryRepository is an in-process domain.Repository for tests
type MemoryRepository struct {
	mu   sync.Mutex
	logs []domain.AuditLog
	now  func() time.Time
	// Err, when set, fails every Create
	Err error
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

// SetClock overrides the time stamped on new logs
func (r *MemoryRepository) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// Logs returns a copy of every stored log
func (r *MemoryRepository) Logs() []domain.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditLog(nil), r.logs...)
}

func (r *MemoryRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = r.now().UTC()
	}
	r.logs = append(r.logs, *log)
	return nil
}

func (r *MemoryRepository) FindAll(ctx context.Context, filter domain.Filter) ([]domain.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []domain.AuditLog
	for _, log := range r.logs {
		switch {
		case filter.UserID != "" && log.UserID != filter.UserID,
			filter.Action != "" && log.Action != filter.Action,
			filter.ResourceType != "" && log.ResourceType != filter.ResourceType,
			filter.ResourceID != "" && log.ResourceID != filter.ResourceID,
			filter.StartDate != nil && log.CreatedAt.Before(*filter.StartDate),
			filter.EndDate != nil && log.CreatedAt.After(*filter.EndDate):
			continue
		}
		matched = append(matched, log)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []domain.AuditLog{}, total, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *MemoryRepository) CountBy(ctx context.Context, column string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, log := range r.logs {
		switch column {
		case "action":
			counts[log.Action]++
		case "resource_type":
			counts[log.ResourceType]++
		case "user_id":
			counts[log.UserID]++
		default:
			return nil, apperror.InvalidArgument("cannot group audit logs by %s", column)
		}
	}
	return counts, nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.logs)), nil
}

func (r *MemoryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.logs[:0]
	var deleted int64
	for _, log := range r.logs {
		if log.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, log)
	}
	r.logs = kept
	return deleted, nil
}
