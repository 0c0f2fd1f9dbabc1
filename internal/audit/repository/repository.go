package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// groupableColumns are the columns CountBy may group on
var groupableColumns = map[string]bool{
	"action":        true,
	"resource_type": true,
	"user_id":       true,
}

// GormRepository implements domain.Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new GORM audit repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// AutoMigrate creates the audit_logs table
func (r *GormRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.AuditLog{})
}

func (r *GormRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return apperror.Internal(err, "failed to create audit log")
	}
	return nil
}

func (r *GormRepository) FindAll(ctx context.Context, filter domain.Filter) ([]domain.AuditLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.AuditLog{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.ResourceID != "" {
		query = query.Where("resource_id = ?", filter.ResourceID)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Internal(err, "failed to count audit logs")
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var logs []domain.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, apperror.Internal(err, "failed to list audit logs")
	}
	return logs, total, nil
}

type groupCount struct {
	Key   string
	Count int64
}

// CountBy counts audit logs grouped by column
func (r *GormRepository) CountBy(ctx context.Context, column string) (map[string]int64, error) {
	if !groupableColumns[column] {
		return nil, apperror.InvalidArgument("cannot group audit logs by %s", column)
	}

	var rows []groupCount
	err := r.db.WithContext(ctx).
		Model(&domain.AuditLog{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Internal(err, "failed to count audit logs by %s", column)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}

func (r *GormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.AuditLog{}).Count(&count).Error; err != nil {
		return 0, apperror.Internal(err, "failed to count audit logs")
	}
	return count, nil
}

func (r *GormRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&domain.AuditLog{})
	if result.Error != nil {
		return 0, apperror.Internal(result.Error, "failed to delete old audit logs")
	}
	return result.RowsAffected, nil
}
