package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Audit actions
const (
	ActionCreate      = "CREATE"
	ActionUpdate      = "UPDATE"
	ActionDelete      = "DELETE"
	ActionStockChange = "STOCK_CHANGE"
	ActionBulkCreate  = "BULK_CREATE"
	ActionBulkUpdate  = "BULK_UPDATE"
	ActionBulkStock   = "BULK_STOCK_UPDATE"
	ActionBulkDelete  = "BULK_DELETE"
	ActionRoleChange  = "ROLE_CHANGE"
	ActionToggle      = "TOGGLE_ACTIVE"
)

// Resource types
const (
	ResourceItem = "item"
	ResourceBulk = "bulk"
	ResourceUser = "user"
)

// AuditLog is a best-effort record of a privileged change
type AuditLog struct {
	ID           string         `json:"id" gorm:"type:uuid;primaryKey"`
	Action       string         `json:"action" gorm:"type:varchar(40);not null;index"`
	ResourceType string         `json:"resource_type" gorm:"type:varchar(40);not null;index:idx_audit_resource"`
	ResourceID   string         `json:"resource_id,omitempty" gorm:"index:idx_audit_resource"`
	Changes      datatypes.JSON `json:"changes,omitempty"`
	UserID       string         `json:"user_id" gorm:"not null;index"`
	CreatedAt    time.Time      `json:"created_at" gorm:"index"`
}

// TableName specifies the table name
func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate assigns a uuid when the caller did not
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Entry is what callers hand to a Recorder after a change has committed
type Entry struct {
	Action       string
	ResourceType string
	ResourceID   string
	UserID       string
	Changes      interface{}
}

// ToLog converts the entry into a persistable row
func (e Entry) ToLog() (*AuditLog, error) {
	log := &AuditLog{
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		UserID:       e.UserID,
	}
	if e.Changes != nil {
		raw, err := json.Marshal(e.Changes)
		if err != nil {
			return nil, err
		}
		log.Changes = datatypes.JSON(raw)
	}
	return log, nil
}

// Recorder is the post-commit audit hook. Record never fails the caller.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// NopRecorder drops every entry
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Entry) {}

// Filter narrows audit log listings
type Filter struct {
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}

// Stats summarises the audit trail
type Stats struct {
	Total          int64            `json:"total"`
	ByAction       map[string]int64 `json:"by_action"`
	ByResourceType map[string]int64 `json:"by_resource_type"`
}

// Repository defines the contract for audit log data access
type Repository interface {
	Create(ctx context.Context, log *AuditLog) error
	FindAll(ctx context.Context, filter Filter) ([]AuditLog, int64, error)
	CountBy(ctx context.Context, column string) (map[string]int64, error)
	Count(ctx context.Context) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
