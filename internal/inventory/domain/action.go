package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActionType is the kind of stock movement
type ActionType string

// Action types
const (
	ActionAddStock    ActionType = "ADD_STOCK"
	ActionRemoveStock ActionType = "REMOVE_STOCK"
	ActionAdjustStock ActionType = "ADJUST_STOCK"
	ActionTransfer    ActionType = "TRANSFER"
)

// ActionTypes lists every valid action type
var ActionTypes = []ActionType{ActionAddStock, ActionRemoveStock, ActionAdjustStock, ActionTransfer}

// Valid reports whether t is a known action type
func (t ActionType) Valid() bool {
	for _, known := range ActionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Action is the immutable record of a stock-level change
type Action struct {
	ID            string     `json:"id" gorm:"type:uuid;primaryKey"`
	Type          ActionType `json:"type" gorm:"type:varchar(20);not null;index"`
	Quantity      int        `json:"quantity" gorm:"not null"`
	PreviousLevel int        `json:"previous_level" gorm:"not null"`
	NewLevel      int        `json:"new_level" gorm:"not null"`
	Notes         string     `json:"notes,omitempty"`
	ItemID        string     `json:"item_id" gorm:"type:uuid;not null;index"`
	UserID        string     `json:"user_id" gorm:"not null;index"`
	// EventID is set for actions applied from a Kafka event and makes
	// redelivery of the same event a no-op.
	EventID       *string    `json:"event_id,omitempty" gorm:"type:varchar(100);uniqueIndex"`
	CreatedAt     time.Time  `json:"created_at" gorm:"index"`

	Item *Item `json:"item,omitempty" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (Action) TableName() string {
	return "actions"
}

// BeforeCreate assigns a uuid when the caller did not
func (a *Action) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// SignedDelta is the signed stock movement recorded by this action
func (a *Action) SignedDelta() int {
	return a.NewLevel - a.PreviousLevel
}
