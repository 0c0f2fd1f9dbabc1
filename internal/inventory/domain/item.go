package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// Item represents a SKU-identified inventory record
type Item struct {
	ID          string          `json:"id" gorm:"type:uuid;primaryKey"`
	SKU         string          `json:"sku" gorm:"uniqueIndex;not null"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description"`
	Category    string          `json:"category" gorm:"not null;index"`
	Location    string          `json:"location" gorm:"not null;index"`
	StockLevel  int             `json:"stock_level" gorm:"not null;default:0;check:stock_level >= 0"`
	MinStock    int             `json:"min_stock" gorm:"not null;default:0;check:min_stock >= 0"`
	MaxStock    *int            `json:"max_stock,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Item) TableName() string {
	return "items"
}

// BeforeCreate assigns a uuid when the caller did not
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// PriceScale is the number of decimal places a unit price may carry
const PriceScale = 2

// numeric(12,2) holds values below 10^10
var maxUnitPrice = decimal.New(1, 10)

// ValidID reports whether id can name a stored item or action. Ids are
// uuids; any other string cannot match a row and is treated as not found.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

// ValidIDs keeps the ids accepted by ValidID, in order
func ValidIDs(ids []string) []string {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if ValidID(id) {
			valid = append(valid, id)
		}
	}
	return valid
}

// Validate checks the item invariants
func (i *Item) Validate() error {
	var problems []string

	if strings.TrimSpace(i.SKU) == "" {
		problems = append(problems, "sku is required")
	}
	if strings.TrimSpace(i.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(i.Category) == "" {
		problems = append(problems, "category is required")
	}
	if strings.TrimSpace(i.Location) == "" {
		problems = append(problems, "location is required")
	}
	if i.StockLevel < 0 {
		problems = append(problems, "stock_level cannot be negative")
	}
	if i.MinStock < 0 {
		problems = append(problems, "min_stock cannot be negative")
	}
	if i.MaxStock != nil && *i.MaxStock < i.MinStock {
		problems = append(problems, "max_stock must be greater than or equal to min_stock")
	}
	if i.UnitPrice.IsNegative() {
		problems = append(problems, "unit_price cannot be negative")
	}
	if !i.UnitPrice.Equal(i.UnitPrice.Truncate(PriceScale)) {
		problems = append(problems, "unit_price must have at most 2 decimal places")
	}
	if i.UnitPrice.GreaterThanOrEqual(maxUnitPrice) {
		problems = append(problems, "unit_price must be less than 10000000000")
	}

	if len(problems) > 0 {
		return apperror.InvalidArgument("%s", strings.Join(problems, ", "))
	}
	return nil
}

// TotalValue returns stock level times unit price
func (i *Item) TotalValue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.StockLevel)))
}

// IsLowStock reports whether the item is at or below its reorder threshold
func (i *Item) IsLowStock() bool {
	return i.StockLevel <= i.MinStock
}

// IsOutOfStock reports whether nothing is left
func (i *Item) IsOutOfStock() bool {
	return i.StockLevel == 0
}
