package alert

import (
	"fmt"
	"strings"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
)

// Severity ranks how urgently an item needs restocking
type Severity string

// Severities, most urgent first
const (
	SeverityOutOfStock Severity = "OUT_OF_STOCK"
	SeverityCritical   Severity = "CRITICAL"
	SeverityLow        Severity = "LOW"
)

// Severities lists every severity, most urgent first
var Severities = []Severity{SeverityOutOfStock, SeverityCritical, SeverityLow}

// ParseSeverity accepts any letter case
func ParseSeverity(raw string) (Severity, bool) {
	s := Severity(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Severities {
		if s == known {
			return s, true
		}
	}
	return "", false
}

func (s Severity) rank() int {
	for i, known := range Severities {
		if s == known {
			return i
		}
	}
	return len(Severities)
}

// Alert is derived from an item's current state and never stored
type Alert struct {
	ItemID     string   `json:"item_id"`
	SKU        string   `json:"sku"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Location   string   `json:"location"`
	StockLevel int      `json:"stock_level"`
	MinStock   int      `json:"min_stock"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
}

// Classify returns the severity for an item and whether it alerts at all.
// An item with no reorder threshold only alerts once it is empty.
func Classify(stockLevel, minStock int) (Severity, bool) {
	switch {
	case stockLevel <= 0:
		return SeverityOutOfStock, true
	case minStock == 0:
		return "", false
	case stockLevel > minStock:
		return "", false
	case 4*stockLevel <= minStock:
		// stock <= 25% of min, kept in integers
		return SeverityCritical, true
	default:
		return SeverityLow, true
	}
}

// FromItem builds the alert for item, if any
func FromItem(item domain.Item) (Alert, bool) {
	severity, ok := Classify(item.StockLevel, item.MinStock)
	if !ok {
		return Alert{}, false
	}

	return Alert{
		ItemID:     item.ID,
		SKU:        item.SKU,
		Name:       item.Name,
		Category:   item.Category,
		Location:   item.Location,
		StockLevel: item.StockLevel,
		MinStock:   item.MinStock,
		Severity:   severity,
		Message:    message(item, severity),
	}, true
}

func message(item domain.Item, severity Severity) string {
	switch severity {
	case SeverityOutOfStock:
		return fmt.Sprintf("%s (%s) is out of stock", item.Name, item.SKU)
	case SeverityCritical:
		return fmt.Sprintf("%s (%s) is critically low: %d left, minimum %d", item.Name, item.SKU, item.StockLevel, item.MinStock)
	default:
		return fmt.Sprintf("%s (%s) is running low: %d left, minimum %d", item.Name, item.SKU, item.StockLevel, item.MinStock)
	}
}
