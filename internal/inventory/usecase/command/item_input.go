package command

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/validation"
)

// ItemInput is the full set of fields needed to create an item
type ItemInput struct {
	SKU         string          `json:"sku" validate:"required,max=64"`
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category" validate:"required,max=100"`
	Location    string          `json:"location" validate:"required,max=100"`
	StockLevel  int             `json:"stock_level" validate:"gte=0"`
	MinStock    int             `json:"min_stock" validate:"gte=0"`
	MaxStock    *int            `json:"max_stock,omitempty" validate:"omitempty,gte=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func (in ItemInput) toItem() *domain.Item {
	return &domain.Item{
		SKU:         strings.TrimSpace(in.SKU),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Location:    strings.TrimSpace(in.Location),
		StockLevel:  in.StockLevel,
		MinStock:    in.MinStock,
		MaxStock:    in.MaxStock,
		UnitPrice:   in.UnitPrice,
	}
}

// validate returns the first failing check as an InvalidArgument error
func (in ItemInput) validate() error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	return in.toItem().Validate()
}

// ItemPatch carries the descriptive fields of an item. Stock level is absent
// on purpose: it only moves through stock actions.
type ItemPatch struct {
	SKU         *string          `json:"sku,omitempty" validate:"omitempty,min=1,max=64"`
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Location    *string          `json:"location,omitempty" validate:"omitempty,min=1,max=100"`
	MinStock    *int             `json:"min_stock,omitempty" validate:"omitempty,gte=0"`
	MaxStock    *int             `json:"max_stock,omitempty" validate:"omitempty,gte=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
}

var errEmptyPatch = errors.New("no fields to update")

// validate checks the patch in isolation
func (p ItemPatch) validate() error {
	if p.isEmpty() {
		return errEmptyPatch
	}
	return validation.Struct(p)
}

func (p ItemPatch) isEmpty() bool {
	return p.SKU == nil && p.Name == nil && p.Description == nil && p.Category == nil &&
		p.Location == nil && p.MinStock == nil && p.MaxStock == nil && p.UnitPrice == nil
}

// apply copies the set fields onto item and returns the names of the fields that changed
func (p ItemPatch) apply(item *domain.Item) []string {
	var changed []string
	setString := func(name string, dst *string, src *string) {
		if src == nil {
			return
		}
		value := strings.TrimSpace(*src)
		if name == "description" {
			value = *src
		}
		if *dst != value {
			*dst = value
			changed = append(changed, name)
		}
	}

	setString("sku", &item.SKU, p.SKU)
	setString("name", &item.Name, p.Name)
	setString("description", &item.Description, p.Description)
	setString("category", &item.Category, p.Category)
	setString("location", &item.Location, p.Location)

	if p.MinStock != nil && item.MinStock != *p.MinStock {
		item.MinStock = *p.MinStock
		changed = append(changed, "min_stock")
	}
	if p.MaxStock != nil && (item.MaxStock == nil || *item.MaxStock != *p.MaxStock) {
		maxStock := *p.MaxStock
		item.MaxStock = &maxStock
		changed = append(changed, "max_stock")
	}
	if p.UnitPrice != nil && !item.UnitPrice.Equal(*p.UnitPrice) {
		item.UnitPrice = *p.UnitPrice
		changed = append(changed, "unit_price")
	}
	return changed
}
