package pricing

import "fmt"

// Category is one of the three fixed cost-of-goods buckets.
type Category string

const (
	CategoryMaterials   Category = "materials"
	CategoryPackaging   Category = "packaging"
	CategoryDecorations Category = "decorations"
)

// CostMode says how a line item's cost is entered.
type CostMode string

const (
	// CostPerUnit multiplies UnitCost by Quantity.
	CostPerUnit CostMode = "per_unit"
	// CostTotal takes TotalCost as the line amount.
	CostTotal CostMode = "total"
)

// LineItem is a single material, packaging or decoration entry.
type LineItem struct {
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	Mode         CostMode `json:"mode"`
	UnitCost     *float64 `json:"unit_cost,omitempty"`
	TotalCost    *float64 `json:"total_cost,omitempty"`
	Quantity     float64  `json:"quantity"`
	Unit         string   `json:"unit,omitempty"`
	WastePercent float64  `json:"waste_percent,omitempty"`
}

// MaterialCosts holds the cost of goods split by category.
type MaterialCosts struct {
	Materials   float64 `json:"materials"`
	Packaging   float64 `json:"packaging"`
	Decorations float64 `json:"decorations"`
	Total       float64 `json:"total"`
}

// Cost returns the line amount, including the waste surcharge for materials.
func (li LineItem) Cost() (float64, error) {
	var cost float64
	switch li.Mode {
	case CostPerUnit:
		if li.UnitCost == nil {
			return 0, fmt.Errorf("%w: %q has no unit cost", ErrMissingCostValue, li.Name)
		}
		cost = *li.UnitCost * li.Quantity
	case CostTotal:
		if li.TotalCost == nil {
			return 0, fmt.Errorf("%w: %q has no total cost", ErrMissingCostValue, li.Name)
		}
		cost = *li.TotalCost
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCostMode, li.Mode)
	}

	switch li.Category {
	case CategoryMaterials:
		if li.WastePercent != 0 {
			cost *= 1.0 + li.WastePercent/100.0
		}
	case CategoryPackaging, CategoryDecorations:
		// waste only applies to primary materials
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, li.Category)
	}

	return cost, nil
}

// AggregateMaterials sums line item costs per category.
func AggregateMaterials(items []LineItem) (MaterialCosts, error) {
	var out MaterialCosts
	for i, item := range items {
		cost, err := item.Cost()
		if err != nil {
			return MaterialCosts{}, fmt.Errorf("line item %d: %w", i, err)
		}
		switch item.Category {
		case CategoryMaterials:
			out.Materials += cost
		case CategoryPackaging:
			out.Packaging += cost
		case CategoryDecorations:
			out.Decorations += cost
		}
	}
	out.Total = out.Materials + out.Packaging + out.Decorations
	return out, nil
}
