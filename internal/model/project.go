package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/costquote/internal/pricing"
)

// ProjectInputs is the full input set of a pricing project.
type ProjectInputs struct {
	LineItems []pricing.LineItem     `json:"line_items"`
	Costs     pricing.CostParameters `json:"costs"`
	Sale      pricing.SalePriceInput `json:"sale"`
	Tax       *pricing.TaxSetting    `json:"tax,omitempty"`
}

// Project is a saved product with its latest computed breakdown.
type Project struct {
	ID        uuid.UUID                `json:"id"`
	Name      string                   `json:"name"`
	Currency  string                   `json:"currency"`
	Inputs    ProjectInputs            `json:"inputs"`
	Breakdown pricing.PricingBreakdown `json:"breakdown"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// TaxOr returns the project's own tax setting, or fallback when it has none.
func (in ProjectInputs) TaxOr(fallback pricing.TaxSetting) pricing.TaxSetting {
	if in.Tax != nil {
		return *in.Tax
	}
	return fallback
}

// Clone returns a deep copy of the inputs.
func (in ProjectInputs) Clone() ProjectInputs {
	out := ProjectInputs{
		LineItems: pricing.CloneLineItems(in.LineItems),
		Costs:     pricing.CloneCostParameters(in.Costs),
		Sale:      in.Sale,
	}
	if in.Tax != nil {
		tax := *in.Tax
		out.Tax = &tax
	}
	return out
}

// CostsOr returns a copy of the cost parameters. When they carry neither a
// worksheet nor a direct overhead rate, fallback becomes the worksheet.
// A fallback without working hours is ignored.
func (in ProjectInputs) CostsOr(fallback pricing.OverheadWorksheet) pricing.CostParameters {
	costs := pricing.CloneCostParameters(in.Costs)
	if costs.OverheadWorksheet == nil && costs.OverheadRate == 0 && fallback.MonthlyHours > 0 {
		costs.OverheadWorksheet = &fallback
	}
	return costs
}
