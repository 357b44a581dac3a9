package pricing

import "fmt"

// PriceBasis says whether a sale amount is per unit or for the whole run.
type PriceBasis string

const (
	PricePerUnit PriceBasis = "per_unit"
	PriceForRun  PriceBasis = "run"
)

// SalePriceInput describes what the customer is charged.
type SalePriceInput struct {
	Amount      float64    `json:"amount"`
	Basis       PriceBasis `json:"basis"`
	Units       int        `json:"units"`
	FixedCharge float64    `json:"fixed_charge"`
}

// SaleFigures is the revenue side of a breakdown.
type SaleFigures struct {
	GrossBeforeFixed float64 `json:"gross_before_fixed"`
	FixedCharge      float64 `json:"fixed_charge"`
	TotalSalePrice   float64 `json:"total_sale_price"`
	VATAmount        float64 `json:"vat_amount"`
	NetSalePrice     float64 `json:"net_sale_price"`
}

// OperatingExpenses splits the non-material costs of a job.
type OperatingExpenses struct {
	Machines     float64 `json:"machines"`
	Labor        float64 `json:"labor"`
	Depreciation float64 `json:"depreciation"`
	Overhead     float64 `json:"overhead"`
	Total        float64 `json:"total"`
}

// PerUnitView divides every total by the unit count.
type PerUnitView struct {
	Sale              SaleFigures       `json:"sale"`
	COGS              MaterialCosts     `json:"cogs"`
	GrossProfit       float64           `json:"gross_profit"`
	OperatingExpenses OperatingExpenses `json:"operating_expenses"`
	NetProfit         float64           `json:"net_profit"`
}

// PercentOfNetSales expresses cost and profit lines relative to net sales.
type PercentOfNetSales struct {
	COGS              MaterialCosts     `json:"cogs"`
	GrossProfit       float64           `json:"gross_profit"`
	OperatingExpenses OperatingExpenses `json:"operating_expenses"`
	NetProfit         float64           `json:"net_profit"`
}

// PricingBreakdown is the full profit and loss view of one product.
type PricingBreakdown struct {
	Units             int               `json:"units"`
	Sale              SaleFigures       `json:"sale"`
	COGS              MaterialCosts     `json:"cogs"`
	GrossProfit       float64           `json:"gross_profit"`
	OperatingExpenses OperatingExpenses `json:"operating_expenses"`
	Machines          MachineCosts      `json:"machines"`
	LaborOverhead     LaborOverhead     `json:"labor_overhead"`
	NetProfit         float64           `json:"net_profit"`
	PerUnit           PerUnitView       `json:"per_unit"`
	PercentOfNetSales PercentOfNetSales `json:"percent_of_net_sales"`
}

// ComputeProductPricing turns the cost and sale inputs of one product into
// a PricingBreakdown. It is pure: identical inputs give identical output.
func ComputeProductPricing(items []LineItem, costs CostParameters, sale SalePriceInput, tax TaxSetting) (PricingBreakdown, error) {
	if sale.Units <= 0 {
		return PricingBreakdown{}, fmt.Errorf("%w: %d", ErrInvalidUnitCount, sale.Units)
	}

	var grossBeforeFixed float64
	switch sale.Basis {
	case PricePerUnit:
		grossBeforeFixed = sale.Amount * float64(sale.Units)
	case PriceForRun:
		grossBeforeFixed = sale.Amount
	default:
		return PricingBreakdown{}, fmt.Errorf("%w: %q", ErrUnknownPriceBasis, sale.Basis)
	}
	totalSale := grossBeforeFixed + sale.FixedCharge

	taxed, err := ApplyTax(totalSale, tax)
	if err != nil {
		return PricingBreakdown{}, err
	}

	cogs, err := AggregateMaterials(items)
	if err != nil {
		return PricingBreakdown{}, err
	}

	machines, err := ComputeMachineCosts(costs.Machines)
	if err != nil {
		return PricingBreakdown{}, err
	}

	labor, err := ComputeLaborOverhead(costs)
	if err != nil {
		return PricingBreakdown{}, err
	}

	opex := OperatingExpenses{
		Machines:     machines.TotalMachineRate,
		Labor:        labor.LaborCost,
		Depreciation: costs.ManualDepreciation,
		Overhead:     labor.OverheadCost,
	}
	opex.Total = opex.Machines + opex.Labor + opex.Depreciation + opex.Overhead

	b := PricingBreakdown{
		Units: sale.Units,
		Sale: SaleFigures{
			GrossBeforeFixed: grossBeforeFixed,
			FixedCharge:      sale.FixedCharge,
			TotalSalePrice:   totalSale,
			VATAmount:        taxed.Tax,
			NetSalePrice:     taxed.Net,
		},
		COGS:              cogs,
		GrossProfit:       taxed.Net - cogs.Total,
		OperatingExpenses: opex,
		Machines:          machines,
		LaborOverhead:     labor,
	}
	b.NetProfit = b.GrossProfit - opex.Total
	b.PerUnit = perUnitView(b)
	b.PercentOfNetSales = percentOfNetSales(b)

	return b, nil
}

func perUnitView(b PricingBreakdown) PerUnitView {
	n := float64(b.Units)
	per := func(v float64) float64 { return v / n }
	return PerUnitView{
		Sale: SaleFigures{
			GrossBeforeFixed: per(b.Sale.GrossBeforeFixed),
			FixedCharge:      per(b.Sale.FixedCharge),
			TotalSalePrice:   per(b.Sale.TotalSalePrice),
			VATAmount:        per(b.Sale.VATAmount),
			NetSalePrice:     per(b.Sale.NetSalePrice),
		},
		COGS:              mapMaterials(b.COGS, per),
		GrossProfit:       per(b.GrossProfit),
		OperatingExpenses: mapExpenses(b.OperatingExpenses, per),
		NetProfit:         per(b.NetProfit),
	}
}

func percentOfNetSales(b PricingBreakdown) PercentOfNetSales {
	net := b.Sale.NetSalePrice
	if net == 0 {
		return PercentOfNetSales{}
	}
	pct := func(v float64) float64 { return v / net * 100 }
	return PercentOfNetSales{
		COGS:              mapMaterials(b.COGS, pct),
		GrossProfit:       pct(b.GrossProfit),
		OperatingExpenses: mapExpenses(b.OperatingExpenses, pct),
		NetProfit:         pct(b.NetProfit),
	}
}

func mapMaterials(m MaterialCosts, fn func(float64) float64) MaterialCosts {
	return MaterialCosts{
		Materials:   fn(m.Materials),
		Packaging:   fn(m.Packaging),
		Decorations: fn(m.Decorations),
		Total:       fn(m.Total),
	}
}

func mapExpenses(e OperatingExpenses, fn func(float64) float64) OperatingExpenses {
	return OperatingExpenses{
		Machines:     fn(e.Machines),
		Labor:        fn(e.Labor),
		Depreciation: fn(e.Depreciation),
		Overhead:     fn(e.Overhead),
		Total:        fn(e.Total),
	}
}
