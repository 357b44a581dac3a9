package pricing

import (
	"fmt"
	"math"
)

// Equipment is a machine used on a job.
type Equipment struct {
	Name          string  `json:"name"`
	PurchaseCost  float64 `json:"purchase_cost"`
	LifetimeHours float64 `json:"lifetime_hours"`
	UsageHours    float64 `json:"usage_hours"`
	MarkupPercent float64 `json:"markup_percent"`
}

// MachineCost is the per-machine share of a job.
type MachineCost struct {
	Name         string  `json:"name"`
	Depreciation float64 `json:"depreciation"`
	BillableRate float64 `json:"billable_rate"`
}

// MachineCosts aggregates every machine attached to a job.
type MachineCosts struct {
	Machines          []MachineCost `json:"machines"`
	TotalDepreciation float64       `json:"total_depreciation"`
	TotalMachineRate  float64       `json:"total_machine_rate"`
}

// Cost amortizes the purchase cost over the rated lifetime by the hours used
// and applies the markup to get the billable amount.
func (e Equipment) Cost() (MachineCost, error) {
	if !(e.LifetimeHours > 0) || math.IsInf(e.LifetimeHours, 0) {
		return MachineCost{}, fmt.Errorf("%w: %q has %v", ErrInvalidLifetimeHours, e.Name, e.LifetimeHours)
	}

	depreciation := e.PurchaseCost * (e.UsageHours / e.LifetimeHours)
	return MachineCost{
		Name:         e.Name,
		Depreciation: depreciation,
		BillableRate: depreciation * (1.0 + e.MarkupPercent/100.0),
	}, nil
}

// ComputeMachineCosts runs Cost for every machine and sums the results.
func ComputeMachineCosts(machines []Equipment) (MachineCosts, error) {
	out := MachineCosts{Machines: make([]MachineCost, 0, len(machines))}
	for _, m := range machines {
		mc, err := m.Cost()
		if err != nil {
			return MachineCosts{}, err
		}
		out.Machines = append(out.Machines, mc)
		out.TotalDepreciation += mc.Depreciation
		out.TotalMachineRate += mc.BillableRate
	}
	return out, nil
}
