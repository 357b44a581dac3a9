package pricing

// CostParameters holds everything besides materials that feeds operating expenses.
type CostParameters struct {
	Machines           []Equipment        `json:"machines"`
	LaborHours         float64            `json:"labor_hours"`
	LaborRate          float64            `json:"labor_rate"`
	ManualDepreciation float64            `json:"manual_depreciation"`
	OverheadRate       float64            `json:"overhead_rate"`
	OverheadWorksheet  *OverheadWorksheet `json:"overhead_worksheet,omitempty"`
}

// LaborOverhead is the labor and overhead share of a job.
type LaborOverhead struct {
	Hours        float64 `json:"hours"`
	LaborCost    float64 `json:"labor_cost"`
	OverheadRate float64 `json:"overhead_rate"`
	OverheadCost float64 `json:"overhead_cost"`
}

// ComputeLaborOverhead multiplies the tracked hours by the labor and overhead
// rates. An attached worksheet replaces the direct overhead rate.
func ComputeLaborOverhead(p CostParameters) (LaborOverhead, error) {
	rate := p.OverheadRate
	if p.OverheadWorksheet != nil {
		r, err := p.OverheadWorksheet.HourlyRate()
		if err != nil {
			return LaborOverhead{}, err
		}
		rate = r
	}

	return LaborOverhead{
		Hours:        p.LaborHours,
		LaborCost:    p.LaborHours * p.LaborRate,
		OverheadRate: rate,
		OverheadCost: p.LaborHours * rate,
	}, nil
}
