package pricing

// CloneLineItems deep-copies items, including the cost pointers.
func CloneLineItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = item
		out[i].UnitCost = cloneFloat(item.UnitCost)
		out[i].TotalCost = cloneFloat(item.TotalCost)
	}
	return out
}

// CloneCostParameters deep-copies the machine list and worksheet.
func CloneCostParameters(p CostParameters) CostParameters {
	out := p
	if p.Machines != nil {
		out.Machines = append([]Equipment(nil), p.Machines...)
	}
	if p.OverheadWorksheet != nil {
		w := *p.OverheadWorksheet
		out.OverheadWorksheet = &w
	}
	return out
}

func cloneBreakdown(b PricingBreakdown) PricingBreakdown {
	out := b
	if b.Machines.Machines != nil {
		out.Machines.Machines = append([]MachineCost(nil), b.Machines.Machines...)
	}
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
