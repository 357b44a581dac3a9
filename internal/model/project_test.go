package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Simplici0/costquote/internal/pricing"
)

func TestProjectInputs_CostsOr(t *testing.T) {
	workshop := pricing.OverheadWorksheet{Rent: 1600, MonthlyHours: 160}

	in := ProjectInputs{Costs: pricing.CostParameters{LaborHours: 2}}
	costs := in.CostsOr(workshop)
	require.NotNil(t, costs.OverheadWorksheet)
	require.Equal(t, workshop, *costs.OverheadWorksheet)
	require.Nil(t, in.Costs.OverheadWorksheet)

	in.Costs.OverheadRate = 4
	require.Nil(t, in.CostsOr(workshop).OverheadWorksheet)

	own := pricing.OverheadWorksheet{Rent: 100, MonthlyHours: 10}
	in = ProjectInputs{Costs: pricing.CostParameters{OverheadWorksheet: &own}}
	require.Equal(t, own, *in.CostsOr(workshop).OverheadWorksheet)

	in = ProjectInputs{}
	require.Nil(t, in.CostsOr(pricing.OverheadWorksheet{Rent: 100}).OverheadWorksheet)
}

func TestProjectInputs_TaxOr(t *testing.T) {
	fallback := pricing.TaxSetting{Rate: 19}
	require.Equal(t, fallback, ProjectInputs{}.TaxOr(fallback))

	own := pricing.TaxSetting{Rate: 5, Inclusive: true}
	require.Equal(t, own, ProjectInputs{Tax: &own}.TaxOr(fallback))
}
