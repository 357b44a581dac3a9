package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidators(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	NonNegativeFloat("cost", -1, v)
	NonNegativeFloat("nan", math.NaN(), v)
	PositiveFloat("hours", 0, v)
	Percent("waste", 120, v)
	MinInt("units", 0, 1, v)
	OneOf("basis", "weekly", []string{"per_unit", "run"}, v)

	require.Equal(t, Violations{
		"name":  "required",
		"cost":  "must_be_non_negative",
		"nan":   "must_be_non_negative",
		"hours": "must_be_positive",
		"waste": "out_of_range",
		"units": "too_small",
		"basis": "invalid_choice",
	}, v)
}

func TestValidators_AcceptGoodValues(t *testing.T) {
	v := Violations{}
	Required("name", "PLA", v)
	NonNegativeFloat("cost", 0, v)
	PositiveFloat("hours", 0.5, v)
	Percent("waste", 100, v)
	MinInt("units", 1, 1, v)
	OneOf("basis", "run", []string{"per_unit", "run"}, v)
	require.True(t, v.Empty())
}
