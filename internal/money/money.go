// Package money rounds and formats amounts for display. Pricing math stays in
// float64; this package is only used at the presentation edge.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

type style struct {
	places    int32
	thousands string
	fraction  string
}

// COP has no cents in practice and uses dot as thousands separator.
var styles = map[string]style{
	"COP": {places: 0, thousands: ".", fraction: ","},
	"CLP": {places: 0, thousands: ".", fraction: ","},
	"EUR": {places: 2, thousands: ".", fraction: ","},
}

var defaultStyle = style{places: 2, thousands: ",", fraction: "."}

// Format renders amount with the currency's separators, e.g. "$12.500 COP".
func Format(amount float64, currency string) string {
	st := styleFor(currency)
	d := decimal.NewFromFloat(amount).Round(st.places)

	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}

	raw := d.StringFixed(st.places)
	intPart, fracPart, _ := strings.Cut(raw, ".")

	var b strings.Builder
	b.Grow(len(raw) + len(intPart)/3 + len(currency) + 3)
	if neg {
		b.WriteString("-")
	}
	b.WriteString("$")

	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteString(st.thousands)
		b.WriteString(intPart[i : i+3])
	}
	if fracPart != "" {
		b.WriteString(st.fraction)
		b.WriteString(fracPart)
	}
	if currency != "" {
		b.WriteString(" ")
		b.WriteString(strings.ToUpper(currency))
	}

	return b.String()
}

// Percent renders a ratio already expressed in percent with two decimals.
func Percent(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2) + "%"
}

func styleFor(currency string) style {
	if st, ok := styles[strings.ToUpper(currency)]; ok {
		return st
	}
	return defaultStyle
}
