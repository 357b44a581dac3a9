package pricing

import (
	"fmt"
	"math"
)

// TaxSetting is a tax rate in percent and whether amounts already include it.
type TaxSetting struct {
	Rate      float64 `json:"rate"`
	Inclusive bool    `json:"inclusive"`
}

// TaxResult splits an amount into its net and tax parts.
type TaxResult struct {
	Net   float64 `json:"net"`
	Tax   float64 `json:"tax"`
	Gross float64 `json:"gross"`
}

func (s TaxSetting) validate() error {
	if math.IsNaN(s.Rate) || math.IsInf(s.Rate, 0) || s.Rate < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTaxRate, s.Rate)
	}
	return nil
}

// ApplyTax converts amount into net, tax and gross values.
// Inclusive amounts have the tax extracted; exclusive amounts get it added on top.
func ApplyTax(amount float64, setting TaxSetting) (TaxResult, error) {
	if err := setting.validate(); err != nil {
		return TaxResult{}, err
	}

	if setting.Inclusive {
		net := amount / (1.0 + setting.Rate/100.0)
		return TaxResult{Net: net, Tax: amount - net, Gross: amount}, nil
	}

	tax := amount * (setting.Rate / 100.0)
	return TaxResult{Net: amount, Tax: tax, Gross: amount + tax}, nil
}
