package pricing

import "errors"

var (
	ErrInvalidUnitCount     = errors.New("invalid unit count")
	ErrInvalidLifetimeHours = errors.New("invalid machine lifetime hours")
	ErrInvalidTaxRate       = errors.New("invalid tax rate")
	ErrMissingCostValue     = errors.New("missing cost value")
	ErrCurrencyMismatch     = errors.New("currency mismatch")
	ErrUnknownCostMode      = errors.New("unknown cost mode")
	ErrUnknownCategory      = errors.New("unknown line item category")
	ErrUnknownPriceBasis    = errors.New("unknown price basis")
	ErrUnknownDiscountType  = errors.New("unknown discount type")
	ErrInvalidWorkingHours  = errors.New("invalid monthly working hours")
	ErrDiscountTooLarge     = errors.New("discount exceeds subtotal")
)

// IsInputError reports whether err was caused by pricing input the caller can correct.
func IsInputError(err error) bool {
	for _, target := range []error{
		ErrInvalidUnitCount,
		ErrInvalidLifetimeHours,
		ErrInvalidTaxRate,
		ErrMissingCostValue,
		ErrCurrencyMismatch,
		ErrUnknownCostMode,
		ErrUnknownCategory,
		ErrUnknownPriceBasis,
		ErrUnknownDiscountType,
		ErrInvalidWorkingHours,
		ErrDiscountTooLarge,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
