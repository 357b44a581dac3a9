package pricing

import "fmt"

// PricedProduct is the snapshot of a product taken when it is added to a quote.
// It carries its own copy of the inputs, so later edits to the source do not leak in.
type PricedProduct struct {
	ProductName string           `json:"product_name"`
	Currency    string           `json:"currency,omitempty"`
	Quantity    int              `json:"quantity"`
	UnitPrice   float64          `json:"unit_price"`
	TotalPrice  float64          `json:"total_price"`
	Breakdown   PricingBreakdown `json:"breakdown"`
	LineItems   []LineItem       `json:"line_items"`
	Costs       CostParameters   `json:"costs"`
	Sale        SalePriceInput   `json:"sale"`
	Tax         TaxSetting       `json:"tax"`
}

// NewPricedProduct prices the inputs and freezes them into a PricedProduct.
func NewPricedProduct(name, currency string, items []LineItem, costs CostParameters, sale SalePriceInput, tax TaxSetting) (PricedProduct, error) {
	b, err := ComputeProductPricing(items, costs, sale, tax)
	if err != nil {
		return PricedProduct{}, err
	}

	return PricedProduct{
		ProductName: name,
		Currency:    currency,
		Quantity:    sale.Units,
		UnitPrice:   b.Sale.TotalSalePrice / float64(sale.Units),
		TotalPrice:  b.Sale.TotalSalePrice,
		Breakdown:   cloneBreakdown(b),
		LineItems:   CloneLineItems(items),
		Costs:       CloneCostParameters(costs),
		Sale:        sale,
		Tax:         tax,
	}, nil
}

// DiscountType selects how Discount.Amount is read.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Discount reduces the quote subtotal.
type Discount struct {
	Type   DiscountType `json:"type"`
	Amount float64      `json:"amount"`
}

// Shipping is what it costs to ship and what the customer is charged for it.
type Shipping struct {
	Cost             float64 `json:"cost"`
	ChargeToCustomer float64 `json:"charge_to_customer"`
	Inclusive        bool    `json:"inclusive"`
}

// QuoteTotals are the rolled-up amounts of a quote.
type QuoteTotals struct {
	Subtotal       float64    `json:"subtotal"`
	DiscountAmount float64    `json:"discount_amount"`
	AfterDiscount  float64    `json:"after_discount"`
	ShippingAmount float64    `json:"shipping_amount"`
	ProductNet     float64    `json:"product_net"`
	ProductVAT     float64    `json:"product_vat"`
	ShippingNet    float64    `json:"shipping_net"`
	ShippingVAT    float64    `json:"shipping_vat"`
	VATAmount      float64    `json:"vat_amount"`
	TotalAmount    float64    `json:"total_amount"`
	Tax            TaxSetting `json:"tax"`
}

// EffectiveTax returns the quote's own setting, or the first product's when
// the quote predates quote-level tax settings.
func EffectiveTax(products []PricedProduct, quoteTax *TaxSetting) TaxSetting {
	if quoteTax != nil {
		return *quoteTax
	}
	if len(products) > 0 {
		return products[0].Tax
	}
	return TaxSetting{}
}

// CheckCurrencies fails when products declare different currencies.
// Products without a currency are ignored.
func CheckCurrencies(products []PricedProduct) (string, error) {
	var currency string
	for i, p := range products {
		if p.Currency == "" {
			continue
		}
		if currency == "" {
			currency = p.Currency
			continue
		}
		if p.Currency != currency {
			return "", fmt.Errorf("%w: product %d is %s, quote is %s", ErrCurrencyMismatch, i, p.Currency, currency)
		}
	}
	return currency, nil
}

// ComputeQuoteTotals aggregates priced products with an optional discount and
// shipping charge. A nil quoteTax falls back to EffectiveTax.
func ComputeQuoteTotals(products []PricedProduct, discount *Discount, shipping *Shipping, quoteTax *TaxSetting) (QuoteTotals, error) {
	if _, err := CheckCurrencies(products); err != nil {
		return QuoteTotals{}, err
	}

	tax := EffectiveTax(products, quoteTax)
	if err := tax.validate(); err != nil {
		return QuoteTotals{}, err
	}

	var t QuoteTotals
	t.Tax = tax
	for _, p := range products {
		t.Subtotal += p.TotalPrice
	}

	if discount != nil {
		switch discount.Type {
		case DiscountPercentage:
			t.DiscountAmount = t.Subtotal * discount.Amount / 100
		case DiscountFixed:
			t.DiscountAmount = discount.Amount
		default:
			return QuoteTotals{}, fmt.Errorf("%w: %q", ErrUnknownDiscountType, discount.Type)
		}
		if t.DiscountAmount > t.Subtotal {
			return QuoteTotals{}, fmt.Errorf("%w: %v off %v", ErrDiscountTooLarge, t.DiscountAmount, t.Subtotal)
		}
	}
	t.AfterDiscount = t.Subtotal - t.DiscountAmount

	productTax, err := ApplyTax(t.AfterDiscount, tax)
	if err != nil {
		return QuoteTotals{}, err
	}
	t.ProductNet = productTax.Net
	t.ProductVAT = productTax.Tax

	if shipping != nil {
		t.ShippingAmount = shipping.ChargeToCustomer
		switch {
		case shipping.Inclusive:
			st, err := ApplyTax(shipping.ChargeToCustomer, TaxSetting{Rate: tax.Rate, Inclusive: true})
			if err != nil {
				return QuoteTotals{}, err
			}
			t.ShippingNet, t.ShippingVAT = st.Net, st.Tax
		case !tax.Inclusive:
			st, err := ApplyTax(shipping.ChargeToCustomer, TaxSetting{Rate: tax.Rate})
			if err != nil {
				return QuoteTotals{}, err
			}
			t.ShippingNet, t.ShippingVAT = st.Net, st.Tax
		default:
			t.ShippingNet = shipping.ChargeToCustomer
		}
	}

	t.VATAmount = t.ProductVAT + t.ShippingVAT
	if tax.Inclusive {
		t.TotalAmount = t.AfterDiscount + t.ShippingAmount
	} else {
		t.TotalAmount = t.ProductNet + t.ShippingNet + t.VATAmount
	}

	return t, nil
}
