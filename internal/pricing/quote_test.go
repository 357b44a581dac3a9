package pricing

import (
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
)

func pricedAt(total float64, tax TaxSetting) PricedProduct {
	return PricedProduct{ProductName: "item", Quantity: 1, UnitPrice: total, TotalPrice: total, Tax: tax}
}

func TestComputeQuoteTotals_DiscountAndExclusiveShipping(t *testing.T) {
	exclusive := TaxSetting{Rate: 18}
	products := []PricedProduct{pricedAt(120, exclusive), pricedAt(180, exclusive)}

	got, err := ComputeQuoteTotals(products,
		&Discount{Type: DiscountPercentage, Amount: 10},
		&Shipping{ChargeToCustomer: 20},
		nil,
	)
	if err != nil {
		t.Fatalf("ComputeQuoteTotals: %v", err)
	}

	nearlyEqual(t, "subtotal", got.Subtotal, 300)
	nearlyEqual(t, "discount", got.DiscountAmount, 30)
	nearlyEqual(t, "afterDiscount", got.AfterDiscount, 270)
	nearlyEqual(t, "shipping", got.ShippingAmount, 20)
	nearlyEqual(t, "shippingVAT", got.ShippingVAT, 3.6)
	nearlyEqual(t, "vat", got.VATAmount, 270*0.18+3.6)
	nearlyEqual(t, "total", got.TotalAmount, 270+20+270*0.18+3.6)
}

func TestComputeQuoteTotals_ShippingBranches(t *testing.T) {
	tests := []struct {
		name        string
		tax         TaxSetting
		shipping    *Shipping
		wantShipNet float64
		wantShipVAT float64
		wantTotal   float64
	}{
		{
			name:        "shipping includes tax",
			tax:         TaxSetting{Rate: 25},
			shipping:    &Shipping{ChargeToCustomer: 25, Inclusive: true},
			wantShipNet: 20,
			wantShipVAT: 5,
			wantTotal:   100 + 25 + 20 + 5,
		},
		{
			name:        "shipping excludes tax, products exclusive",
			tax:         TaxSetting{Rate: 25},
			shipping:    &Shipping{ChargeToCustomer: 20},
			wantShipNet: 20,
			wantShipVAT: 5,
			wantTotal:   100 + 25 + 20 + 5,
		},
		{
			name:        "shipping excludes tax, products inclusive",
			tax:         TaxSetting{Rate: 25, Inclusive: true},
			shipping:    &Shipping{ChargeToCustomer: 20},
			wantShipNet: 20,
			wantShipVAT: 0,
			wantTotal:   120,
		},
		{
			name:      "no shipping",
			tax:       TaxSetting{Rate: 25, Inclusive: true},
			wantTotal: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeQuoteTotals([]PricedProduct{pricedAt(100, tt.tax)}, nil, tt.shipping, nil)
			if err != nil {
				t.Fatalf("ComputeQuoteTotals: %v", err)
			}
			nearlyEqual(t, "shippingNet", got.ShippingNet, tt.wantShipNet)
			nearlyEqual(t, "shippingVAT", got.ShippingVAT, tt.wantShipVAT)
			nearlyEqual(t, "total", got.TotalAmount, tt.wantTotal)
			nearlyEqual(t, "vat split", got.VATAmount, got.ProductVAT+got.ShippingVAT)
		})
	}
}

func TestComputeQuoteTotals_QuoteTaxOverridesFirstProduct(t *testing.T) {
	products := []PricedProduct{pricedAt(100, TaxSetting{Rate: 10})}

	inherited, err := ComputeQuoteTotals(products, nil, nil, nil)
	if err != nil {
		t.Fatalf("ComputeQuoteTotals: %v", err)
	}
	nearlyEqual(t, "inherited vat", inherited.VATAmount, 10)

	own, err := ComputeQuoteTotals(products, nil, nil, &TaxSetting{Rate: 20})
	if err != nil {
		t.Fatalf("ComputeQuoteTotals: %v", err)
	}
	nearlyEqual(t, "own vat", own.VATAmount, 20)
	if own.Tax.Rate != 20 {
		t.Fatalf("expected effective rate 20, got %v", own.Tax.Rate)
	}
}

func TestComputeQuoteTotals_DiscountLargerThanSubtotalIsRejected(t *testing.T) {
	products := []PricedProduct{pricedAt(50, TaxSetting{})}

	if _, err := ComputeQuoteTotals(products, &Discount{Type: DiscountFixed, Amount: 80}, nil, nil); !errors.Is(err, ErrDiscountTooLarge) {
		t.Fatalf("expected ErrDiscountTooLarge, got %v", err)
	}
	if _, err := ComputeQuoteTotals(products, &Discount{Type: DiscountPercentage, Amount: 120}, nil, nil); !errors.Is(err, ErrDiscountTooLarge) {
		t.Fatalf("expected ErrDiscountTooLarge for 120%%, got %v", err)
	}
	if _, err := ComputeQuoteTotals(nil, &Discount{Type: DiscountFixed, Amount: 1}, nil, nil); !errors.Is(err, ErrDiscountTooLarge) {
		t.Fatalf("expected ErrDiscountTooLarge on empty quote, got %v", err)
	}

	got, err := ComputeQuoteTotals(products, &Discount{Type: DiscountFixed, Amount: 50}, nil, nil)
	if err != nil {
		t.Fatalf("ComputeQuoteTotals: %v", err)
	}
	nearlyEqual(t, "discount", got.DiscountAmount, 50)
	nearlyEqual(t, "total", got.TotalAmount, 0)
}

func TestComputeQuoteTotals_Empty(t *testing.T) {
	got, err := ComputeQuoteTotals(nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("ComputeQuoteTotals: %v", err)
	}
	if got.TotalAmount != 0 || got.Subtotal != 0 {
		t.Fatalf("expected zero totals, got %+v", got)
	}
}

func TestComputeQuoteTotals_Errors(t *testing.T) {
	products := []PricedProduct{pricedAt(10, TaxSetting{})}

	if _, err := ComputeQuoteTotals(products, &Discount{Type: "coupon", Amount: 1}, nil, nil); !errors.Is(err, ErrUnknownDiscountType) {
		t.Fatalf("expected ErrUnknownDiscountType, got %v", err)
	}
	if _, err := ComputeQuoteTotals(products, nil, nil, &TaxSetting{Rate: -1}); !errors.Is(err, ErrInvalidTaxRate) {
		t.Fatalf("expected ErrInvalidTaxRate, got %v", err)
	}

	mixed := []PricedProduct{pricedAt(10, TaxSetting{}), pricedAt(20, TaxSetting{}), pricedAt(30, TaxSetting{})}
	mixed[0].Currency = "COP"
	mixed[2].Currency = "USD"
	if _, err := ComputeQuoteTotals(mixed, nil, nil, nil); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
	}
}

func TestComputeQuoteTotals_SubtotalIsOrderIndependent(t *testing.T) {
	faker := gofakeit.New(7)
	products := make([]PricedProduct, 0, 20)
	var want float64
	for i := 0; i < 20; i++ {
		total := faker.Float64Range(1, 5000)
		want += total
		products = append(products, pricedAt(total, TaxSetting{Rate: 19}))
	}

	for round := 0; round < 10; round++ {
		faker.ShuffleAnySlice(products)
		got, err := ComputeQuoteTotals(products, nil, nil, nil)
		if err != nil {
			t.Fatalf("ComputeQuoteTotals: %v", err)
		}
		if diff := got.Subtotal - want; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("subtotal = %v, want %v", got.Subtotal, want)
		}
	}
}

func TestComputeQuoteTotals_DiscountMonotonicity(t *testing.T) {
	for _, tax := range []TaxSetting{{Rate: 18}, {Rate: 18, Inclusive: true}} {
		products := []PricedProduct{pricedAt(400, tax), pricedAt(250, tax)}
		shipping := &Shipping{ChargeToCustomer: 35, Inclusive: true}

		prev, err := ComputeQuoteTotals(products, nil, shipping, nil)
		if err != nil {
			t.Fatalf("ComputeQuoteTotals: %v", err)
		}
		for amount := 0.0; amount <= 650; amount += 25 {
			got, err := ComputeQuoteTotals(products, &Discount{Type: DiscountFixed, Amount: amount}, shipping, nil)
			if err != nil {
				t.Fatalf("ComputeQuoteTotals: %v", err)
			}
			if got.TotalAmount > prev.TotalAmount+1e-9 {
				t.Fatalf("total increased from %v to %v at discount %v", prev.TotalAmount, got.TotalAmount, amount)
			}
			prev = got
		}
	}
}

func TestNewPricedProduct_SnapshotIsIsolated(t *testing.T) {
	items := []LineItem{{Name: "Wax", Category: CategoryMaterials, Mode: CostPerUnit, UnitCost: ptr(2), Quantity: 5}}
	costs := CostParameters{Machines: []Equipment{{Name: "Melter", PurchaseCost: 100, LifetimeHours: 100, UsageHours: 1}}}
	sale := SalePriceInput{Amount: 12, Basis: PricePerUnit, Units: 4, FixedCharge: 2}

	p, err := NewPricedProduct("Candle", "COP", items, costs, sale, TaxSetting{Rate: 19})
	if err != nil {
		t.Fatalf("NewPricedProduct: %v", err)
	}
	nearlyEqual(t, "total", p.TotalPrice, 50)
	nearlyEqual(t, "unit", p.UnitPrice, 12.5)
	if p.Quantity != 4 {
		t.Fatalf("quantity = %d, want 4", p.Quantity)
	}

	*items[0].UnitCost = 99
	items[0].Quantity = 1000
	costs.Machines[0].PurchaseCost = 1e6

	if *p.LineItems[0].UnitCost != 2 || p.LineItems[0].Quantity != 5 {
		t.Fatalf("line items leaked into snapshot: %+v", p.LineItems[0])
	}
	if p.Costs.Machines[0].PurchaseCost != 100 {
		t.Fatalf("machines leaked into snapshot: %+v", p.Costs.Machines[0])
	}
}
