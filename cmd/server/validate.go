package main

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/Simplici0/costquote/internal/model"
	"github.com/Simplici0/costquote/internal/pricing"
	"github.com/Simplici0/costquote/internal/validation"
)

var (
	categories = lo.Map([]pricing.Category{
		pricing.CategoryMaterials, pricing.CategoryPackaging, pricing.CategoryDecorations,
	}, func(c pricing.Category, _ int) string { return string(c) })
	costModes     = []string{string(pricing.CostPerUnit), string(pricing.CostTotal)}
	priceBases    = []string{string(pricing.PricePerUnit), string(pricing.PriceForRun)}
	discountTypes = []string{string(pricing.DiscountPercentage), string(pricing.DiscountFixed)}
)

func validateInputs(in model.ProjectInputs, v validation.Violations) {
	for i, li := range in.LineItems {
		validateLineItem(fmt.Sprintf("line_items[%d]", i), li, v)
	}
	validateCosts("costs", in.Costs, v)
	validateSale("sale", in.Sale, v)
	if in.Tax != nil {
		validateTax("tax", *in.Tax, v)
	}
}

func validateLineItem(prefix string, li pricing.LineItem, v validation.Violations) {
	validation.Required(prefix+".name", li.Name, v)
	validation.OneOf(prefix+".category", string(li.Category), categories, v)
	validation.OneOf(prefix+".mode", string(li.Mode), costModes, v)

	switch li.Mode {
	case pricing.CostPerUnit:
		if li.UnitCost == nil {
			v[prefix+".unit_cost"] = "required"
		}
	case pricing.CostTotal:
		if li.TotalCost == nil {
			v[prefix+".total_cost"] = "required"
		}
	}
	if li.UnitCost != nil {
		validation.NonNegativeFloat(prefix+".unit_cost", *li.UnitCost, v)
	}
	if li.TotalCost != nil {
		validation.NonNegativeFloat(prefix+".total_cost", *li.TotalCost, v)
	}
	validation.NonNegativeFloat(prefix+".quantity", li.Quantity, v)
	validation.Percent(prefix+".waste_percent", li.WastePercent, v)
}

func validateCosts(prefix string, c pricing.CostParameters, v validation.Violations) {
	for i, m := range c.Machines {
		mp := fmt.Sprintf("%s.machines[%d]", prefix, i)
		validation.NonNegativeFloat(mp+".purchase_cost", m.PurchaseCost, v)
		validation.PositiveFloat(mp+".lifetime_hours", m.LifetimeHours, v)
		validation.NonNegativeFloat(mp+".usage_hours", m.UsageHours, v)
		validation.NonNegativeFloat(mp+".markup_percent", m.MarkupPercent, v)
	}
	validation.NonNegativeFloat(prefix+".labor_hours", c.LaborHours, v)
	validation.NonNegativeFloat(prefix+".labor_rate", c.LaborRate, v)
	validation.NonNegativeFloat(prefix+".manual_depreciation", c.ManualDepreciation, v)
	validation.NonNegativeFloat(prefix+".overhead_rate", c.OverheadRate, v)
	if c.OverheadWorksheet != nil {
		validateWorksheet(prefix+".overhead_worksheet", *c.OverheadWorksheet, v)
	}
}

func validateWorksheet(prefix string, w pricing.OverheadWorksheet, v validation.Violations) {
	for field, val := range map[string]float64{
		"rent":        w.Rent,
		"utilities":   w.Utilities,
		"insurance":   w.Insurance,
		"software":    w.Software,
		"marketing":   w.Marketing,
		"maintenance": w.Maintenance,
		"other":       w.Other,
	} {
		validation.NonNegativeFloat(prefix+"."+field, val, v)
	}
	validation.PositiveFloat(prefix+".monthly_hours", w.MonthlyHours, v)
}

func validateSale(prefix string, s pricing.SalePriceInput, v validation.Violations) {
	validation.NonNegativeFloat(prefix+".amount", s.Amount, v)
	validation.OneOf(prefix+".basis", string(s.Basis), priceBases, v)
	validation.MinInt(prefix+".units", s.Units, 1, v)
	validation.NonNegativeFloat(prefix+".fixed_charge", s.FixedCharge, v)
}

func validateTax(prefix string, t pricing.TaxSetting, v validation.Violations) {
	validation.Percent(prefix+".rate", t.Rate, v)
}

func validateDiscount(d pricing.Discount, v validation.Violations) {
	validation.OneOf("type", string(d.Type), discountTypes, v)
	if d.Type == pricing.DiscountPercentage {
		validation.Percent("amount", d.Amount, v)
		return
	}
	validation.NonNegativeFloat("amount", d.Amount, v)
}

func validateShipping(s pricing.Shipping, v validation.Violations) {
	validation.NonNegativeFloat("cost", s.Cost, v)
	validation.NonNegativeFloat("charge_to_customer", s.ChargeToCustomer, v)
}

func validateCurrency(field, currency string, v validation.Violations) {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return
	}
	if len(currency) != 3 || !lo.EveryBy([]rune(currency), func(r rune) bool {
		return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
	}) {
		v[field] = "must_be_iso_code"
	}
}
