package services

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestSuggestedPrice(t *testing.T) {
	tests := []struct {
		name                          string
		unitCost, shipping, marginPct float64
		want                          float64
	}{
		{"default margin", 100, 20, 25, 150},
		{"thirty percent", 100, 20, 30, 156},
		{"no shipping", 200, 0, 25, 250},
		{"zero margin", 100, 50, 0, 150},
		{"zero cost", 0, 0, 25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestedPrice(tt.unitCost, tt.shipping, tt.marginPct)
			if !almostEqual(got, tt.want) {
				t.Errorf("SuggestedPrice(%v, %v, %v) = %v, want %v",
					tt.unitCost, tt.shipping, tt.marginPct, got, tt.want)
			}
		})
	}
}

func TestTotalCost(t *testing.T) {
	if got := TotalCost(100, 20, 3); !almostEqual(got, 360) {
		t.Errorf("TotalCost(100, 20, 3) = %v, want 360", got)
	}
	if got := TotalCost(100, 20, 0); got != 0 {
		t.Errorf("TotalCost with zero quantity = %v, want 0", got)
	}
}

func TestItemValues(t *testing.T) {
	item := BalanceItem{
		ProductID:    "prod1",
		UnitPrice:    100,
		ShippingCost: 20,
		Quantity:     2,
	}

	got := ItemValues(item, nil, DefaultMarginPercent)

	want := ItemPricing{
		Margin:                25,
		SellingPriceUnit:      150,
		SellingPriceTotal:     300,
		ProfitUnit:            30,
		ProfitTotal:           60,
		EffectiveShippingCost: 20,
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestItemValues_MarginOverride(t *testing.T) {
	item := BalanceItem{ProductID: "prod1", UnitPrice: 100, Quantity: 1}
	overrides := map[string]float64{"prod1": 50}

	got := ItemValues(item, overrides, DefaultMarginPercent)
	if got.Margin != 50 {
		t.Errorf("Margin = %v, want override 50", got.Margin)
	}
	if !almostEqual(got.SellingPriceUnit, 150) {
		t.Errorf("SellingPriceUnit = %v, want 150", got.SellingPriceUnit)
	}

	// An override for a different product must not apply.
	got = ItemValues(item, map[string]float64{"other": 50}, DefaultMarginPercent)
	if got.Margin != 25 {
		t.Errorf("Margin = %v, want default 25", got.Margin)
	}
}

func TestShippingCostFromMethod(t *testing.T) {
	costs := ShippingCosts{Direct: 120, Stage1: 40, Stage2: 60, Stage3: 35, Stage4: 25}

	tests := []struct {
		name   string
		method string
		costs  ShippingCosts
		want   float64
	}{
		{"direct uses flat cost", ShippingDirect, costs, 120},
		{"ocurre sums stages", ShippingOcurre, costs, 160},
		{"direct with zero value", ShippingDirect, ShippingCosts{}, 0},
		{"unknown method", "PARCEL", costs, 0},
		{"empty method", "", costs, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShippingCostFromMethod(tt.method, tt.costs); !almostEqual(got, tt.want) {
				t.Errorf("ShippingCostFromMethod(%q) = %v, want %v", tt.method, got, tt.want)
			}
		})
	}
}

func TestIVAAmount(t *testing.T) {
	if got := IVAAmount(116, true); !almostEqual(got, 16) {
		t.Errorf("IVAAmount(116, true) = %v, want 16", got)
	}
	if got := IVAAmount(100, false); !almostEqual(got, 16) {
		t.Errorf("IVAAmount(100, false) = %v, want 16", got)
	}
	if got := IVAAmount(0, true); got != 0 {
		t.Errorf("IVAAmount(0, true) = %v, want 0", got)
	}
}

func TestPriceWithIVA(t *testing.T) {
	if got := PriceWithIVA(100, false); !almostEqual(got, 116) {
		t.Errorf("PriceWithIVA(100, false) = %v, want 116", got)
	}
	if got := PriceWithIVA(116, true); !almostEqual(got, 116) {
		t.Errorf("PriceWithIVA(116, true) = %v, want 116", got)
	}
}

func TestPriceWithoutIVA(t *testing.T) {
	if got := PriceWithoutIVA(116); !almostEqual(got, 100) {
		t.Errorf("PriceWithoutIVA(116) = %v, want 100", got)
	}
	// Round trip back through PriceWithIVA.
	if got := PriceWithIVA(PriceWithoutIVA(232), false); !almostEqual(got, 232) {
		t.Errorf("round trip = %v, want 232", got)
	}
}
