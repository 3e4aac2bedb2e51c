// Package services provides the quotation parsing, pricing, formatting
// and export logic behind the Cotizador API.
package services

// DefaultMarginPercent is the markup applied when neither the item nor
// the caller supplies one.
const DefaultMarginPercent = 25.0

// IVARate is the Mexican value-added tax, fixed at 16%.
const IVARate = 0.16

// Shipping-cost aggregation methods.
const (
	ShippingDirect = "DIRECT"
	ShippingOcurre = "OCURRE"
)

// SuggestedPrice returns the selling price for a unit cost plus
// shipping, marked up by marginPercent. No rounding is applied; callers
// format for display separately.
func SuggestedPrice(unitCost, shippingCost, marginPercent float64) float64 {
	return (unitCost + shippingCost) * (1 + marginPercent/100)
}

// TotalCost returns the landed cost for a quantity of units.
func TotalCost(unitPrice, shippingCost, quantity float64) float64 {
	return (unitPrice + shippingCost) * quantity
}

// BalanceItem is one row of the supplier-comparison screen.
type BalanceItem struct {
	ProductID string  `json:"product_id"`
	UnitPrice float64 `json:"unit_price"`
	// ShippingCost zero means both "free" and "not captured"; the two
	// are indistinguishable on purpose.
	ShippingCost float64 `json:"shipping_cost"`
	Quantity     float64 `json:"quantity"`
}

// ItemPricing holds every derived figure for one balance row.
type ItemPricing struct {
	Margin                float64 `json:"margin"`
	SellingPriceUnit      float64 `json:"selling_price_unit"`
	SellingPriceTotal     float64 `json:"selling_price_total"`
	ProfitUnit            float64 `json:"profit_unit"`
	ProfitTotal           float64 `json:"profit_total"`
	EffectiveShippingCost float64 `json:"effective_shipping_cost"`
}

// ItemValues computes selling price and profit for one item. The margin
// comes from marginOverrides keyed by product ID, falling back to
// defaultMargin. Negative costs and zero or negative quantities
// propagate arithmetically without special-casing.
func ItemValues(item BalanceItem, marginOverrides map[string]float64, defaultMargin float64) ItemPricing {
	margin := defaultMargin
	if m, ok := marginOverrides[item.ProductID]; ok {
		margin = m
	}

	shipping := item.ShippingCost
	unit := SuggestedPrice(item.UnitPrice, shipping, margin)
	profitUnit := unit - (item.UnitPrice + shipping)

	return ItemPricing{
		Margin:                margin,
		SellingPriceUnit:      unit,
		SellingPriceTotal:     unit * item.Quantity,
		ProfitUnit:            profitUnit,
		ProfitTotal:           profitUnit * item.Quantity,
		EffectiveShippingCost: shipping,
	}
}

// ShippingCosts holds the per-method cost inputs captured on a
// supplier-product link. DIRECT uses the flat cost; OCURRE sums the
// four stage costs.
type ShippingCosts struct {
	Direct float64 `json:"direct"`
	Stage1 float64 `json:"stage1"`
	Stage2 float64 `json:"stage2"`
	Stage3 float64 `json:"stage3"`
	Stage4 float64 `json:"stage4"`
}

// ShippingCostFromMethod resolves the effective shipping cost for a
// method. Unknown methods cost 0.
func ShippingCostFromMethod(method string, costs ShippingCosts) float64 {
	switch method {
	case ShippingDirect:
		return costs.Direct
	case ShippingOcurre:
		return costs.Stage1 + costs.Stage2 + costs.Stage3 + costs.Stage4
	default:
		return 0
	}
}

// IVAAmount returns the tax portion of baseAmount: the embedded tax if
// the amount already includes IVA, otherwise the tax that would be
// added on top.
func IVAAmount(baseAmount float64, includesIVA bool) float64 {
	if includesIVA {
		return baseAmount - baseAmount/(1+IVARate)
	}
	return baseAmount * IVARate
}

// PriceWithIVA returns basePrice unchanged when it already includes
// IVA, otherwise basePrice with IVA added.
func PriceWithIVA(basePrice float64, includesIVA bool) float64 {
	if includesIVA {
		return basePrice
	}
	return basePrice * (1 + IVARate)
}

// PriceWithoutIVA strips the embedded IVA from a gross price.
func PriceWithoutIVA(priceWithIVA float64) float64 {
	return priceWithIVA / (1 + IVARate)
}
