package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"cotizador/services"
)

// balanceRow is one comparison row submitted by the balance screen.
type balanceRow struct {
	ProductID      string                 `json:"product_id"`
	SupplierID     string                 `json:"supplier_id"`
	UnitPrice      float64                `json:"unit_price"`
	Quantity       float64                `json:"quantity"`
	ShippingMethod string                 `json:"shipping_method"`
	ShippingCosts  services.ShippingCosts `json:"shipping_costs"`
}

type balanceRequest struct {
	Rows            []balanceRow       `json:"rows"`
	DefaultMargin   *float64           `json:"default_margin"`
	MarginOverrides map[string]float64 `json:"margin_overrides"`
}

// balanceResult pairs the computed figures with display strings so the
// frontend renders without re-deriving anything.
type balanceResult struct {
	ProductID         string               `json:"product_id"`
	SupplierID        string               `json:"supplier_id"`
	Pricing           services.ItemPricing `json:"pricing"`
	TotalCost         float64              `json:"total_cost"`
	SellingPriceUnit  string               `json:"selling_price_unit_display"`
	SellingPriceTotal string               `json:"selling_price_total_display"`
	ProfitTotal       string               `json:"profit_total_display"`
}

// HandleBalanceCompute runs the pricing engine over the submitted rows.
// POST /api/balance/compute
func HandleBalanceCompute(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req balanceRequest
		if err := e.BindBody(&req); err != nil {
			return apis.NewBadRequestError("Invalid request body", err)
		}

		defaultMargin := services.DefaultMarginPercent
		if req.DefaultMargin != nil {
			defaultMargin = *req.DefaultMargin
		} else if stored, ok := storedDefaultMargin(app); ok {
			defaultMargin = stored
		}

		results := make([]balanceResult, 0, len(req.Rows))
		var grandTotal float64
		for _, row := range req.Rows {
			shipping := services.ShippingCostFromMethod(row.ShippingMethod, row.ShippingCosts)
			pricing := services.ItemValues(services.BalanceItem{
				ProductID:    row.ProductID,
				UnitPrice:    row.UnitPrice,
				ShippingCost: shipping,
				Quantity:     row.Quantity,
			}, req.MarginOverrides, defaultMargin)

			results = append(results, balanceResult{
				ProductID:         row.ProductID,
				SupplierID:        row.SupplierID,
				Pricing:           pricing,
				TotalCost:         services.TotalCost(row.UnitPrice, shipping, row.Quantity),
				SellingPriceUnit:  services.FormatMXN(pricing.SellingPriceUnit),
				SellingPriceTotal: services.FormatMXN(pricing.SellingPriceTotal),
				ProfitTotal:       services.FormatMXN(pricing.ProfitTotal),
			})
			grandTotal += pricing.SellingPriceTotal
		}

		return e.JSON(http.StatusOK, map[string]any{
			"default_margin":      defaultMargin,
			"rows":                results,
			"grand_total":         grandTotal,
			"grand_total_display": services.FormatMXN(grandTotal),
		})
	}
}

// storedDefaultMargin reads the default_margin_percent setting seeded
// at startup.
func storedDefaultMargin(app *pocketbase.PocketBase) (float64, bool) {
	records, err := app.FindRecordsByFilter(
		"settings",
		"key = 'default_margin_percent'",
		"", 1, 0,
		nil,
	)
	if err != nil || len(records) == 0 {
		return 0, false
	}
	v := records[0].GetString("value")
	if v == "" {
		return 0, false
	}
	margin, ok := parseAmount(v)
	return margin, ok
}
