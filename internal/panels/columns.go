package panels

import (
	"github.com/five82/bazaar/internal/format"
	"github.com/five82/bazaar/internal/market"
	"github.com/five82/bazaar/internal/table"
)

// unboundedQuantity is shown for orders without a quantity cap.
const unboundedQuantity = "∞"

// CraftingColumns render /crafting/opportunities rows.
var CraftingColumns = []table.Column[market.CraftingOpportunity]{
	{Header: "Product", Render: func(r market.CraftingOpportunity) string { return r.Product.Or(format.Missing) }},
	{Header: "Cost", Render: func(r market.CraftingOpportunity) string { return format.Currency(r.ManufactureCost.Raw()) }},
	{Header: "Sell Price", Render: func(r market.CraftingOpportunity) string {
		return format.Currency(r.SalePrice.Raw()) + " median"
	}},
	{Header: "Spread", Render: func(r market.CraftingOpportunity) string { return gain(format.Currency(r.Spread.Raw())) }},
	{Header: "Mrg", Render: func(r market.CraftingOpportunity) string { return format.Percent(r.MarginPercent.Raw()) }},
	{Header: "Strategy", Render: func(r market.CraftingOpportunity) string { return r.Sourcing.Or(format.Missing) }},
}

// LiquidityColumns render /market/liquidity rows.
var LiquidityColumns = []table.Column[market.LiquidityRecord]{
	{Header: "Item", Render: func(r market.LiquidityRecord) string { return r.Item.Or(format.Missing) }},
	{Header: "Units Sold", Render: func(r market.LiquidityRecord) string { return orMissing(r.UnitsSold) + " / day" }},
	{Header: "Top Zone", Render: func(r market.LiquidityRecord) string { return r.TopZone.Or("Unknown") }},
}

// ArbitrageColumns render /logistics/arbitrage rows.
var ArbitrageColumns = []table.Column[market.ArbitrageRoute]{
	{Header: "Item", Render: func(r market.ArbitrageRoute) string { return r.Item.Or(format.Missing) }},
	{Header: "Buy", Render: func(r market.ArbitrageRoute) string {
		buy := format.Currency(r.BuyPrice.Raw())
		if zone := r.BuyZone.Or(""); zone != "" {
			buy += " @ " + zone
		}
		return buy
	}},
	{Header: "Sell Median", Render: func(r market.ArbitrageRoute) string { return format.Currency(r.AvgSalePrice.Raw()) }},
	{Header: "Margin", Render: func(r market.ArbitrageRoute) string { return gain(format.Currency(r.UnitProfit.Raw())) }},
	{Header: "Daily Vol", Render: func(r market.ArbitrageRoute) string { return orMissing(r.UnitsSold) }},
	{Header: "Score", Render: func(r market.ArbitrageRoute) string { return format.Round(r.Score.Raw()) }},
}

// OrderColumns render /logistics/orders rows; both order tables share them.
var OrderColumns = []table.Column[market.Order]{
	{Header: "Client", Render: func(r market.Order) string { return r.Client.Or(format.Missing) }},
	{Header: "Item", Render: func(r market.Order) string { return r.Item.Or(format.Missing) }},
	{Header: "Qty", Render: func(r market.Order) string {
		if !r.Quantity.Truthy() {
			return unboundedQuantity
		}
		return r.Quantity.Display()
	}},
	{Header: "Target", Render: func(r market.Order) string { return r.TargetPrice.Or(format.Missing) }},
}

// SupplierColumns render /logistics/suppliers rows.
var SupplierColumns = []table.Column[market.Supplier]{
	{Header: "Supplier", Render: func(r market.Supplier) string { return r.Supplier.Or(format.Missing) }},
	{Header: "Item", Render: func(r market.Supplier) string { return r.Item.Or(format.Missing) }},
	{Header: "Unit Price", Render: func(r market.Supplier) string {
		if !r.UnitPrice.Truthy() {
			return format.Missing
		}
		return format.Currency(r.UnitPrice.Raw())
	}},
	{Header: "Location", Render: func(r market.Supplier) string { return r.Location.Or(format.Missing) }},
	{Header: "Notes", Render: func(r market.Supplier) string { return r.Notes.String() }},
}

// gain prefixes a formatted amount with "+" unless it is the missing marker.
func gain(formatted string) string {
	if formatted == format.Missing {
		return formatted
	}
	return "+" + formatted
}

func orMissing(n market.Number) string {
	if !n.Valid() {
		return format.Missing
	}
	return n.Display()
}
