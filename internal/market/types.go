package market

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/five82/bazaar/internal/format"
)

// Number is an optional numeric field. The advisor API serializes numbers as
// JSON numbers, but CSV-backed endpoints fill gaps with "" and some fields
// arrive as strings, so Number keeps the raw text and decodes leniently.
type Number struct {
	raw     string
	valid   bool
	numeric bool
}

// NewNumber builds a valid Number from its textual form. Used by tests and
// fixtures.
func NewNumber(raw string) Number {
	return Number{raw: raw, valid: strings.TrimSpace(raw) != ""}
}

// UnmarshalJSON accepts numbers, strings, and null. Any other JSON type
// decodes to an absent value instead of failing the whole record.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*n = NewNumber(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*n = Number{raw: string(data), valid: true, numeric: true}
	}
	return nil
}

// MarshalJSON writes the raw value back as a JSON number when it parses,
// otherwise as a string, and null when absent.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	if json.Valid([]byte(n.raw)) && n.raw[0] != '"' {
		return []byte(n.raw), nil
	}
	return json.Marshal(n.raw)
}

// Valid reports whether the field was present and non-empty.
func (n Number) Valid() bool { return n.valid }

// Raw returns the textual value, or "" when absent.
func (n Number) Raw() string { return n.raw }

// Display returns the value as it should be shown verbatim. JSON numbers are
// printed in shortest form so a float column such as 100.0 shows as 100;
// string values are kept as sent.
func (n Number) Display() string {
	if n.numeric {
		return shortNumber(n.raw)
	}
	return n.raw
}

// Float returns the numeric value when the field parses as a number.
func (n Number) Float() (float64, bool) {
	if !n.valid {
		return 0, false
	}
	d, ok := format.ParseNumber(n.raw)
	if !ok {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// Truthy mirrors how the dashboard treats optional quantities: absent, empty,
// and zero all count as "not set".
func (n Number) Truthy() bool {
	f, ok := n.Float()
	return ok && f != 0
}

// Text is an optional string field that also accepts numbers.
type Text struct {
	value string
	valid bool
}

// NewText builds a present Text value.
func NewText(value string) Text {
	return Text{value: value, valid: true}
}

// UnmarshalJSON accepts strings, numbers, booleans, and null.
func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*t = NewText(s)
		return nil
	}
	switch data[0] {
	case '{', '[':
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*t = NewText(shortNumber(string(data)))
		return nil
	}
	*t = NewText(string(data))
	return nil
}

// shortNumber rewrites a JSON number token without trailing fractional
// zeros or exponent. Tokens that do not parse are returned unchanged.
func shortNumber(token string) string {
	d, err := decimal.NewFromString(token)
	if err != nil {
		return token
	}
	return d.String()
}

// MarshalJSON writes the value as a JSON string, or null when absent.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.value)
}

// Valid reports whether the field was present.
func (t Text) Valid() bool { return t.valid }

// String returns the value, or "" when absent.
func (t Text) String() string { return t.value }

// Or returns the value when it is non-blank, otherwise fallback.
func (t Text) Or(fallback string) string {
	if strings.TrimSpace(t.value) == "" {
		return fallback
	}
	return t.value
}

// CraftingOpportunity mirrors one row of /crafting/opportunities.
type CraftingOpportunity struct {
	Product         Text   `json:"Produto"`
	ManufactureCost Number `json:"Custo_Manufatura"`
	SalePrice       Number `json:"Preco_Venda"`
	Spread          Number `json:"Spread"`
	MarginPercent   Number `json:"Margem_Perc"`
	Sourcing        Text   `json:"Sourcing_Insumos"`
}

// LiquidityRecord mirrors one row of /market/liquidity.
type LiquidityRecord struct {
	Item      Text   `json:"Item"`
	UnitsSold Number `json:"Units_Sold"`
	TopZone   Text   `json:"Top_Zone"`
}

// ArbitrageRoute mirrors one row of /logistics/arbitrage.
type ArbitrageRoute struct {
	Item         Text   `json:"Item"`
	BuyPrice     Number `json:"Buy_Price"`
	BuyZone      Text   `json:"Buy_Zone"`
	AvgSalePrice Number `json:"Avg_Sale_Price"`
	UnitProfit   Number `json:"Unit_Profit"`
	UnitsSold    Number `json:"Units_Sold"`
	Score        Number `json:"Score"`
}

// ConstantOrderType is the Order_Type value for standing orders.
const ConstantOrderType = "Constant"

// Order mirrors one row of /logistics/orders.
type Order struct {
	Client      Text   `json:"Client"`
	Item        Text   `json:"Item"`
	Quantity    Number `json:"Quantity"`
	TargetPrice Text   `json:"Target_Price"`
	OrderType   Text   `json:"Order_Type"`
}

// IsConstant reports whether the order is a standing order.
func (o Order) IsConstant() bool {
	return o.OrderType.String() == ConstantOrderType
}

// Supplier mirrors one row of /logistics/suppliers.
type Supplier struct {
	Supplier  Text   `json:"Supplier"`
	Item      Text   `json:"Item"`
	UnitPrice Number `json:"Unit_Price"`
	Location  Text   `json:"Location"`
	Notes     Text   `json:"Notes"`
}

// HistoryPoint mirrors one snapshot of /market/item/<id>/history.
type HistoryPoint struct {
	SnapshotDate       Text   `json:"SnapshotDate"`
	MinPrice           Number `json:"Min_Price"`
	AvgPrice           Number `json:"Avg_Price"`
	MedianPrice        Number `json:"Median_Price"`
	StockCount         Number `json:"Stock_Count"`
	UnitsSoldSinceLast Number `json:"Units_Sold_Since_Last"`
	VolumeSold         Number `json:"Volume_Sold"`
}

// Day returns the date component of SnapshotDate ("2025-01-02 13:00:00" →
// "2025-01-02"), independent of the time of day.
func (h HistoryPoint) Day() string {
	value := strings.TrimSpace(h.SnapshotDate.String())
	if i := strings.IndexAny(value, " T"); i >= 0 {
		return value[:i]
	}
	return value
}

// Price returns the median price, falling back to the average when the
// median is absent for this snapshot.
func (h HistoryPoint) Price() (float64, bool) {
	if v, ok := h.MedianPrice.Float(); ok {
		return v, true
	}
	return h.AvgPrice.Float()
}

// ProducerZone mirrors one row of /market/item/<id>/producers.
type ProducerZone struct {
	Zone            Text   `json:"Zone"`
	UniqueProducers Number `json:"Unique_Producers"`
	UniqueListings  Number `json:"Unique_Listings"`
}

// RefreshResult mirrors the /admin/fetch-prices response.
type RefreshResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Log     string `json:"log"`
	Detail  string `json:"detail"`
}

// OK reports whether the server-side refresh succeeded.
func (r RefreshResult) OK() bool {
	return r.Status == "success"
}
