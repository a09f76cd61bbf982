package market

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_DecodesLeniently(t *testing.T) {
	var rows []struct {
		V Number `json:"v"`
	}
	err := json.Unmarshal([]byte(`[{"v":12.5},{"v":"7"},{"v":""},{"v":null},{},{"v":true},{"v":{"a":1}}]`), &rows)
	require.NoError(t, err)
	require.Len(t, rows, 7)

	assert.True(t, rows[0].V.Valid())
	assert.Equal(t, "12.5", rows[0].V.Raw())
	assert.True(t, rows[1].V.Valid())
	f, ok := rows[1].V.Float()
	assert.True(t, ok)
	assert.InDelta(t, 7.0, f, 0.0001)
	for i := 2; i < 7; i++ {
		assert.False(t, rows[i].V.Valid(), "row %d", i)
	}
}

func TestNumber_Truthy(t *testing.T) {
	assert.True(t, NewNumber("5").Truthy())
	assert.False(t, NewNumber("0").Truthy())
	assert.False(t, NewNumber("").Truthy())
	assert.False(t, Number{}.Truthy())
}

func TestText_DecodesAndFallsBack(t *testing.T) {
	var rows []struct {
		T Text `json:"t"`
	}
	require.NoError(t, json.Unmarshal([]byte(`[{"t":"Kerys"},{"t":150},{"t":null},{"t":"  "}]`), &rows))
	assert.Equal(t, "Kerys", rows[0].T.Or("Unknown"))
	assert.Equal(t, "150", rows[1].T.String())
	assert.False(t, rows[2].T.Valid())
	assert.Equal(t, "Unknown", rows[2].T.Or("Unknown"))
	assert.Equal(t, "Unknown", rows[3].T.Or("Unknown"))
}

func TestHistoryPoint_DayAndPrice(t *testing.T) {
	tests := []struct {
		name      string
		point     HistoryPoint
		wantDay   string
		wantPrice float64
		wantOK    bool
	}{
		{
			name:      "space separated with median",
			point:     HistoryPoint{SnapshotDate: NewText("2025-03-04 18:30:00"), MedianPrice: NewNumber("12"), AvgPrice: NewNumber("15")},
			wantDay:   "2025-03-04",
			wantPrice: 12,
			wantOK:    true,
		},
		{
			name:      "iso with average fallback",
			point:     HistoryPoint{SnapshotDate: NewText("2025-03-05T01:00:00Z"), AvgPrice: NewNumber("9.5")},
			wantDay:   "2025-03-05",
			wantPrice: 9.5,
			wantOK:    true,
		},
		{
			name:    "date only without prices",
			point:   HistoryPoint{SnapshotDate: NewText("2025-03-06")},
			wantDay: "2025-03-06",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantDay, tt.point.Day())
			price, ok := tt.point.Price()
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.wantPrice, price, 0.0001)
		})
	}
}

func TestOrder_IsConstant(t *testing.T) {
	assert.True(t, Order{OrderType: NewText("Constant")}.IsConstant())
	assert.False(t, Order{OrderType: NewText("constant")}.IsConstant())
	assert.False(t, Order{}.IsConstant())
}

func TestNumber_DisplayShortensJSONNumbers(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"integer valued float", `100.0`, "100"},
		{"fraction", `12.50`, "12.5"},
		{"exponent", `1e3`, "1000"},
		{"plain integer", `35`, "35"},
		{"string kept verbatim", `"100.0"`, "100.0"},
		{"string with unit", `"12g"`, "12g"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			require.NoError(t, json.Unmarshal([]byte(tt.json), &n))
			assert.Equal(t, tt.want, n.Display())
		})
	}
	assert.Equal(t, "", Number{}.Display())
}

func TestText_ShortensJSONNumbers(t *testing.T) {
	tests := []struct {
		json string
		want string
	}{
		{`120.0`, "120"},
		{`-3.10`, "-3.1"},
		{`"120.0"`, "120.0"},
		{`true`, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			var v Text
			require.NoError(t, json.Unmarshal([]byte(tt.json), &v))
			assert.Equal(t, tt.want, v.String())
		})
	}
}
