package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/five82/bazaar/internal/analysis"
	"github.com/five82/bazaar/internal/market"
	"github.com/five82/bazaar/internal/panels"
	"github.com/five82/bazaar/internal/surface"
)

func testStore() *surface.Store {
	store := surface.NewStore(append(panels.SurfaceIDs(), analysis.TitleSurface, analysis.ProducersSurface)...)
	store.Set(panels.CraftingSurface, surface.Table(surface.Grid{
		Headers: []string{"Product", "Cost"},
		Rows: [][]surface.Cell{
			{{Text: "Iron Sword"}, {Text: "10.0g"}},
			{{Text: "Bow"}, {Text: "Err", Err: true}},
		},
	}))
	store.Set(panels.LiquiditySurface, surface.Empty())
	store.Set(panels.ArbitrageSurface, surface.Error("Error rendering data"))
	store.Set(analysis.TitleSurface, surface.Text("Item Analysis: Charcoal"))
	store.Set(analysis.ProducersSurface, surface.List([]surface.Entry{
		{Label: "Kerys", Detail: "(4 Sellers)", Highlight: true},
		{Label: "Merrie", Detail: "(- Sellers)"},
	}, analysis.NoProducersMessage))
	return store
}

func testResult() analysis.Result {
	return analysis.Result{
		Item: "Charcoal",
		History: []market.HistoryPoint{
			{SnapshotDate: market.NewText("2025-01-01 10:00:00"), MedianPrice: market.NewNumber("5.25"), MinPrice: market.NewNumber("4"), UnitsSoldSinceLast: market.NewNumber("12")},
			{SnapshotDate: market.NewText("2025-01-02 10:00:00"), AvgPrice: market.NewNumber("6"), UnitsSoldSinceLast: market.NewNumber("8")},
		},
	}
}

func TestWriteText_RendersEveryState(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, testStore().Snapshot()))
	out := buf.String()

	assert.Contains(t, out, "Crafting Opportunities")
	assert.Contains(t, out, "Iron Sword")
	assert.Contains(t, out, "Err")
	assert.Contains(t, out, surface.EmptyIcon+" "+surface.EmptyMessage)
	assert.Contains(t, out, "! Error rendering data")
	assert.Contains(t, out, "Suppliers")
	assert.Less(t, strings.Index(out, "Crafting Opportunities"), strings.Index(out, "Market Liquidity"))
}

func TestWriteAnalysis(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAnalysis(&buf, testStore().Snapshot(), testResult()))
	out := buf.String()

	assert.Contains(t, out, "Item Analysis: Charcoal")
	assert.Contains(t, out, "Median Price")
	assert.Contains(t, out, "5.3g")
	assert.Contains(t, out, "6.0g")
	assert.Contains(t, out, "* Kerys (4 Sellers)")
	assert.Contains(t, out, "  Merrie (- Sellers)")
}

func TestWriteAnalysis_NoHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAnalysis(&buf, testStore().Snapshot(), analysis.Result{Item: "Charcoal"}))
	assert.Contains(t, buf.String(), "No price history")
}

func TestSeriesRows_GapsShowMissing(t *testing.T) {
	header, rows := SeriesRows(testResult())
	assert.Equal(t, []string{"Date", analysis.PriceSeries, analysis.MinSeries, analysis.VolumeSeries}, header)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2025-01-01", "5.3g", "4.0g", "12"}, rows[0])
	assert.Equal(t, []string{"2025-01-02", "6.0g", "-", "8"}, rows[1])
}

func TestWriteWorkbook_OneSheetPerSurface(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, testStore().Snapshot(), testResult()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	var want []string
	for _, s := range Sections() {
		want = append(want, s.Title)
	}
	want = append(want, analysisSheet)
	assert.Equal(t, want, f.GetSheetList())

	rows, err := f.GetRows("Crafting Opportunities")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Product", "Cost"},
		{"Iron Sword", "10.0g"},
		{"Bow", "Err"},
	}, rows)

	rows, err = f.GetRows("Market Liquidity")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{surface.EmptyMessage}}, rows)

	rows, err = f.GetRows(analysisSheet)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "Date", rows[0][0])
	assert.Contains(t, rows, []string{"Kerys", "(4 Sellers)"})
}

func TestWriteWorkbook_SkipsAnalysisWithoutItem(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, testStore().Snapshot(), analysis.Result{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	assert.NotContains(t, f.GetSheetList(), analysisSheet)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "One-Time Orders", sheetName("One-Time Orders"))
	assert.Equal(t, "a b (c)", sheetName("a/b [c]"))
	assert.Len(t, []rune(sheetName(strings.Repeat("x", 40))), maxSheetName)
	assert.Equal(t, "Sheet", sheetName("  "))
}
