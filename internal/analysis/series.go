package analysis

import (
	"strings"

	"github.com/five82/bazaar/internal/chart"
	"github.com/five82/bazaar/internal/format"
	"github.com/five82/bazaar/internal/market"
	"github.com/five82/bazaar/internal/surface"
)

// HistoryCharts converts snapshots into the price line and volume bar specs.
// Labels are the date part of each snapshot; the price series uses the median
// and falls back to the average per point.
func HistoryCharts(points []market.HistoryPoint) (chart.LineSpec, chart.BarSpec) {
	labels := make([]string, len(points))
	price := make([]float64, len(points))
	low := make([]float64, len(points))
	units := make([]float64, len(points))

	for i, p := range points {
		labels[i] = p.Day()
		price[i] = valueOrGap(p.Price())
		low[i] = valueOrGap(p.MinPrice.Float())
		units[i] = valueOrGap(p.UnitsSoldSinceLast.Float())
	}

	line := chart.LineSpec{
		Labels: labels,
		Series: []chart.Series{
			{Name: PriceSeries, Values: price},
			{Name: MinSeries, Values: low, Muted: true},
		},
	}
	bar := chart.BarSpec{
		Labels: labels,
		Series: chart.Series{Name: VolumeSeries, Values: units},
	}
	return line, bar
}

// ProducerEntries builds one list entry per zone, flagging zones that contain
// hub.
func ProducerEntries(zones []market.ProducerZone, hub string) []surface.Entry {
	entries := make([]surface.Entry, 0, len(zones))
	for _, z := range zones {
		name := z.Zone.String()
		sellers := format.Missing
		if z.UniqueProducers.Valid() {
			sellers = z.UniqueProducers.Display()
		}
		entries = append(entries, surface.Entry{
			Label:     format.Sanitize(name),
			Detail:    "(" + format.Sanitize(sellers) + " Sellers)",
			Highlight: hub != "" && strings.Contains(name, hub),
		})
	}
	return entries
}

func valueOrGap(v float64, ok bool) float64 {
	if !ok {
		return chart.Gap
	}
	return v
}
