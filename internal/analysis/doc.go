// Package analysis drives the per-item analysis view.
//
// Selecting an item activates the analysis tab, sets the header, and starts
// two independent fetches: the snapshot history, which feeds a price line
// chart and a sales-volume bar chart, and the per-zone producer counts, which
// feed the producer list. Each fetch updates only its own region, in
// whatever order they complete.
//
// Each chart lives in a chart.Slot. Applying a history always releases both
// slots first and only then creates new charts, so at most one live chart
// exists per slot no matter how selections interleave. Overlapping analyses
// are not de-duplicated: a slow response for an earlier item can still land
// after a later item was selected.
package analysis
