package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops
	// secondary fields.
	LayoutCompactWidth = 100

	// LayoutSplitWidth is the minimum width to show the two order tables
	// side by side.
	LayoutSplitWidth = 140
)

// Fixed screen rows.
const (
	headerRow   = 0
	tabRow      = 1
	dropdownTop = 2 // border row of the search results panel

	chromeRows = 3 // header, tab bar, command bar
)

// Widths of fixed widgets.
const (
	searchWidth = 34
	tabGap      = 1
)

// Chart heights inside their boxes.
const (
	priceChartHeight  = 14
	volumeChartHeight = 10
)

// Timing constants.
const (
	// DefaultUIInterval is how often the view checks the surface store for
	// writes made outside the UI goroutine.
	DefaultUIInterval = time.Second

	// RefreshTimeout bounds the manual price refresh request.
	RefreshTimeout = 2 * time.Minute
)

// span is a half-open range of screen columns.
type span struct {
	start, end int
}

func (s span) contains(x int) bool {
	return x >= s.start && x < s.end
}
