// Package chart defines the chart capability used by item analysis and a
// terminal implementation built on ntcharts.
//
// A Handle is a live chart instance. It is created from a spec, renders at
// whatever size the front end asks for, and must be destroyed before another
// chart takes its place. Slot enforces that: Replace always destroys the
// previous handle before creating the next one, so a slot never holds more
// than one live chart.
package chart

import (
	"math"
	"sync"
)

// Handle is a live chart instance.
type Handle interface {
	View(width, height int) string
	Destroy()
}

// Series is one named data set. NaN values are gaps.
type Series struct {
	Name   string
	Values []float64
	// Muted series render de-emphasized (the dashed line of the browser
	// version).
	Muted bool
}

// LineSpec describes a line chart over categorical labels. Labels and every
// series' Values are index-aligned; points are placed by index, so repeated
// labels each get their own position.
type LineSpec struct {
	Labels []string
	Series []Series
}

// BarSpec describes a single-series bar chart.
type BarSpec struct {
	Labels []string
	Series Series
}

// Renderer creates chart handles.
type Renderer interface {
	NewLine(spec LineSpec) Handle
	NewBar(spec BarSpec) Handle
}

// Gap is the value used for a missing point.
var Gap = math.NaN()

// IsGap reports whether v marks a missing point.
func IsGap(v float64) bool {
	return math.IsNaN(v)
}

// Slot holds at most one live handle.
type Slot struct {
	mu     sync.Mutex
	handle Handle
}

// Replace destroys the current handle, if any, and then stores the result
// of create. A nil create or a nil result leaves the slot empty.
func (s *Slot) Replace(create func() Handle) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != nil {
		s.handle.Destroy()
		s.handle = nil
	}
	if create != nil {
		s.handle = create()
	}
	return s.handle
}

// Release destroys the current handle and leaves the slot empty.
func (s *Slot) Release() {
	s.Replace(nil)
}

// Live reports whether the slot holds a handle.
func (s *Slot) Live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle != nil
}

// View renders the current handle, or "" when the slot is empty.
func (s *Slot) View(width, height int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle == nil {
		return ""
	}
	return s.handle.View(width, height)
}
