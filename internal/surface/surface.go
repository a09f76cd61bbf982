package surface

import (
	"slices"
	"sync"
	"time"
)

// Kind classifies what a surface currently shows.
type Kind int

const (
	// KindBlank is a declared surface nothing has rendered into yet.
	KindBlank Kind = iota
	// KindLoading shows a spinner with descriptive text.
	KindLoading
	// KindEmpty is the canonical "no data" placeholder.
	KindEmpty
	// KindTable is a populated table.
	KindTable
	// KindError shows an inline error message.
	KindError
	// KindText is a single line of text, used for titles.
	KindText
	// KindList is a short list of highlighted entries.
	KindList
)

// String returns a lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindEmpty:
		return "empty"
	case KindTable:
		return "table"
	case KindError:
		return "error"
	case KindText:
		return "text"
	case KindList:
		return "list"
	default:
		return "blank"
	}
}

// Placeholder text for the canonical empty state.
const (
	EmptyIcon    = "⌂"
	EmptyMessage = "No data available"
)

// Cell is one rendered table cell.
type Cell struct {
	Text string
	Err  bool // the column renderer failed for this row
}

// Grid is a rendered table: headers in declaration order and one row of
// cells per input record.
type Grid struct {
	Headers []string
	Rows    [][]Cell
}

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	out := Grid{Headers: slices.Clone(g.Headers)}
	if g.Rows != nil {
		out.Rows = make([][]Cell, len(g.Rows))
		for i, row := range g.Rows {
			out.Rows[i] = slices.Clone(row)
		}
	}
	return out
}

// Entry is one line of a list surface.
type Entry struct {
	Label     string
	Detail    string
	Highlight bool
}

// Content is everything a surface shows. A write always replaces the
// previous Content wholesale.
type Content struct {
	Kind    Kind
	Text    string // loading/empty/error/text message
	Grid    Grid
	Entries []Entry
}

// Loading builds a loading indicator with descriptive text.
func Loading(text string) Content {
	return Content{Kind: KindLoading, Text: text}
}

// Empty builds the canonical empty state.
func Empty() Content {
	return Content{Kind: KindEmpty, Text: EmptyMessage}
}

// Error builds an inline error message.
func Error(message string) Content {
	return Content{Kind: KindError, Text: message}
}

// Text builds a single-line text surface.
func Text(text string) Content {
	return Content{Kind: KindText, Text: text}
}

// Table builds a populated table surface.
func Table(grid Grid) Content {
	return Content{Kind: KindTable, Grid: grid}
}

// List builds a list surface. An empty list falls back to message.
func List(entries []Entry, message string) Content {
	if len(entries) == 0 {
		return Content{Kind: KindText, Text: message}
	}
	return Content{Kind: KindList, Entries: entries}
}

func (c Content) clone() Content {
	c.Grid = c.Grid.Clone()
	c.Entries = slices.Clone(c.Entries)
	return c
}

// Region is a surface's content plus bookkeeping.
type Region struct {
	ID        string
	Content   Content
	UpdatedAt time.Time
	Revision  uint64
}

// Snapshot is a consistent copy of every surface.
type Snapshot struct {
	Regions  map[string]Region
	Revision uint64
}

// Get returns the content of id, or a blank content when id is unknown.
func (s Snapshot) Get(id string) Content {
	return s.Regions[id].Content
}

// Store holds the dashboard's surfaces. Writers (loaders, the analysis
// orchestrator) replace content by id from any goroutine; the UI reads
// snapshots.
type Store struct {
	mu       sync.RWMutex
	regions  map[string]*Region
	order    []string
	revision uint64
}

// NewStore declares the given surface ids. Writes to undeclared ids are
// ignored.
func NewStore(ids ...string) *Store {
	s := &Store{regions: make(map[string]*Region, len(ids))}
	for _, id := range ids {
		s.Declare(id)
	}
	return s
}

// Declare adds id as a writable surface. Declaring twice is a no-op.
func (s *Store) Declare(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.regions == nil {
		s.regions = make(map[string]*Region)
	}
	if _, ok := s.regions[id]; ok {
		return
	}
	s.regions[id] = &Region{ID: id}
	s.order = append(s.order, id)
}

// Has reports whether id is a declared surface.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.regions[id]
	return ok
}

// IDs returns the declared surface ids in declaration order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// Set replaces the content of id. It reports false when id is not declared.
func (s *Store) Set(id string, content Content) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	region, ok := s.regions[id]
	if !ok {
		return false
	}
	s.revision++
	region.Content = content.clone()
	region.UpdatedAt = time.Now()
	region.Revision = s.revision
	return true
}

// Get returns the content of id.
func (s *Store) Get(id string) (Content, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	region, ok := s.regions[id]
	if !ok {
		return Content{}, false
	}
	return region.Content.clone(), true
}

// Revision increases on every successful Set.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Snapshot returns a copy of every surface.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Regions: make(map[string]Region, len(s.regions)), Revision: s.revision}
	for id, region := range s.regions {
		r := *region
		r.Content = region.Content.clone()
		snap.Regions[id] = r
	}
	return snap
}
