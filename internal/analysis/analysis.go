package analysis

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/five82/bazaar/internal/chart"
	"github.com/five82/bazaar/internal/format"
	"github.com/five82/bazaar/internal/logging"
	"github.com/five82/bazaar/internal/market"
	"github.com/five82/bazaar/internal/surface"
	"github.com/five82/bazaar/internal/tabs"
)

// Surface ids owned by the orchestrator.
const (
	TitleSurface     = "analysis-title"
	ProducersSurface = "analysis-producers-list"
)

const (
	// DefaultHubZone marks the reference trading hub in the producer list.
	DefaultHubZone = "Kerys"

	NoProducersMessage = "No specific producer data found."

	PriceSeries   = "Median Price"
	MinSeries     = "Min Price"
	VolumeSeries  = "Units Sold (Daily Churn)"
	titlePrefix   = "Item Analysis: "
	loadingDetail = "Loading producers..."
)

// Source fetches per-item data.
type Source interface {
	History(ctx context.Context, item string) []market.HistoryPoint
	Producers(ctx context.Context, item string) []market.ProducerZone
}

// Surfaces receives the header and producer list.
type Surfaces interface {
	Set(id string, content surface.Content) bool
}

// TabActivator switches the visible tab.
type TabActivator interface {
	Activate(id string) bool
}

// Options configures an Orchestrator.
type Options struct {
	Source   Source
	Surfaces Surfaces
	Tabs     TabActivator
	Renderer chart.Renderer
	HubZone  string
	Logger   *slog.Logger
}

// Result is what the last applied fetches produced.
type Result struct {
	Item      string
	History   []market.HistoryPoint
	Producers []market.ProducerZone
}

// Orchestrator owns the analysis header, both chart slots, and the producer
// list. It is safe for concurrent use.
type Orchestrator struct {
	source   Source
	surfaces Surfaces
	tabs     TabActivator
	renderer chart.Renderer
	hub      string
	logger   *slog.Logger

	price  chart.Slot
	volume chart.Slot

	mu     sync.Mutex
	active string
	last   Result
}

// New returns an orchestrator. Nil collaborators are tolerated so headless
// callers can omit the tab controller or the chart renderer.
func New(opts Options) *Orchestrator {
	hub := strings.TrimSpace(opts.HubZone)
	if hub == "" {
		hub = DefaultHubZone
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Orchestrator{
		source:   opts.Source,
		surfaces: opts.Surfaces,
		tabs:     opts.Tabs,
		renderer: opts.Renderer,
		hub:      hub,
		logger:   logger,
	}
}

// Begin switches to the analysis tab and sets the header for item. It
// reports false, doing nothing, for a blank item. The caller is expected to
// reset the search box in the same step.
func (o *Orchestrator) Begin(item string) bool {
	if strings.TrimSpace(item) == "" {
		return false
	}
	o.mu.Lock()
	o.active = item
	o.mu.Unlock()

	if o.tabs != nil {
		o.tabs.Activate(tabs.Analysis)
	}
	o.set(TitleSurface, surface.Text(titlePrefix+format.Sanitize(item)))
	o.set(ProducersSurface, surface.Loading(loadingDetail))
	o.logger.Debug("analysis started", "item", item)
	return true
}

// Active returns the most recently begun item.
func (o *Orchestrator) Active() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

// Last returns the data from the most recently applied fetches.
func (o *Orchestrator) Last() Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Result{
		Item:      o.last.Item,
		History:   append([]market.HistoryPoint(nil), o.last.History...),
		Producers: append([]market.ProducerZone(nil), o.last.Producers...),
	}
}

// Analyze runs Begin and both fetches concurrently, returning once both
// results have been applied.
func (o *Orchestrator) Analyze(ctx context.Context, item string) {
	if !o.Begin(item) {
		return
	}
	var g errgroup.Group
	g.Go(func() error {
		o.LoadHistory(ctx, item)
		return nil
	})
	g.Go(func() error {
		o.LoadProducers(ctx, item)
		return nil
	})
	_ = g.Wait()
}

// LoadHistory fetches and applies the history for item.
func (o *Orchestrator) LoadHistory(ctx context.Context, item string) {
	var points []market.HistoryPoint
	if o.source != nil {
		points = o.source.History(ctx, item)
	}
	o.ApplyHistory(item, points)
}

// LoadProducers fetches and applies the producer counts for item.
func (o *Orchestrator) LoadProducers(ctx context.Context, item string) {
	var zones []market.ProducerZone
	if o.source != nil {
		zones = o.source.Producers(ctx, item)
	}
	o.ApplyProducers(item, zones)
}

// ApplyHistory replaces both charts. Both slots are released before any new
// chart is created; with no points they stay empty.
func (o *Orchestrator) ApplyHistory(item string, points []market.HistoryPoint) {
	o.mu.Lock()
	o.last.Item = item
	o.last.History = points
	o.mu.Unlock()

	o.price.Release()
	o.volume.Release()
	if len(points) == 0 || o.renderer == nil {
		return
	}
	line, bar := HistoryCharts(points)
	o.price.Replace(func() chart.Handle { return o.renderer.NewLine(line) })
	o.volume.Replace(func() chart.Handle { return o.renderer.NewBar(bar) })
}

// ApplyProducers replaces the producer list.
func (o *Orchestrator) ApplyProducers(item string, zones []market.ProducerZone) {
	o.mu.Lock()
	o.last.Item = item
	o.last.Producers = zones
	o.mu.Unlock()

	o.set(ProducersSurface, surface.List(ProducerEntries(zones, o.hub), NoProducersMessage))
}

// PriceView renders the price chart, or "" when there is none.
func (o *Orchestrator) PriceView(width, height int) string {
	return o.price.View(width, height)
}

// VolumeView renders the volume chart, or "" when there is none.
func (o *Orchestrator) VolumeView(width, height int) string {
	return o.volume.View(width, height)
}

// HasCharts reports whether the charts are live.
func (o *Orchestrator) HasCharts() bool {
	return o.price.Live() && o.volume.Live()
}

func (o *Orchestrator) set(id string, content surface.Content) {
	if o.surfaces != nil {
		o.surfaces.Set(id, content)
	}
}
