package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/five82/bazaar/internal/analysis"
	"github.com/five82/bazaar/internal/chart"
	"github.com/five82/bazaar/internal/config"
	"github.com/five82/bazaar/internal/logging"
	"github.com/five82/bazaar/internal/market"
	"github.com/five82/bazaar/internal/panels"
	"github.com/five82/bazaar/internal/surface"
	"github.com/five82/bazaar/internal/table"
	"github.com/five82/bazaar/internal/tabs"
)

// Messages shown after a manual price refresh.
const (
	RefreshSuccessMessage = "Prices updated! Refreshing view."
	refreshErrorPrefix    = "Error: "
	refreshFailedPrefix   = "Request failed: "
)

// RefreshOutcome is what the user is told after a manual refresh.
type RefreshOutcome struct {
	OK      bool
	Busy    bool // another refresh was already running
	Message string
}

// Dashboard wires the fetch layer, the surface store, and every renderer.
// Front ends drive it and read from Store.
type Dashboard struct {
	Config   config.Config
	API      market.API
	Store    *surface.Store
	Panels   *panels.Panels
	Tabs     *tabs.Controller
	Analysis *analysis.Orchestrator
	Charts   *chart.TermRenderer
	Logger   *slog.Logger

	refreshing atomic.Bool
}

// SurfaceIDs lists every surface the dashboard declares.
func SurfaceIDs() []string {
	return append(panels.SurfaceIDs(), analysis.TitleSurface, analysis.ProducersSurface)
}

// NewDashboard builds a dashboard reading from api.
func NewDashboard(cfg config.Config, api market.API, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = logging.Discard()
	}
	store := surface.NewStore(SurfaceIDs()...)
	engine := table.NewEngine(store, logger)
	tc := tabs.Default()
	charts := chart.NewTermRenderer(chart.Styles{})

	return &Dashboard{
		Config: cfg,
		API:    api,
		Store:  store,
		Panels: panels.New(api, engine, panels.Options{
			CraftingTop:  cfg.CraftingTop,
			LiquidityTop: cfg.LiquidityTop,
		}),
		Tabs: tc,
		Analysis: analysis.New(analysis.Options{
			Source:   api,
			Surfaces: store,
			Tabs:     tc,
			Renderer: charts,
			HubZone:  cfg.HubZone,
			Logger:   logger,
		}),
		Charts: charts,
		Logger: logger,
	}
}

// Health returns the API health when the fetch layer tracks it.
func (d *Dashboard) Health() market.HealthStatus {
	if h, ok := d.API.(interface{ Health() *market.Health }); ok {
		return h.Health().Status()
	}
	return market.HealthStatus{}
}

// LoadPanels runs every panel loader concurrently and waits for them.
func (d *Dashboard) LoadPanels(ctx context.Context) {
	d.Panels.LoadAll(ctx)
}

// LoadAll loads every panel and analyzes the default item.
func (d *Dashboard) LoadAll(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		d.LoadPanels(ctx)
		return nil
	})
	g.Go(func() error {
		d.Analysis.Analyze(ctx, d.Config.DefaultItem)
		return nil
	})
	_ = g.Wait()
}

// TriggerRefresh asks the server to re-fetch prices. Only one refresh runs
// at a time; a second call while one is in flight reports Busy.
func (d *Dashboard) TriggerRefresh(ctx context.Context) RefreshOutcome {
	if !d.refreshing.CompareAndSwap(false, true) {
		return RefreshOutcome{Busy: true}
	}
	defer d.refreshing.Store(false)

	result, err := d.API.TriggerRefresh(ctx)
	if err != nil {
		d.Logger.Warn("price refresh request failed", "error", err)
		return RefreshOutcome{Message: refreshFailedPrefix + err.Error()}
	}
	if !result.OK() {
		d.Logger.Warn("price refresh rejected", "status", result.Status, "message", result.Message, "log", result.Log)
		return RefreshOutcome{Message: refreshErrorPrefix + result.Message}
	}
	d.Logger.Info("price refresh completed", "message", result.Message)
	d.Logger.Debug("price refresh output", "log", result.Log)
	return RefreshOutcome{OK: true, Message: RefreshSuccessMessage}
}

// Refreshing reports whether a manual refresh is in flight.
func (d *Dashboard) Refreshing() bool {
	return d.refreshing.Load()
}

// Bootstrap builds the client and dashboard for cfg. The caller owns the
// returned dashboard for the life of the process.
func Bootstrap(cfg config.Config, logger *slog.Logger) (*Dashboard, error) {
	client, err := market.NewClient(cfg.APIBase,
		market.WithTimeout(cfg.RequestTimeout),
		market.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("init advisor client: %w", err)
	}
	return NewDashboard(cfg, client, logger), nil
}
