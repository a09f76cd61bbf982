package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/bazaar/internal/analysis"
	"github.com/five82/bazaar/internal/config"
	"github.com/five82/bazaar/internal/logging"
	"github.com/five82/bazaar/internal/market"
	"github.com/five82/bazaar/internal/panels"
	"github.com/five82/bazaar/internal/surface"
	"github.com/five82/bazaar/internal/tabs"
)

// fakeAPI serves canned records and counts calls per endpoint.
type fakeAPI struct {
	mu       sync.Mutex
	calls    map[string]int
	refresh  market.RefreshResult
	err      error
	release  chan struct{}
	started  chan struct{}
	history  []market.HistoryPoint
	lastItem string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}}
}

func (f *fakeAPI) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) Crafting(context.Context, int) []market.CraftingOpportunity {
	f.hit("crafting")
	return []market.CraftingOpportunity{{Product: market.NewText("Iron Sword")}}
}

func (f *fakeAPI) Liquidity(context.Context) []market.LiquidityRecord {
	f.hit("liquidity")
	return []market.LiquidityRecord{{Item: market.NewText("Charcoal")}}
}

func (f *fakeAPI) Arbitrage(context.Context) []market.ArbitrageRoute {
	f.hit("arbitrage")
	return nil
}

func (f *fakeAPI) Orders(context.Context) []market.Order {
	f.hit("orders")
	return nil
}

func (f *fakeAPI) Suppliers(context.Context) []market.Supplier {
	f.hit("suppliers")
	return nil
}

func (f *fakeAPI) Search(context.Context, string) []string {
	f.hit("search")
	return nil
}

func (f *fakeAPI) History(_ context.Context, item string) []market.HistoryPoint {
	f.hit("history")
	f.mu.Lock()
	f.lastItem = item
	f.mu.Unlock()
	return f.history
}

func (f *fakeAPI) Producers(context.Context, string) []market.ProducerZone {
	f.hit("producers")
	return nil
}

func (f *fakeAPI) TriggerRefresh(context.Context) (market.RefreshResult, error) {
	f.hit("refresh")
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	return f.refresh, f.err
}

func testDashboard(api market.API) *Dashboard {
	return NewDashboard(config.Default(), api, nil)
}

func TestLoadAll_LoadsPanelsAndDefaultItem(t *testing.T) {
	api := newFakeAPI()
	d := testDashboard(api)

	d.LoadAll(context.Background())

	for _, name := range []string{"crafting", "liquidity", "arbitrage", "orders", "suppliers", "history", "producers"} {
		assert.Equal(t, 1, api.count(name), name)
	}
	assert.Equal(t, "Charcoal", api.lastItem)
	assert.Equal(t, tabs.Analysis, d.Tabs.Active())

	snap := d.Store.Snapshot()
	assert.Equal(t, surface.KindTable, snap.Get(panels.CraftingSurface).Kind)
	assert.Equal(t, surface.KindEmpty, snap.Get(panels.ArbitrageSurface).Kind)
	assert.Equal(t, "Item Analysis: Charcoal", snap.Get(analysis.TitleSurface).Text)
}

func TestLoadPanels_DoesNotTouchAnalysis(t *testing.T) {
	api := newFakeAPI()
	d := testDashboard(api)

	d.LoadPanels(context.Background())

	assert.Zero(t, api.count("history"))
	assert.Equal(t, tabs.Market, d.Tabs.Active())
}

func TestTriggerRefresh_Outcomes(t *testing.T) {
	tests := []struct {
		name   string
		result market.RefreshResult
		err    error
		want   RefreshOutcome
	}{
		{
			name:   "success",
			result: market.RefreshResult{Status: "success", Message: "Market prices updated successfully."},
			want:   RefreshOutcome{OK: true, Message: RefreshSuccessMessage},
		},
		{
			name:   "script failure",
			result: market.RefreshResult{Status: "error", Message: "Script execution failed."},
			want:   RefreshOutcome{Message: "Error: Script execution failed."},
		},
		{
			name: "transport failure",
			err:  errors.New("connection refused"),
			want: RefreshOutcome{Message: "Request failed: connection refused"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			api.refresh, api.err = tt.result, tt.err
			d := testDashboard(api)

			assert.Equal(t, tt.want, d.TriggerRefresh(context.Background()))
			assert.False(t, d.Refreshing())
		})
	}
}

func TestTriggerRefresh_SecondCallWhileBusy(t *testing.T) {
	api := newFakeAPI()
	api.refresh = market.RefreshResult{Status: "success"}
	api.started = make(chan struct{})
	api.release = make(chan struct{})
	d := testDashboard(api)

	done := make(chan RefreshOutcome)
	go func() { done <- d.TriggerRefresh(context.Background()) }()
	<-api.started

	assert.True(t, d.Refreshing())
	assert.Equal(t, RefreshOutcome{Busy: true}, d.TriggerRefresh(context.Background()))

	close(api.release)
	require.True(t, (<-done).OK)
	assert.Equal(t, 1, api.count("refresh"))
}

func TestHealth_WithoutTracker(t *testing.T) {
	d := testDashboard(newFakeAPI())
	assert.Equal(t, market.HealthStatus{}, d.Health())
}

func TestBootstrap_RefreshOutlastsRequestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/admin/fetch-prices":
			time.Sleep(400 * time.Millisecond)
			_, _ = w.Write([]byte(`{"status":"success","message":"Market prices updated successfully."}`))
		case "/api/market/liquidity":
			time.Sleep(400 * time.Millisecond)
			_, _ = w.Write([]byte(`[{"Item":"Charcoal","Units_Sold":42}]`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.APIBase = server.URL
	cfg.RequestTimeout = 100 * time.Millisecond
	d, err := Bootstrap(cfg, logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.Equal(t, RefreshOutcome{OK: true, Message: RefreshSuccessMessage}, d.TriggerRefresh(ctx))

	assert.Nil(t, d.API.Liquidity(ctx), "reads stay bounded by the request timeout")
}
