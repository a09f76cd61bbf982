package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/bazaar/internal/analysis"
	"github.com/five82/bazaar/internal/app"
	"github.com/five82/bazaar/internal/config"
	"github.com/five82/bazaar/internal/market"
	"github.com/five82/bazaar/internal/prefs"
	"github.com/five82/bazaar/internal/search"
	"github.com/five82/bazaar/internal/tabs"
)

type stubAPI struct {
	mu      sync.Mutex
	calls   map[string][]string
	results []string
	refresh market.RefreshResult
	err     error
}

func newStubAPI() *stubAPI {
	return &stubAPI{
		calls:   map[string][]string{},
		refresh: market.RefreshResult{Status: "success", Message: "done"},
	}
}

func (s *stubAPI) hit(name, arg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[name] = append(s.calls[name], arg)
}

func (s *stubAPI) args(name string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls[name]...)
}

func (s *stubAPI) Crafting(context.Context, int) []market.CraftingOpportunity {
	s.hit("crafting", "")
	return []market.CraftingOpportunity{{
		Product:         market.NewText("Iron Sword"),
		ManufactureCost: market.NewNumber("10"),
		SalePrice:       market.NewNumber("20"),
		Spread:          market.NewNumber("10"),
		MarginPercent:   market.NewNumber("100"),
	}}
}

func (s *stubAPI) Liquidity(context.Context) []market.LiquidityRecord {
	s.hit("liquidity", "")
	return nil
}

func (s *stubAPI) Arbitrage(context.Context) []market.ArbitrageRoute {
	s.hit("arbitrage", "")
	return nil
}

func (s *stubAPI) Orders(context.Context) []market.Order {
	s.hit("orders", "")
	return nil
}

func (s *stubAPI) Suppliers(context.Context) []market.Supplier {
	s.hit("suppliers", "")
	return nil
}

func (s *stubAPI) Search(_ context.Context, query string) []string {
	s.hit("search", query)
	return s.results
}

func (s *stubAPI) History(_ context.Context, item string) []market.HistoryPoint {
	s.hit("history", item)
	return []market.HistoryPoint{
		{SnapshotDate: market.NewText("2025-01-01 10:00:00"), MedianPrice: market.NewNumber("5"), UnitsSoldSinceLast: market.NewNumber("3")},
		{SnapshotDate: market.NewText("2025-01-02 10:00:00"), MedianPrice: market.NewNumber("6"), UnitsSoldSinceLast: market.NewNumber("4")},
	}
}

func (s *stubAPI) Producers(_ context.Context, item string) []market.ProducerZone {
	s.hit("producers", item)
	return []market.ProducerZone{{Zone: market.NewText("Kerys"), UniqueProducers: market.NewNumber("4")}}
}

func (s *stubAPI) TriggerRefresh(context.Context) (market.RefreshResult, error) {
	s.hit("refresh", "")
	return s.refresh, s.err
}

func newTestModel(t *testing.T, api *stubAPI) Model {
	t.Helper()
	d := app.NewDashboard(config.Default(), api, nil)
	m := New(Options{
		Dashboard: d,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	return update(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// drain runs cmd and every command it produces, feeding messages back into
// the model. Timer-driven commands are never produced by the paths tested.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		next, more := m.Update(msg)
		m = next.(Model)
		queue = append(queue, more)
	}
	return m
}

func TestRefresh_SuccessRestoresButtonAndReloadsEverything(t *testing.T) {
	api := newStubAPI()
	m := newTestModel(t, api)

	next, cmd := m.Update(keyPress("r"))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.refreshing)
	assert.Contains(t, m.renderHeader(), fetchLabel)

	msg := cmd()
	require.IsType(t, refreshDoneMsg{}, msg)
	next, reload := m.Update(msg)
	m = next.(Model)

	assert.False(t, m.refreshing)
	assert.Contains(t, m.renderHeader(), "Refresh Prices")
	require.NotNil(t, m.modal)
	assert.Contains(t, m.View(), app.RefreshSuccessMessage)

	m = drain(t, m, reload)
	for _, name := range []string{"crafting", "liquidity", "arbitrage", "orders", "suppliers"} {
		assert.Len(t, api.args(name), 1, name)
	}
	assert.Equal(t, []string{"Charcoal"}, api.args("history"))
	assert.Equal(t, []string{"Charcoal"}, api.args("producers"))
	assert.Equal(t, tabs.Analysis, m.dash.Tabs.Active())
	assert.True(t, m.dash.Analysis.HasCharts())
}

func TestRefresh_FailureShowsBlockingModal(t *testing.T) {
	tests := []struct {
		name    string
		refresh market.RefreshResult
		err     error
		want    string
	}{
		{"server error", market.RefreshResult{Status: "error", Message: "scraper crashed"}, nil, "Error: scraper crashed"},
		{"transport error", market.RefreshResult{}, errors.New("connection refused"), "Request failed: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newStubAPI()
			api.refresh, api.err = tt.refresh, tt.err
			m := newTestModel(t, api)

			next, cmd := m.Update(keyPress("r"))
			m = next.(Model)
			next, reload := m.Update(cmd())
			m = next.(Model)

			assert.Nil(t, reload)
			assert.False(t, m.refreshing)
			assert.Contains(t, m.View(), tt.want)
			assert.Empty(t, api.args("crafting"))

			// Keys go to the modal until it is dismissed.
			m = update(t, m, keyPress("2"))
			assert.Equal(t, tabs.Market, m.dash.Tabs.Active())
			m = update(t, m, keyPress("enter"))
			assert.Nil(t, m.modal)
		})
	}
}

func TestRefresh_IgnoredWhileRunning(t *testing.T) {
	m := newTestModel(t, newStubAPI())
	next, first := m.Update(keyPress("r"))
	m = next.(Model)
	require.NotNil(t, first)

	_, second := m.Update(keyPress("r"))
	assert.Nil(t, second)

	_, clicked := m.Update(click(m.buttonSpan().start, headerRow))
	assert.Nil(t, clicked)
}

func TestRefresh_ButtonClick(t *testing.T) {
	m := newTestModel(t, newStubAPI())
	next, cmd := m.Update(click(m.buttonSpan().start+1, headerRow))
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.True(t, m.refreshing)
}

func TestSelectedItem_StartsAnalysisAndResetsSearch(t *testing.T) {
	api := newStubAPI()
	m := newTestModel(t, api)
	m.search.Focus()
	m.search, _ = m.search.SetQuery("Iron")

	next, cmd := m.Update(search.SelectedMsg{Item: "Iron Ore"})
	m = next.(Model)

	assert.Equal(t, tabs.Analysis, m.dash.Tabs.Active())
	assert.Empty(t, m.search.Value())
	assert.False(t, m.search.Visible())
	title, _ := m.dash.Store.Get(analysis.TitleSurface)
	assert.Equal(t, "Item Analysis: Iron Ore", title.Text)

	m = drain(t, m, cmd)
	assert.Equal(t, []string{"Iron Ore"}, api.args("history"))
	assert.Equal(t, []string{"Iron Ore"}, api.args("producers"))
	assert.Contains(t, m.renderContent(m.width), "(4 Sellers)")
}

func TestSearch_EnterAnalyzesFirstResult(t *testing.T) {
	api := newStubAPI()
	api.results = []string{"Charcoal", "Chalk"}
	m := newTestModel(t, api)

	m = update(t, m, keyPress("/"))
	require.True(t, m.search.Focused())
	var cmd tea.Cmd
	m.search, cmd = m.search.SetQuery("Cha")
	m = drain(t, m, cmd)
	require.True(t, m.search.Visible())
	assert.Contains(t, m.View(), "Chalk")

	next, cmd := m.Update(keyPress("enter"))
	m = drain(t, next.(Model), cmd)

	assert.Equal(t, []string{"Charcoal"}, api.args("history"))
	assert.False(t, m.search.Focused())
	assert.Empty(t, m.search.Value())
}

func TestMouse_OutsideClickDismissesKeepsQuery(t *testing.T) {
	api := newStubAPI()
	api.results = []string{"Charcoal"}
	m := newTestModel(t, api)
	m.search.Focus()
	var cmd tea.Cmd
	m.search, cmd = m.search.SetQuery("Cha")
	m = drain(t, m, cmd)
	require.True(t, m.search.Visible())

	m = update(t, m, click(2, 20))

	assert.False(t, m.search.Visible())
	assert.Equal(t, "Cha", m.search.Value())
}

func TestMouse_ClickOnResultSelectsIt(t *testing.T) {
	api := newStubAPI()
	api.results = []string{"Charcoal", "Chalk"}
	m := newTestModel(t, api)
	m.search.Focus()
	var cmd tea.Cmd
	m.search, cmd = m.search.SetQuery("Cha")
	m = drain(t, m, cmd)

	next, cmd := m.Update(click(m.searchX()+3, dropdownTop+2))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, search.SelectedMsg{Item: "Chalk"}, msg)
	assert.False(t, next.(Model).search.Visible())
}

func TestMouse_TabClickActivatesTab(t *testing.T) {
	m := newTestModel(t, newStubAPI())
	spans := m.tabSpans()
	require.Len(t, spans, 3)

	m = update(t, m, click(spans[1].start, tabRow))
	assert.Equal(t, tabs.Logistics, m.dash.Tabs.Active())

	m = update(t, m, click(spans[2].end-1, tabRow))
	assert.Equal(t, tabs.Analysis, m.dash.Tabs.Active())
}

func TestKeys_TabTriggers(t *testing.T) {
	m := newTestModel(t, newStubAPI())
	m = update(t, m, keyPress("2"))
	assert.Equal(t, tabs.Logistics, m.dash.Tabs.Active())
	m = update(t, m, keyPress("1"))
	assert.Equal(t, tabs.Market, m.dash.Tabs.Active())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabs.Logistics, m.dash.Tabs.Active())
}

func TestCycleTheme_SavesPreference(t *testing.T) {
	m := newTestModel(t, newStubAPI())
	require.Equal(t, "Nightfox", m.theme.Name)

	m = update(t, m, keyPress("T"))

	assert.Equal(t, "Kanagawa", m.theme.Name)
	p, err := prefs.Load(m.prefsPath)
	require.NoError(t, err)
	assert.Equal(t, "Kanagawa", p.Theme)
	assert.True(t, strings.Contains(m.renderCommandBar(), "Kanagawa"))
}

func TestHelpOverlay_AnyKeyCloses(t *testing.T) {
	m := newTestModel(t, newStubAPI())
	m = update(t, m, keyPress("?"))
	assert.Contains(t, m.View(), "Keyboard Shortcuts")
	m = update(t, m, keyPress("x"))
	assert.False(t, m.showHelp)
}
