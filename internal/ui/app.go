package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bazaar/internal/app"
	"github.com/five82/bazaar/internal/logging"
	"github.com/five82/bazaar/internal/prefs"
	"github.com/five82/bazaar/internal/search"
	"github.com/five82/bazaar/internal/surface"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Dashboard *app.Dashboard
	ThemeName string
	PrefsPath string
	Tick      time.Duration
	Logger    *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	dash      *app.Dashboard
	prefsPath string
	tick      time.Duration
	logger    *slog.Logger
	keys      keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Components
	search   search.Model
	viewport viewport.Model
	spinner  spinner.Model

	// Overlays
	showHelp bool
	modal    Modal

	// Refresh button
	refreshing bool

	lastRevision uint64
}

// New creates a new Bubble Tea model over a dashboard.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = opts.Dashboard.Logger
	}
	if logger == nil {
		logger = logging.Discard()
	}

	m := Model{
		ctx:       ctx,
		dash:      opts.Dashboard,
		prefsPath: opts.PrefsPath,
		tick:      tick,
		logger:    logger,
		keys:      DefaultKeyMap(),
		search:    search.New(ctx, opts.Dashboard.API),
		viewport:  viewport.New(0, 0),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.applyTheme(GetTheme(opts.ThemeName))
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, tickCmd(m.tick)}
	cmds = append(cmds, m.loadAllCmds()...)
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tickMsg:
		if m.dash.Store.Revision() != m.lastRevision {
			m.syncViewport()
		}
		return m, tickCmd(m.tick)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.anyLoading() {
			m.syncViewport()
		}
		return m, cmd

	case loadedMsg:
		m.syncViewport()
		return m, nil

	case analyzeMsg:
		cmd := m.startAnalysis(msg.item)
		return m, cmd

	case search.ResultsMsg:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.syncViewport()
		return m, cmd

	case search.SelectedMsg:
		cmd := m.startAnalysis(msg.Item)
		return m, cmd

	case refreshDoneMsg:
		return m.finishRefresh(app.RefreshOutcome(msg))
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.showHelp {
		return m.renderHelp()
	}

	parts := []string{m.renderHeader(), m.renderTabBar()}
	if dd := m.renderDropdown(); dd != "" {
		parts = append(parts, dd)
	}
	parts = append(parts, m.viewport.View(), m.renderCommandBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.startRefresh()

	case key.Matches(msg, m.keys.Search):
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.NextTab):
		m.dash.Tabs.Next()
		m.switchedTab()
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.dash.Tabs.Prev()
		m.switchedTab()
		return m, nil

	case key.Matches(msg, m.keys.Market), key.Matches(msg, m.keys.Logistics), key.Matches(msg, m.keys.Analysis):
		if m.dash.Tabs.Trigger(msg.String()) {
			m.switchedTab()
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.search.Visible() {
			m.search.Dismiss()
			m.syncViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfPageUp()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfPageDown()
	}
	return m, nil
}

// handleSearchKey routes keys to the focused search box. Esc with the
// results already hidden leaves the box.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	wasVisible := m.search.Visible()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if key.Matches(msg, m.keys.Escape) && !wasVisible {
		m.search.Blur()
	}
	if m.search.Visible() != wasVisible {
		m.syncViewport()
	}
	return m, cmd
}

// handleMouse processes left clicks on the header, the tab bar, and the
// search results. Wheel events scroll the content.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}
	if m.showHelp {
		if msg.Action == tea.MouseActionPress {
			m.showHelp = false
		}
		return m, nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if i, ok := m.dropdownRowAt(msg.X, msg.Y); ok {
		var cmd tea.Cmd
		m.search, cmd = m.search.SelectAt(i)
		return m, cmd
	}

	onInput := msg.Y == tabRow && msg.X >= m.searchX()
	if !onInput && !m.insideDropdown(msg.X, msg.Y) {
		if m.search.Visible() {
			m.search.Dismiss()
			m.syncViewport()
		}
		m.search.Blur()
	}

	switch {
	case onInput:
		cmd := m.search.Focus()
		return m, cmd
	case msg.Y == headerRow && m.buttonSpan().contains(msg.X):
		return m.startRefresh()
	case msg.Y == tabRow:
		ids := m.dash.Tabs.IDs()
		for i, s := range m.tabSpans() {
			if s.contains(msg.X) && m.dash.Tabs.Activate(ids[i]) {
				m.switchedTab()
				break
			}
		}
	}
	return m, nil
}

// renderDropdown renders the search results under the search input.
func (m Model) renderDropdown() string {
	panel := m.search.ResultsView(searchWidth - 2)
	if panel == "" {
		return ""
	}
	pad := strings.Repeat(" ", m.searchX())
	lines := strings.Split(panel, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}

// dropdownRowAt maps a click to a result index.
func (m Model) dropdownRowAt(x, y int) (int, bool) {
	if !m.search.Visible() {
		return 0, false
	}
	if x < m.searchX() || x >= m.searchX()+searchWidth {
		return 0, false
	}
	i := y - dropdownTop - 1
	if i < 0 || i >= len(m.search.Results()) {
		return 0, false
	}
	return i, true
}

// insideDropdown reports whether a click hit the results panel, border
// included.
func (m Model) insideDropdown(x, y int) bool {
	if !m.search.Visible() {
		return false
	}
	h := lipgloss.Height(m.renderDropdown())
	return y >= dropdownTop && y < dropdownTop+h && x >= m.searchX() && x < m.searchX()+searchWidth
}

// startAnalysis resets the search box and begins analyzing item, returning
// the two independent fetches.
func (m *Model) startAnalysis(item string) tea.Cmd {
	m.search.Reset()
	if !m.dash.Analysis.Begin(item) {
		m.syncViewport()
		return nil
	}
	m.viewport.GotoTop()
	m.syncViewport()

	ctx, orch := m.ctx, m.dash.Analysis
	return tea.Batch(
		func() tea.Msg {
			orch.LoadHistory(ctx, item)
			return loadedMsg{name: "history", item: item}
		},
		func() tea.Msg {
			orch.LoadProducers(ctx, item)
			return loadedMsg{name: "producers", item: item}
		},
	)
}

// loadAllCmds returns one command per panel loader plus the default item
// analysis.
func (m Model) loadAllCmds() []tea.Cmd {
	ctx := m.ctx
	loaders := m.dash.Panels.Loaders()
	cmds := make([]tea.Cmd, 0, len(loaders)+1)
	for _, l := range loaders {
		cmds = append(cmds, func() tea.Msg {
			l.Load(ctx)
			return loadedMsg{name: l.Name}
		})
	}
	item := m.dash.Config.DefaultItem
	cmds = append(cmds, func() tea.Msg { return analyzeMsg{item: item} })
	return cmds
}

// startRefresh triggers the server-side price refresh unless one is
// already running.
func (m Model) startRefresh() (tea.Model, tea.Cmd) {
	if m.refreshing {
		return m, nil
	}
	m.refreshing = true
	ctx, d := m.ctx, m.dash
	return m, func() tea.Msg {
		rctx, cancel := context.WithTimeout(ctx, RefreshTimeout)
		defer cancel()
		return refreshDoneMsg(d.TriggerRefresh(rctx))
	}
}

// finishRefresh restores the button and reports the outcome. A success
// reloads every panel and the default item.
func (m Model) finishRefresh(out app.RefreshOutcome) (tea.Model, tea.Cmd) {
	m.refreshing = false
	if out.Busy {
		return m, nil
	}
	if !out.OK {
		m.modal = newAlert("Refresh Failed", out.Message, true)
		return m, nil
	}
	m.modal = newAlert("Refresh Complete", out.Message, false)
	return m, tea.Batch(m.loadAllCmds()...)
}

// cycleTheme switches to the next theme and persists the choice.
func (m *Model) cycleTheme() {
	m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
	if m.prefsPath != "" {
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.logger.Warn("save preferences failed", "path", m.prefsPath, "error", err)
		}
	}
	m.syncViewport()
}

// applyTheme restyles every component that caches colors.
func (m *Model) applyTheme(t Theme) {
	m.theme = t
	if m.dash.Charts != nil {
		m.dash.Charts.SetStyles(t.ChartStyles())
	}
	m.search.Styles = search.Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Background(lipgloss.Color(t.Surface)).
			Padding(0, 1),
		Item:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)).Background(lipgloss.Color(t.Surface)),
		First: t.Styles().Selected,
	}
	m.search.Input.Width = searchWidth - 4
	m.search.Input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent))
	m.search.Input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text))
	m.search.Input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint))
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent))
}

// switchedTab re-renders the content for a newly active tab.
func (m *Model) switchedTab() {
	m.viewport.GotoTop()
	m.syncViewport()
}

// syncViewport sizes the content viewport and re-renders the active tab.
func (m *Model) syncViewport() {
	m.lastRevision = m.dash.Store.Revision()
	if !m.ready {
		return
	}
	height := m.height - chromeRows
	if dd := m.renderDropdown(); dd != "" {
		height -= lipgloss.Height(dd)
	}
	m.viewport.Width = m.width
	m.viewport.Height = max(1, height)
	m.viewport.SetContent(m.renderContent(m.width))
}

// anyLoading reports whether a visible surface shows a loading indicator.
func (m Model) anyLoading() bool {
	for _, r := range m.dash.Store.Snapshot().Regions {
		if r.Content.Kind == surface.KindLoading {
			return true
		}
	}
	return false
}

// Messages

type tickMsg time.Time

// loadedMsg reports that a loader finished writing its surfaces.
type loadedMsg struct {
	name string
	item string
}

// analyzeMsg asks the model to analyze an item on the UI goroutine.
type analyzeMsg struct {
	item string
}

type refreshDoneMsg app.RefreshOutcome

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(m.ctx),
	)
	_, err := p.Run()
	return err
}
