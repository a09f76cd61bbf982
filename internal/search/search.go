// Package search provides the item search box with its autocomplete
// dropdown.
//
// The component follows the bubbles convention: it is a value type with
// Update and View, owned by the parent model. Queries shorter than
// MinQueryLength runes never show results. Longer queries dispatch a search
// command whose ResultsMsg is applied whenever it arrives; there is no
// cancellation, so the dropdown shows the last response processed.
package search

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bazaar/internal/format"
)

// MinQueryLength is the shortest query that triggers a lookup.
const MinQueryLength = 3

// Searcher resolves a query to matching item names.
type Searcher interface {
	Search(ctx context.Context, query string) []string
}

// SearcherFunc adapts a function to Searcher.
type SearcherFunc func(ctx context.Context, query string) []string

// Search implements Searcher.
func (f SearcherFunc) Search(ctx context.Context, query string) []string {
	return f(ctx, query)
}

// ResultsMsg carries the response to one dispatched query.
type ResultsMsg struct {
	Query string
	Items []string
}

// SelectedMsg reports that the user picked an item.
type SelectedMsg struct {
	Item string
}

// KeyMap holds the bindings the component reacts to while focused.
type KeyMap struct {
	Select  key.Binding
	Dismiss key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Analyze first match"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close results"),
		),
	}
}

// Styles controls how the dropdown renders.
type Styles struct {
	Panel lipgloss.Style
	Item  lipgloss.Style
	First lipgloss.Style
}

// DefaultStyles returns unthemed styles.
func DefaultStyles() Styles {
	return Styles{
		Panel: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Item:  lipgloss.NewStyle(),
		First: lipgloss.NewStyle().Bold(true),
	}
}

// Model is the search box state.
type Model struct {
	Input  textinput.Model
	KeyMap KeyMap
	Styles Styles

	ctx      context.Context
	searcher Searcher
	results  []string
	visible  bool
}

// New returns an unfocused, empty search box.
func New(ctx context.Context, searcher Searcher) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	ti := textinput.New()
	ti.Placeholder = "Search items..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return Model{
		Input:    ti,
		KeyMap:   DefaultKeyMap(),
		Styles:   DefaultStyles(),
		ctx:      ctx,
		searcher: searcher,
	}
}

// Focus gives the input keyboard focus.
func (m *Model) Focus() tea.Cmd {
	return m.Input.Focus()
}

// Blur removes keyboard focus without touching the query or results.
func (m *Model) Blur() {
	m.Input.Blur()
}

// Focused reports whether the input has keyboard focus.
func (m Model) Focused() bool {
	return m.Input.Focused()
}

// Value returns the current query text.
func (m Model) Value() string {
	return m.Input.Value()
}

// Visible reports whether the results dropdown is shown.
func (m Model) Visible() bool {
	return m.visible
}

// Results returns the results currently displayed, or nil when hidden.
func (m Model) Results() []string {
	if !m.visible {
		return nil
	}
	return append([]string(nil), m.results...)
}

// Update handles keys while focused and applies search responses.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultsMsg:
		m.apply(msg)
		return m, nil

	case tea.KeyMsg:
		if !m.Input.Focused() {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.KeyMap.Select):
			if m.visible && len(m.results) > 0 {
				return m.SelectAt(0)
			}
			return m, nil
		case key.Matches(msg, m.KeyMap.Dismiss):
			m.Dismiss()
			return m, nil
		}

		before := m.Input.Value()
		var inputCmd tea.Cmd
		m.Input, inputCmd = m.Input.Update(msg)
		if m.Input.Value() == before {
			return m, inputCmd
		}
		var searchCmd tea.Cmd
		m, searchCmd = m.onInput()
		return m, tea.Batch(inputCmd, searchCmd)
	}
	return m, nil
}

// SetQuery replaces the query text as if it had been typed and returns the
// lookup command, if any.
func (m Model) SetQuery(query string) (Model, tea.Cmd) {
	m.Input.SetValue(query)
	return m.onInput()
}

// SelectAt picks the i-th displayed result. The query is cleared, the
// dropdown hidden, and the input blurred.
func (m Model) SelectAt(i int) (Model, tea.Cmd) {
	if !m.visible || i < 0 || i >= len(m.results) {
		return m, nil
	}
	item := m.results[i]
	m.Reset()
	m.Input.Blur()
	return m, func() tea.Msg { return SelectedMsg{Item: item} }
}

// Dismiss hides the dropdown and keeps the query.
func (m *Model) Dismiss() {
	m.visible = false
}

// Reset hides the dropdown and clears the query.
func (m *Model) Reset() {
	m.visible = false
	m.results = nil
	m.Input.SetValue("")
}

// View renders the input line.
func (m Model) View() string {
	return m.Input.View()
}

// ResultsView renders the dropdown, or "" when hidden. Row i of the
// dropdown body corresponds to Results()[i].
func (m Model) ResultsView(width int) string {
	if !m.visible || len(m.results) == 0 {
		return ""
	}
	lines := make([]string, len(m.results))
	for i, item := range m.results {
		style := m.Styles.Item
		if i == 0 {
			style = m.Styles.First
		}
		lines[i] = style.Render(format.Sanitize(item))
	}
	panel := m.Styles.Panel
	if width > 0 {
		panel = panel.Width(width)
	}
	return panel.Render(strings.Join(lines, "\n"))
}

func (m Model) onInput() (Model, tea.Cmd) {
	query := m.Input.Value()
	if utf8.RuneCountInString(query) < MinQueryLength {
		m.visible = false
		return m, nil
	}
	return m, m.lookup(query)
}

func (m Model) lookup(query string) tea.Cmd {
	if m.searcher == nil {
		return nil
	}
	ctx, searcher := m.ctx, m.searcher
	return func() tea.Msg {
		return ResultsMsg{Query: query, Items: searcher.Search(ctx, query)}
	}
}

// apply processes a response. Responses arriving after the query dropped
// below the threshold are discarded so the dropdown never shows for a short
// query.
func (m *Model) apply(msg ResultsMsg) {
	if utf8.RuneCountInString(m.Input.Value()) < MinQueryLength {
		return
	}
	if len(msg.Items) == 0 {
		m.visible = false
		m.results = nil
		return
	}
	m.results = append([]string(nil), msg.Items...)
	m.visible = true
}
