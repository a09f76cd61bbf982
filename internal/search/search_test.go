package search

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	mu      sync.Mutex
	queries []string
	results map[string][]string
}

func (f *fakeSearcher) Search(_ context.Context, query string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.results[query]
}

func newModel(results map[string][]string) (Model, *fakeSearcher) {
	fake := &fakeSearcher{results: results}
	m := New(context.Background(), fake)
	m.Focus()
	return m, fake
}

// typeQuery sets the query and feeds the lookup response straight back.
func typeQuery(t *testing.T, m Model, query string) Model {
	t.Helper()
	m, cmd := m.SetQuery(query)
	if cmd == nil {
		return m
	}
	msg := cmd()
	results, ok := msg.(ResultsMsg)
	require.True(t, ok, "unexpected msg %T", msg)
	m, _ = m.Update(results)
	return m
}

func TestShortQueryHidesWithoutLookup(t *testing.T) {
	m, fake := newModel(map[string][]string{"cha": {"Charcoal"}})

	m = typeQuery(t, m, "cha")
	require.True(t, m.Visible())

	m, cmd := m.SetQuery("ch")
	assert.Nil(t, cmd)
	assert.False(t, m.Visible())
	assert.Nil(t, m.Results())
	assert.Equal(t, []string{"cha"}, fake.queries)
}

func TestResultsShownInServerOrder(t *testing.T) {
	m, _ := newModel(map[string][]string{"iron": {"Iron Ore", "Iron Bar", "Iron Sword"}})

	m = typeQuery(t, m, "iron")

	assert.True(t, m.Visible())
	assert.Equal(t, []string{"Iron Ore", "Iron Bar", "Iron Sword"}, m.Results())
	assert.Contains(t, m.ResultsView(30), "Iron Bar")
}

func TestZeroResultsHide(t *testing.T) {
	m, _ := newModel(map[string][]string{"iron": {"Iron Ore"}})

	m = typeQuery(t, m, "iron")
	require.True(t, m.Visible())

	m = typeQuery(t, m, "ironx")
	assert.False(t, m.Visible())
	assert.Empty(t, m.ResultsView(30))
}

func TestLateResponseForShortQueryIsDiscarded(t *testing.T) {
	m, _ := newModel(map[string][]string{"cha": {"Charcoal"}})

	m, cmd := m.SetQuery("cha")
	require.NotNil(t, cmd)
	pending := cmd()

	m, _ = m.SetQuery("c")
	m, _ = m.Update(pending)

	assert.False(t, m.Visible())
}

func TestStaleResponseIsStillApplied(t *testing.T) {
	m, _ := newModel(map[string][]string{
		"cha":  {"Charcoal", "Chalk"},
		"char": {"Charcoal"},
	})

	m, first := m.SetQuery("cha")
	m, second := m.SetQuery("char")
	m, _ = m.Update(second())
	m, _ = m.Update(first())

	assert.Equal(t, []string{"Charcoal", "Chalk"}, m.Results(), "last processed response wins")
}

func TestEnterSelectsFirstResult(t *testing.T) {
	m, _ := newModel(map[string][]string{"flax": {"Flax", "Flax Seed"}})
	m = typeQuery(t, m, "flax")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SelectedMsg{Item: "Flax"}, cmd())
	assert.False(t, m.Visible())
	assert.Empty(t, m.Value())
	assert.False(t, m.Focused())
}

func TestEnterWithoutResultsDoesNothing(t *testing.T) {
	m, _ := newModel(nil)
	m, _ = m.SetQuery("zzz")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "zzz", m.Value())
}

func TestSelectAtPicksClickedRow(t *testing.T) {
	m, _ := newModel(map[string][]string{"iron": {"Iron Ore", "Iron Bar"}})
	m = typeQuery(t, m, "iron")

	m, cmd := m.SelectAt(1)
	require.NotNil(t, cmd)
	assert.Equal(t, SelectedMsg{Item: "Iron Bar"}, cmd())

	_, cmd = m.SelectAt(0)
	assert.Nil(t, cmd, "hidden dropdown has nothing to select")
}

func TestEscDismissKeepsQuery(t *testing.T) {
	m, _ := newModel(map[string][]string{"iron": {"Iron Ore"}})
	m = typeQuery(t, m, "iron")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Visible())
	assert.Equal(t, "iron", m.Value())
}

func TestResultsViewSanitizesItems(t *testing.T) {
	m, _ := newModel(map[string][]string{"evil": {"\x1b[31mRed\x1b[0m Herb"}})
	m = typeQuery(t, m, "evil")

	out := m.ResultsView(0)
	assert.Contains(t, out, "Red Herb")
	assert.NotContains(t, out, "\x1b[31m")
}
