package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bazaar/internal/tabs"
)

// Labels of the manual refresh button.
const (
	refreshLabel = "↻ Refresh Prices"
	fetchLabel   = "Fetching..."
)

var tabTitles = map[string]string{
	tabs.Market:    "Market",
	tabs.Logistics: "Logistics",
	tabs.Analysis:  "Analysis",
}

// renderHeader renders the status bar with the refresh button on the right.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	left := bg.Join(m.statusParts(styles, bg), "  ")
	button := m.renderButton(styles)

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(button)
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).Render(left + bg.Spaces(gap) + button)
}

// statusParts builds the left side of the header.
func (m Model) statusParts(styles Styles, bg BgStyle) []string {
	compact := m.width < LayoutCompactWidth
	health := m.dash.Health()

	parts := []string{bg.Render("bazaar", styles.Logo)}

	switch {
	case health.IsOffline():
		parts = append(parts,
			bg.Render("● API "+classifyConnectionError(health.LastError), styles.DangerText))
	case health.LastSuccess.IsZero() && health.LastError == nil:
		parts = append(parts, bg.Render("● Connecting...", styles.WarningText))
	default:
		parts = append(parts, bg.Render("● API", styles.SuccessText))
	}

	if !compact {
		parts = append(parts,
			bg.Render("API:", styles.MutedText)+bg.Space()+
				bg.Render(truncate(m.dash.Config.APIBase, 32), styles.Text))
	}

	if ts := formatTimestamp(health.LastSuccess, time.Now()); ts != "" {
		parts = append(parts,
			bg.Render("Updated:", styles.MutedText)+bg.Space()+bg.Render(ts, styles.MutedText))
	}

	if health.LastError != nil && !health.IsOffline() && !compact {
		parts = append(parts,
			bg.Render("!", styles.WarningText.Bold(true))+bg.Space()+
				bg.Render(truncate(health.LastError.Error(), 40), styles.WarningText))
	}
	return parts
}

// renderButton renders the manual refresh trigger.
func (m Model) renderButton(styles Styles) string {
	if m.refreshing {
		return styles.ButtonBusy.Render(fetchLabel)
	}
	return styles.Button.Render(refreshLabel)
}

// buttonSpan returns the screen columns covered by the refresh button.
func (m Model) buttonSpan() span {
	w := lipgloss.Width(m.renderButton(m.theme.Styles()))
	end := m.width - 1
	return span{start: end - w, end: end}
}

// renderTabBar renders the tab triggers and the search input.
func (m Model) renderTabBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	active := m.dash.Tabs.Active()
	labels := make([]string, 0, len(m.dash.Tabs.IDs()))
	for i, id := range m.dash.Tabs.IDs() {
		label := tabLabel(i, id)
		if id == active {
			labels = append(labels, m.theme.Styles().Selected.Bold(true).Render(label))
		} else {
			labels = append(labels, bg.Render(label, styles.MutedText))
		}
	}
	left := bg.Space() + strings.Join(labels, bg.Spaces(tabGap))

	input := m.search.View()
	searchX := m.searchX()
	gap := searchX - lipgloss.Width(left)
	if gap < 1 {
		gap = 1
	}
	return bg.FillLine(left+bg.Spaces(gap)+input, m.width)
}

// tabSpans returns the screen columns of every tab trigger, in tab order.
func (m Model) tabSpans() []span {
	ids := m.dash.Tabs.IDs()
	spans := make([]span, 0, len(ids))
	x := 1
	for i, id := range ids {
		w := lipgloss.Width(tabLabel(i, id))
		spans = append(spans, span{start: x, end: x + w})
		x += w + tabGap
	}
	return spans
}

// searchX is the first column of the search input.
func (m Model) searchX() int {
	return max(0, m.width-searchWidth-1)
}

func tabLabel(i int, id string) string {
	title := tabTitles[id]
	if title == "" {
		title = id
	}
	return fmt.Sprintf(" %d %s ", i+1, title)
}

// formatTimestamp formats the last update time with a relative indicator.
func formatTimestamp(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	since := now.Sub(t)
	out := t.Format("15:04:05")
	switch {
	case since < time.Minute:
		out += " (now)"
	case since < time.Hour:
		out += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		out += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return out
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return "OFFLINE"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd
	if m.search.Focused() {
		commands = []cmd{
			{"enter", "Analyze first match"},
			{"esc", "Close"},
		}
	} else {
		commands = []cmd{
			{"1/2/3", "Tabs"},
			{"/", "Search"},
			{"r", ternary(m.refreshing, "Fetching", "Refresh")},
			{"j/k", "Scroll"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	if item := m.dash.Analysis.Active(); item != "" {
		segments = append(segments,
			bg.Render("Item", styles.FaintText)+colon+bg.Render(truncate(item, 24), styles.Text))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}
