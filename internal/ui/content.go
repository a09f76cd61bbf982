package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/bazaar/internal/analysis"
	"github.com/five82/bazaar/internal/panels"
	"github.com/five82/bazaar/internal/surface"
	"github.com/five82/bazaar/internal/tabs"
)

const (
	noHistoryMessage = "No price history for this item."
	hubMarker        = "◉"
	zoneMarker       = "○"
)

// renderContent renders every box of the active tab at the given width.
func (m Model) renderContent(width int) string {
	snap := m.dash.Store.Snapshot()
	switch m.dash.Tabs.Active() {
	case tabs.Logistics:
		return m.renderLogistics(snap, width)
	case tabs.Analysis:
		return m.renderAnalysis(snap, width)
	default:
		return m.renderMarket(snap, width)
	}
}

func (m Model) renderMarket(snap surface.Snapshot, width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.surfaceBox(snap, panels.CraftingSurface, width),
		m.surfaceBox(snap, panels.LiquiditySurface, width),
	)
}

func (m Model) renderLogistics(snap surface.Snapshot, width int) string {
	var orders string
	if width >= LayoutSplitWidth {
		left := width / 2
		orders = lipgloss.JoinHorizontal(lipgloss.Top,
			m.surfaceBox(snap, panels.ConstantOrdersSurface, left),
			m.surfaceBox(snap, panels.OneTimeOrdersSurface, width-left),
		)
	} else {
		orders = lipgloss.JoinVertical(lipgloss.Left,
			m.surfaceBox(snap, panels.ConstantOrdersSurface, width),
			m.surfaceBox(snap, panels.OneTimeOrdersSurface, width),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.surfaceBox(snap, panels.ArbitrageSurface, width),
		orders,
		m.surfaceBox(snap, panels.SuppliersSurface, width),
	)
}

func (m Model) renderAnalysis(snap surface.Snapshot, width int) string {
	inner := max(1, width-2)
	styles := m.theme.Styles().WithBackground(m.theme.Background)

	title := snap.Get(analysis.TitleSurface)
	heading := styles.AccentText.Bold(true).Render(title.Text)
	if title.Kind == surface.KindBlank {
		heading = styles.MutedText.Render("Search for an item to analyze it.")
	}
	heading = NewBgStyle(m.theme.Background).FillLine(" "+heading, width)

	price := m.dash.Analysis.PriceView(inner, priceChartHeight)
	volume := m.dash.Analysis.VolumeView(inner, volumeChartHeight)
	if price == "" {
		price = m.placeholder(noHistoryMessage, m.theme.SurfaceAlt)
	}
	if volume == "" {
		volume = m.placeholder(noHistoryMessage, m.theme.SurfaceAlt)
	}

	producers := m.renderSurface(snap.Get(analysis.ProducersSurface), inner, m.theme.SurfaceAlt)
	return lipgloss.JoinVertical(lipgloss.Left,
		heading,
		m.box("Price History", price, width),
		m.box("Daily Volume", volume, width),
		m.box("Producers", producers, width),
	)
}

// surfaceBox renders one table surface inside a titled box.
func (m Model) surfaceBox(snap surface.Snapshot, id string, width int) string {
	title := panels.Titles[id]
	if title == "" {
		title = id
	}
	body := m.renderSurface(snap.Get(id), max(1, width-2), m.theme.SurfaceAlt)
	return m.box(title, body, width)
}

// box sizes a titled box to its content.
func (m Model) box(title, content string, width int) string {
	height := strings.Count(content, "\n") + 3
	return m.renderTitledBox(title, clipLines(content, width-2), width, height)
}

// renderSurface renders surface content for a box interior.
func (m Model) renderSurface(c surface.Content, width int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	switch c.Kind {
	case surface.KindLoading:
		return bg.Render(m.spinner.View(), styles.AccentText) + bg.Space() + bg.Render(c.Text, styles.MutedText)
	case surface.KindEmpty:
		return m.placeholder(c.Text, bgColor)
	case surface.KindError:
		return bg.Render(c.Text, styles.DangerText)
	case surface.KindText:
		return bg.Render(c.Text, styles.MutedText)
	case surface.KindList:
		lines := make([]string, len(c.Entries))
		for i, e := range c.Entries {
			marker, label := bg.Render(zoneMarker, styles.FaintText), bg.Render(e.Label, styles.Text)
			if e.Highlight {
				marker, label = bg.Render(hubMarker, styles.HubText), bg.Render(e.Label, styles.HubText)
			}
			lines[i] = marker + bg.Space() + label + bg.Space() + bg.Render(e.Detail, styles.MutedText)
		}
		return strings.Join(lines, "\n")
	case surface.KindTable:
		return m.renderGrid(c.Grid, width, bgColor)
	default:
		return ""
	}
}

// placeholder renders the canonical empty state.
func (m Model) placeholder(message string, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	if message == "" {
		message = surface.EmptyMessage
	}
	return bg.Render(surface.EmptyIcon, styles.FaintText) + bg.Space() + bg.Render(message, styles.MutedText)
}

// renderGrid draws a populated table. Cells whose renderer failed use the
// danger color; gains use the gain color.
func (m Model) renderGrid(g surface.Grid, width int, bgColor string) string {
	bgc := lipgloss.Color(bgColor)
	header := lipgloss.NewStyle().
		Background(bgc).
		Foreground(lipgloss.Color(m.theme.Accent)).
		Bold(true).
		Padding(0, 1)
	cell := lipgloss.NewStyle().
		Background(bgc).
		Foreground(lipgloss.Color(m.theme.Text)).
		Padding(0, 1)
	danger := cell.Foreground(lipgloss.Color(m.theme.Danger)).Bold(true)
	gain := cell.Foreground(lipgloss.Color(m.theme.Gain))

	rows := make([][]string, len(g.Rows))
	for i, row := range g.Rows {
		rows[i] = make([]string, len(row))
		for j, c := range row {
			rows[i][j] = c.Text
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.BorderMuted)).Background(bgc)).
		Headers(g.Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if row < 0 || row >= len(g.Rows) || col >= len(g.Rows[row]) {
				return cell
			}
			c := g.Rows[row][col]
			switch {
			case c.Err:
				return danger
			case strings.HasPrefix(c.Text, "+"):
				return gain
			}
			return cell
		})
	return clipLines(t.Render(), width)
}

// renderTitledBox renders content in a box with the title embedded in the top border.
// Frame style: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int) string {
	borderColorStr, bgColorStr := m.theme.Border, m.theme.SurfaceAlt
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(0, width-2)
	title = truncate(title, max(0, innerWidth-4))
	titleLen := lipgloss.Width(title)
	leftPad := max(0, (innerWidth-titleLen-2)/2)
	rightPad := max(0, innerWidth-titleLen-2-leftPad)

	top := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)
	bottom := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).Background(lipgloss.Color(bgColorStr))
	lines := strings.Split(content, "\n")
	body := make([]string, 0, max(0, height-2))
	for i := 0; i < height-2; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		body = append(body,
			bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}
	return top + "\n" + strings.Join(body, "\n") + "\n" + bottom
}
