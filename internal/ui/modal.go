package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// alertModal is a blocking message with a single dismiss action.
type alertModal struct {
	title   string
	message string
	failed  bool
}

func newAlert(title, message string, failed bool) alertModal {
	return alertModal{title: title, message: message, failed: failed}
}

func (a alertModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Confirm) {
			return a, nil, true
		}
		if key.Matches(msg, keys.Quit) && msg.String() == "ctrl+c" {
			return a, tea.Quit, true
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return a, nil, true
		}
	}
	return a, nil, false
}

func (a alertModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	accent := theme.Success
	titleStyle := styles.SuccessText
	if a.failed {
		accent = theme.Danger
		titleStyle = styles.DangerText
	}

	boxWidth := min(60, max(24, width-4))

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.title))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Width(boxWidth - 6).Render(a.message))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("enter: dismiss"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(accent)).
		Padding(1, 2).
		Width(boxWidth).
		Render(b.String())

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
