package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThemeNames(t *testing.T) {
	assert.Equal(t, []string{"Nightfox", "Kanagawa", "Slate"}, ThemeNames())
}

func TestNextTheme(t *testing.T) {
	assert.Equal(t, "Kanagawa", NextTheme("Nightfox"))
	assert.Equal(t, "Slate", NextTheme("Kanagawa"))
	assert.Equal(t, "Nightfox", NextTheme("Slate"))
	assert.Equal(t, "Nightfox", NextTheme("Unknown"))
}

func TestGetTheme(t *testing.T) {
	assert.Equal(t, "Slate", GetTheme("Slate").Name)
	assert.Equal(t, "Nightfox", GetTheme("Dracula").Name, "unknown names fall back")
}

func TestThemesDefineMarketColors(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for field, value := range map[string]string{
			"Gain":      th.Gain,
			"Hub":       th.Hub,
			"PriceLine": th.PriceLine,
			"MinLine":   th.MinLine,
			"VolumeBar": th.VolumeBar,
		} {
			assert.NotEmpty(t, value, "%s.%s", name, field)
		}
		assert.Len(t, th.ChartStyles().Series, 1, name)
	}
}
