package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spotdemo4/matrix-terminal/internal/terminal"
)

var (
	BodyStyle = lipgloss.NewStyle().Padding(0, 1)

	TextStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#4c4f69", Dark: "#cdd6f4"})
	AltTextStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5c5f77", Dark: "#bac2de"})
	AccentTextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}).Bold(true)

	dotStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")),
	}
)

// colors is the per-theme scheme of the terminal window.
type colors struct {
	text   lipgloss.Color
	dim    lipgloss.Color
	border lipgloss.Color
	header lipgloss.Color
}

var themeColors = map[terminal.Theme]colors{
	terminal.ThemeMatrix: {text: "#4ade80", dim: "#166534", border: "#22c55e", header: "#14532d"},
	terminal.ThemeCyber:  {text: "#22d3ee", dim: "#155e75", border: "#06b6d4", header: "#1e3a8a"},
	terminal.ThemeHacker: {text: "#f87171", dim: "#7f1d1d", border: "#ef4444", header: "#27272a"},
}

func colorsFor(theme terminal.Theme) colors {
	if c, ok := themeColors[theme]; ok {
		return c
	}
	return themeColors[terminal.ThemeMatrix]
}

func (c colors) window() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.border)
}

func (c colors) bar() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(c.header).
		Foreground(c.text).
		Padding(0, 1)
}

func (c colors) line() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c.text)
}

func (c colors) faint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c.dim)
}
