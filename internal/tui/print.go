package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	ErrTextStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"})
	WarnTextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"})
)

func Print(msg string, ext ...any) {
	fmt.Println(TextStyle.Render(fmt.Sprintf(msg, ext...)))
}

// PrintErr and PrintWarn write to stderr so they never end up in piped output.
func PrintErr(msg string, ext ...any) {
	fmt.Fprintln(os.Stderr, ErrTextStyle.Render(fmt.Sprintf(msg, ext...)))
}

func PrintWarn(msg string, ext ...any) {
	fmt.Fprintln(os.Stderr, WarnTextStyle.Render(fmt.Sprintf(msg, ext...)))
}

