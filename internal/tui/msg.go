package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameInterval paces redraws and the event queue, about 30 frames a second.
const FrameInterval = 33 * time.Millisecond

type frameMsg time.Time

func frame() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
