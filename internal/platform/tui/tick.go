// Package tui provides the Bubble Tea integration for the raycaster.
// It handles the terminal UI loop, input mapping, menus, run history screens,
// and serving sessions over SSH via Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// tickInterval converts ticks per second to a duration, clamped to 1..240 Hz.
func tickInterval(tickRate int) time.Duration {
	tickRate = max(1, min(tickRate, 240))
	return time.Second / time.Duration(tickRate)
}
