package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Display forwards engine display calls into the running bubbletea program
// as messages. It is safe to call from any goroutine.
type Display struct {
	send func(tea.Msg)
}

// NewDisplay wraps a program's Send.
func NewDisplay(p *tea.Program) *Display {
	return &Display{send: p.Send}
}

// SetCountdown implements display.Display.
func (d *Display) SetCountdown(remaining time.Duration, warning bool) {
	d.send(countdownMsg{remaining: remaining, warning: warning})
}

// SetElapsed implements display.Display.
func (d *Display) SetElapsed(elapsed time.Duration) {
	d.send(elapsedMsg(elapsed))
}

// SetFreeze implements display.Display.
func (d *Display) SetFreeze(player int, remaining time.Duration) {
	d.send(freezeMsg{player: player, remaining: remaining})
}

// SetScore implements display.Display.
func (d *Display) SetScore(player, score int) {
	d.send(scoreMsg{player: player, score: score})
}

// AnnounceWinners implements display.Display.
func (d *Display) AnnounceWinners(players []int) {
	d.send(winnersMsg(append([]int(nil), players...)))
}
