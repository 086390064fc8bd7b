package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kestrelworks/trio/internal/game"
)

// Run plays one match behind the terminal UI. It attaches the display to
// the game, starts it, and blocks until the user quits or ctx is
// cancelled. When the match ends on its own the winners banner stays up
// until the user exits.
func Run(ctx context.Context, g *game.Game) error {
	p := tea.NewProgram(NewModel(g), tea.WithAltScreen(), tea.WithContext(ctx))
	g.SetDisplay(NewDisplay(p))

	if err := g.Start(ctx); err != nil {
		return err
	}
	_, err := p.Run()
	g.Stop()
	return err
}
