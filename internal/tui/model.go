package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kestrelworks/trio/internal/dealer"
	"github.com/kestrelworks/trio/internal/game"
)

// gridColumns is how many slots render per board row.
const gridColumns = 4

// refreshInterval paces board redraws between display updates, so card
// removals show promptly even when no timer is ticking.
const refreshInterval = 250 * time.Millisecond

// Messages sent by the Display adapter.
type (
	countdownMsg struct {
		remaining time.Duration
		warning   bool
	}
	elapsedMsg time.Duration
	freezeMsg  struct {
		player    int
		remaining time.Duration
	}
	scoreMsg struct {
		player int
		score  int
	}
	winnersMsg []int
	refreshMsg struct{}
)

// Model is the bubbletea model for one match.
type Model struct {
	game     *game.Game
	keys     keyMap
	slotKeys map[string]slotKey
	help     help.Model

	attributes int
	mode       dealer.Mode
	width      int
	height     int
	showHelp   bool

	countdown time.Duration
	warning   bool
	elapsed   time.Duration
	freezes   map[int]time.Duration
	scores    []int
	winners   []int
	finished  bool
}

// NewModel builds the model for a constructed game.
func NewModel(g *game.Game) Model {
	cfg := g.Config()

	// Number of attribute digits in a card label.
	attributes := 0
	for n := 1; n < cfg.Game.DeckSize; n *= cfg.Game.FeatureSize {
		attributes++
	}

	return Model{
		game:       g,
		keys:       defaultKeyMap(),
		slotKeys:   buildSlotKeys(cfg.Players.Human, cfg.Game.TableSize),
		help:       help.New(),
		attributes: attributes,
		mode:       g.Mode(),
		countdown:  cfg.Game.TurnTimeout(),
		freezes:    make(map[int]time.Duration),
		scores:     make([]int, g.PlayerCount()),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.refreshTick()
}

func (m Model) refreshTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case msg.String() == "ctrl+c" || msg.String() == "esc":
			return m, tea.Quit
		case msg.String() == "?":
			m.showHelp = !m.showHelp
		default:
			if sk, ok := m.slotKeys[msg.String()]; ok && !m.finished {
				m.game.KeyPressed(sk.player, sk.slot)
			}
		}

	case countdownMsg:
		m.countdown = msg.remaining
		m.warning = msg.warning

	case elapsedMsg:
		m.elapsed = time.Duration(msg)

	case freezeMsg:
		if msg.remaining <= 0 {
			delete(m.freezes, msg.player)
		} else {
			m.freezes[msg.player] = msg.remaining
		}

	case scoreMsg:
		if msg.player >= 0 && msg.player < len(m.scores) {
			m.scores[msg.player] = msg.score
		}

	case winnersMsg:
		m.winners = []int(msg)
		m.finished = true

	case refreshMsg:
		return m, m.refreshTick()
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("trio"))
	b.WriteString("\n")
	b.WriteString(m.renderBoard())
	b.WriteString("\n")
	if timer := m.renderTimer(); timer != "" {
		b.WriteString(timer)
		b.WriteString("\n")
	}
	b.WriteString(m.renderPlayers())

	if m.finished {
		b.WriteString("\n")
		b.WriteString(winnersStyle.Render(m.renderWinners()))
	}

	b.WriteString("\n")
	m.help.ShowAll = m.showHelp
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderBoard draws the table as a grid of card cells. The first human's
// key hints print inside the cells, and that player's tokens highlight the
// border.
func (m Model) renderBoard() string {
	snapshot := m.game.Table().Snapshot()

	var rows []string
	for start := 0; start < len(snapshot); start += gridColumns {
		var cells []string
		for slot := start; slot < len(snapshot) && slot < start+gridColumns; slot++ {
			cells = append(cells, m.renderCell(slot, snapshot[slot].Card, snapshot[slot].Tokens))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(slot, card int, tokens []int) string {
	hint := " "
	if slot < len(playerRows[0]) {
		hint = string(playerRows[0][slot])
	}

	if card < 0 {
		return emptySlotStyle.Render(fmt.Sprintf("%s %s", hint, strings.Repeat("·", m.attributes)))
	}

	marks := ""
	mine := false
	for _, p := range tokens {
		if p == 0 {
			mine = true
		}
		marks += fmt.Sprintf(" •%d", p)
	}
	label := fmt.Sprintf("%s %s%s", keyHintStyle.Render(hint), m.cardLabel(card), marks)
	if mine {
		return tokenedCardStyle.Render(label)
	}
	return cardStyle.Render(label)
}

// cardLabel renders a card id as its attribute digits, most significant
// first, zero padded to the attribute count.
func (m Model) cardLabel(card int) string {
	base := m.game.Config().Game.FeatureSize
	digits := make([]byte, m.attributes)
	for i := m.attributes - 1; i >= 0; i-- {
		digits[i] = byte('0' + card%base)
		card /= base
	}
	return string(digits)
}

func (m Model) renderTimer() string {
	switch m.mode {
	case dealer.ModeCountdown:
		text := fmt.Sprintf("time  %s", formatClock(m.countdown))
		if m.warning {
			return timerWarningStyle.Render(text)
		}
		return timerStyle.Render(text)
	case dealer.ModeCountup:
		return timerStyle.Render(fmt.Sprintf("time  %s", formatClock(m.elapsed)))
	default:
		return ""
	}
}

func (m Model) renderPlayers() string {
	var lines []string
	for id, score := range m.scores {
		line := scoreStyle.Render(fmt.Sprintf("player %d  score %d", id, score))
		if remaining, ok := m.freezes[id]; ok {
			line += "  " + frozenStyle.Render(fmt.Sprintf("frozen %s", formatClock(remaining)))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderWinners() string {
	if len(m.winners) == 1 {
		return fmt.Sprintf("player %d wins!", m.winners[0])
	}
	parts := make([]string, len(m.winners))
	for i, id := range m.winners {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("players %s tie!", strings.Join(parts, ", "))
}

// formatClock renders a duration as m:ss, rounding up so the readout only
// shows 0:00 once the time is truly spent.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
