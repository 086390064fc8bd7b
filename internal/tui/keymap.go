package tui

import "github.com/charmbracelet/bubbles/key"

// slotKey is one keyboard binding resolved to a player and a table slot.
type slotKey struct {
	player int
	slot   int
}

// Keyboard rows for up to two human players, left-hand and right-hand
// blocks. Row-major: the first four keys cover slots 0..3, the next four
// 4..7, the last four 8..11.
var playerRows = [][]rune{
	{'q', 'w', 'e', 'r', 'a', 's', 'd', 'f', 'z', 'x', 'c', 'v'},
	{'u', 'i', 'o', 'p', 'j', 'k', 'l', ';', 'm', ',', '.', '/'},
}

// buildSlotKeys maps key runes to (player, slot) pairs for the given number
// of human players and table slots. Players beyond the available keyboard
// blocks get no bindings.
func buildSlotKeys(humans, tableSize int) map[string]slotKey {
	keys := make(map[string]slotKey)
	for player := 0; player < humans && player < len(playerRows); player++ {
		row := playerRows[player]
		for slot := 0; slot < tableSize && slot < len(row); slot++ {
			keys[string(row[slot])] = slotKey{player: player, slot: slot}
		}
	}
	return keys
}

// keyMap holds the non-slot bindings, in the shape bubbles/help expects.
type keyMap struct {
	Help key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Help, k.Quit}}
}
