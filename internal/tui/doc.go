// Package tui is the bubbletea front end: it renders the table grid, the
// per-player scores and freeze countdowns, and the round timer, and maps
// keyboard rows to table slots for the human players.
package tui
