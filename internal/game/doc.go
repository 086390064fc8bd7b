// Package game wires the engine together for a single match: the table,
// the combination rules, the claim arbiter, the player goroutines, and the
// dealer. It owns their shared lifecycle; callers start a Game, feed it
// keyboard input, and wait for the winner set.
package game
