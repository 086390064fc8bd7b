// Package event provides a pub-sub event bus for decoupled communication
// between the dealer, the players, and the display layers.
//
// Components publish game lifecycle events without knowing who will receive
// them; the TUI and the logging observer subscribe without knowing who
// produces them. Dispatch is synchronous and ordered: specific subscribers
// first, wildcard subscribers second, each in registration order.
package event
