// Package arbiter serializes claim evaluation so at most one claim decision
// is in flight system-wide.
//
// The single-flight gate is a one-permit channel. A claiming player takes
// the permit, has its tokens judged, and the permit's return depends on the
// outcome: an illegal or stale claim returns it immediately, while an
// awarded claim keeps it held until the dealer's next maintenance pass has
// removed the awarded slots from the table. That makes the board mutation
// for an award atomic with respect to every other claim attempt: no second
// claim can be judged against slots that are already spoken for.
package arbiter
