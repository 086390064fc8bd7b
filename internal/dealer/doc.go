// Package dealer runs the round and game lifecycle: shuffling and dealing,
// driving the per-round timer loop, draining awarded slots off the table,
// refilling from the deck, and announcing the winners.
//
// The timer mode is fixed for the whole game by the configured turn timeout:
// positive runs a countdown to a per-round deadline, zero counts elapsed
// time up while a legal combination remains on the table, negative shows no
// timer and sleeps until an awarded claim wakes the dealer. In every mode an
// award interrupts the current sleep so the board updates without waiting
// for the next tick.
package dealer
