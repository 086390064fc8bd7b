// Package logging provides structured logging for game runs. It wraps
// log/slog to emit JSON log lines, with child loggers that carry the game id
// and player id so every goroutine's lifecycle is attributable.
package logging
