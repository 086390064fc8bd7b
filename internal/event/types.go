package event

import "time"

// Event type identifiers, "category.action" by convention.
const (
	TypeGameStarted    = "game.started"
	TypeRoundStarted   = "round.started"
	TypeRoundEnded     = "round.ended"
	TypeClaimAwarded   = "claim.awarded"
	TypeClaimPenalized = "claim.penalized"
	TypeScoreChanged   = "score.changed"
	TypePlayerFrozen   = "player.frozen"
	TypeGameFinished   = "game.finished"
)

// Event is the interface all events implement.
type Event interface {
	// EventType returns the event's type identifier.
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides the common fields. Embed it in concrete event types.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{eventType: eventType, timestamp: time.Now()}
}

// GameStartedEvent is emitted once when the dealer loop begins.
type GameStartedEvent struct {
	baseEvent
	GameID  string // unique id for this run
	Players int    // number of participants
}

// NewGameStartedEvent creates a GameStartedEvent.
func NewGameStartedEvent(gameID string, players int) GameStartedEvent {
	return GameStartedEvent{
		baseEvent: newBaseEvent(TypeGameStarted),
		GameID:    gameID,
		Players:   players,
	}
}

// RoundStartedEvent is emitted after the deck is shuffled and cards dealt.
type RoundStartedEvent struct {
	baseEvent
	Round        int // 1-based round counter
	CardsOnTable int
}

// NewRoundStartedEvent creates a RoundStartedEvent.
func NewRoundStartedEvent(round, cardsOnTable int) RoundStartedEvent {
	return RoundStartedEvent{
		baseEvent:    newBaseEvent(TypeRoundStarted),
		Round:        round,
		CardsOnTable: cardsOnTable,
	}
}

// RoundEndedEvent is emitted after the table is cleared back into the deck.
type RoundEndedEvent struct {
	baseEvent
	Round int
}

// NewRoundEndedEvent creates a RoundEndedEvent.
func NewRoundEndedEvent(round int) RoundEndedEvent {
	return RoundEndedEvent{baseEvent: newBaseEvent(TypeRoundEnded), Round: round}
}

// ClaimAwardedEvent is emitted when a claim is judged legal. The named slots
// are queued for removal; the board mutation happens on the dealer's next
// maintenance pass.
type ClaimAwardedEvent struct {
	baseEvent
	Player int
	Slots  []int // slots whose cards formed the combination
}

// NewClaimAwardedEvent creates a ClaimAwardedEvent.
func NewClaimAwardedEvent(player int, slots []int) ClaimAwardedEvent {
	return ClaimAwardedEvent{
		baseEvent: newBaseEvent(TypeClaimAwarded),
		Player:    player,
		Slots:     slots,
	}
}

// ClaimPenalizedEvent is emitted when a claim is judged illegal.
type ClaimPenalizedEvent struct {
	baseEvent
	Player int
}

// NewClaimPenalizedEvent creates a ClaimPenalizedEvent.
func NewClaimPenalizedEvent(player int) ClaimPenalizedEvent {
	return ClaimPenalizedEvent{baseEvent: newBaseEvent(TypeClaimPenalized), Player: player}
}

// ScoreChangedEvent is emitted when a player's score changes.
type ScoreChangedEvent struct {
	baseEvent
	Player int
	Score  int
}

// NewScoreChangedEvent creates a ScoreChangedEvent.
func NewScoreChangedEvent(player, score int) ScoreChangedEvent {
	return ScoreChangedEvent{
		baseEvent: newBaseEvent(TypeScoreChanged),
		Player:    player,
		Score:     score,
	}
}

// PlayerFrozenEvent is emitted when a player enters the frozen state.
type PlayerFrozenEvent struct {
	baseEvent
	Player   int
	Duration time.Duration
}

// NewPlayerFrozenEvent creates a PlayerFrozenEvent.
func NewPlayerFrozenEvent(player int, duration time.Duration) PlayerFrozenEvent {
	return PlayerFrozenEvent{
		baseEvent: newBaseEvent(TypePlayerFrozen),
		Player:    player,
		Duration:  duration,
	}
}

// GameFinishedEvent is emitted after the winners are computed.
type GameFinishedEvent struct {
	baseEvent
	Winners []int // ascending player ids sharing the top score
}

// NewGameFinishedEvent creates a GameFinishedEvent.
func NewGameFinishedEvent(winners []int) GameFinishedEvent {
	return GameFinishedEvent{baseEvent: newBaseEvent(TypeGameFinished), Winners: winners}
}
