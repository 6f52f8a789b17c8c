// Package storage provides the persistence layer for the game server.
// This package implements the repository pattern to keep the domain pure.
package storage

import (
	"context"
	"time"
)

// GameEvent mirrors the domain event structure for persistence.
// The domain package should NOT import this; use interfaces instead.
type GameEvent struct {
	ID        string    `json:"id" db:"id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	EventType string    `json:"event_type" db:"event_type"`
	Severity  string    `json:"severity" db:"severity"`
	Message   string    `json:"message" db:"message"`
	Payload   string    `json:"payload" db:"payload"` // JSON blob, may be empty
}

// EventRepository defines the interface for event persistence.
type EventRepository interface {
	// Append adds a new event to the trail.
	Append(ctx context.Context, event GameEvent) error

	// GetRecent retrieves the latest n events, newest first.
	GetRecent(ctx context.Context, n int) ([]GameEvent, error)
}

// ScoreRecord is one finished run on the leaderboard.
type ScoreRecord struct {
	Name       string    `json:"name" db:"name"`
	Score      int       `json:"score" db:"score"` // final money total
	Popularity int       `json:"popularity" db:"popularity"`
	EndedAt    time.Time `json:"ended_at" db:"ended_at"`
}

// LeaderboardSize caps how many runs the board keeps.
const LeaderboardSize = 6

// ScoreRepository defines the interface for the high-score leaderboard.
type ScoreRepository interface {
	// Insert records a finished run and prunes the board to its cap.
	Insert(ctx context.Context, rec ScoreRecord) error

	// Top returns the board sorted by score descending.
	Top(ctx context.Context) ([]ScoreRecord, error)

	// HighScore returns the best score ever recorded, 0 if none.
	HighScore(ctx context.Context) (int, error)
}
