// Package engine contains the tick-driven game-state machine. This is the
// heartbeat of Kitchen Master.
//
// ARCHITECTURAL RULE: the root GameState is owned exclusively by the Engine.
// Every mutation - player action or tick - runs as one atomic step under the
// engine's lock, and the outside world only ever sees deep-copy snapshots.
package engine

import (
	"fmt"
	"sync"

	"github.com/ywchen/kitchen-master/server/internal/events"
	"github.com/ywchen/kitchen-master/server/internal/platform/logger"
	"github.com/ywchen/kitchen-master/server/internal/platform/metrics"
)

// Engine owns the authoritative game state and exposes the action API plus
// read-only snapshots. Actions and ticks serialize on the same mutex, so
// they behave as if applied in invocation order.
type Engine struct {
	mu       sync.Mutex
	state    GameState
	spawner  *Spawner
	eventLog *events.EventLog
	logger   *logger.Logger
}

// NewEngine creates an engine in the idle state. The spawner carries the
// injected randomness; pass a seeded one in tests for determinism.
func NewEngine(spawner *Spawner, eventLog *events.EventLog, log *logger.Logger) *Engine {
	return &Engine{
		state:    NewGameState(),
		spawner:  spawner,
		eventLog: eventLog,
		logger:   log,
	}
}

// Snapshot returns a deep copy of the current state, safe to hand to the
// UI and audio collaborators.
func (e *Engine) Snapshot() GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// emit appends a notification event and mirrors it to the server log.
func (e *Engine) emit(t events.EventType, sev events.Severity, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	e.eventLog.Append(events.GameEvent{Type: t, Severity: sev, Message: msg})
	e.logger.Event(string(t), msg)
}

// reject records a rejected action and returns its sentinel unchanged.
func (e *Engine) reject(action string, err error) error {
	metrics.Get().RecordAction(false)
	e.logger.Warn("%s rejected: %v", action, err)
	return err
}

// accept records an accepted action.
func (e *Engine) accept() {
	metrics.Get().RecordAction(true)
}

// guardMutable enforces the shared preconditions of every mutating action:
// a run must be in progress and not paused. Pause is a hard stop on all
// state evolution except TogglePause itself.
func (e *Engine) guardMutable() error {
	if e.state.Status != StatusPlaying {
		return ErrNotPlaying
	}
	if e.state.Paused {
		return ErrActionWhilePaused
	}
	return nil
}
