package engine

import (
	"context"
	"time"

	"github.com/ywchen/kitchen-master/server/internal/platform/logger"
	"github.com/ywchen/kitchen-master/server/internal/platform/metrics"
)

// TickRate is the wall-clock period of the game heartbeat: every in-game
// countdown is denominated in these one-second steps.
const TickRate = 1 * time.Second

// Ticker drives the engine's Tick at a fixed rate. It knows nothing about
// orders or stoves - only time progression.
type Ticker struct {
	engine   *Engine
	logger   *logger.Logger
	stopChan chan struct{}
}

// NewTicker creates a ticker bound to an engine.
func NewTicker(e *Engine, log *logger.Logger) *Ticker {
	return &Ticker{
		engine:   e,
		logger:   log,
		stopChan: make(chan struct{}),
	}
}

// Start begins the heartbeat. Call in a goroutine.
func (t *Ticker) Start(ctx context.Context) {
	t.logger.Info("Game ticker started (%v per tick)", TickRate)

	ticker := time.NewTicker(TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("Game ticker stopped by context")
			return
		case <-t.stopChan:
			t.logger.Info("Game ticker stopped manually")
			return
		case <-ticker.C:
			start := time.Now()
			t.engine.Tick()
			metrics.Get().RecordTick(time.Since(start))
		}
	}
}

// Stop gracefully stops the ticker.
func (t *Ticker) Stop() {
	close(t.stopChan)
}
