// Package metrics provides observability for the game server.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers performance and gameplay counters.
type Collector struct {
	// Tick metrics
	TickCount      int64
	TickLatencySum int64 // nanoseconds
	TickLatencyMax int64
	LastTickTime   time.Time

	// Action metrics
	ActionsAccepted int64
	ActionsRejected int64

	// Order metrics
	OrdersServed  int64
	OrdersExpired int64

	// Event persistence metrics
	EventsWritten    int64
	EventWriteLatSum int64
	EventWriteLatMax int64
	EventWriteErrors int64

	// WebSocket metrics
	WSConnectionsActive int64
	WSMessagesIn        int64
	WSMessagesOut       int64
	WSErrors            int64

	StartTime time.Time
	mu        sync.RWMutex
}

// Global collector instance
var collector = &Collector{
	StartTime: time.Now(),
}

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// RecordTick records a tick cycle completion.
func (c *Collector) RecordTick(latency time.Duration) {
	atomic.AddInt64(&c.TickCount, 1)
	atomic.AddInt64(&c.TickLatencySum, int64(latency))

	// Update max (non-atomic but acceptable for metrics)
	if int64(latency) > atomic.LoadInt64(&c.TickLatencyMax) {
		atomic.StoreInt64(&c.TickLatencyMax, int64(latency))
	}

	c.mu.Lock()
	c.LastTickTime = time.Now()
	c.mu.Unlock()
}

// RecordAction records the outcome of a player action.
func (c *Collector) RecordAction(accepted bool) {
	if accepted {
		atomic.AddInt64(&c.ActionsAccepted, 1)
	} else {
		atomic.AddInt64(&c.ActionsRejected, 1)
	}
}

// RecordOrderServed records a fulfilled order.
func (c *Collector) RecordOrderServed() {
	atomic.AddInt64(&c.OrdersServed, 1)
}

// RecordOrderExpired records a walked-out customer.
func (c *Collector) RecordOrderExpired() {
	atomic.AddInt64(&c.OrdersExpired, 1)
}

// RecordEventWrite records an event write to the database.
func (c *Collector) RecordEventWrite(latency time.Duration, err error) {
	atomic.AddInt64(&c.EventsWritten, 1)
	atomic.AddInt64(&c.EventWriteLatSum, int64(latency))

	if int64(latency) > atomic.LoadInt64(&c.EventWriteLatMax) {
		atomic.StoreInt64(&c.EventWriteLatMax, int64(latency))
	}

	if err != nil {
		atomic.AddInt64(&c.EventWriteErrors, 1)
	}
}

// RecordWSConnection records WebSocket connection changes.
func (c *Collector) RecordWSConnection(delta int64) {
	atomic.AddInt64(&c.WSConnectionsActive, delta)
}

// RecordWSMessage records WebSocket messages.
func (c *Collector) RecordWSMessage(incoming bool) {
	if incoming {
		atomic.AddInt64(&c.WSMessagesIn, 1)
	} else {
		atomic.AddInt64(&c.WSMessagesOut, 1)
	}
}

// RecordWSError records a WebSocket error.
func (c *Collector) RecordWSError() {
	atomic.AddInt64(&c.WSErrors, 1)
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tickCount := atomic.LoadInt64(&c.TickCount)
	eventsWritten := atomic.LoadInt64(&c.EventsWritten)

	var tickAvg, eventAvg float64
	if tickCount > 0 {
		tickAvg = float64(atomic.LoadInt64(&c.TickLatencySum)) / float64(tickCount) / 1e6 // ms
	}
	if eventsWritten > 0 {
		eventAvg = float64(atomic.LoadInt64(&c.EventWriteLatSum)) / float64(eventsWritten) / 1e6
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"tick": map[string]interface{}{
			"count":          tickCount,
			"avg_latency_ms": tickAvg,
			"max_latency_ms": float64(atomic.LoadInt64(&c.TickLatencyMax)) / 1e6,
			"last_tick":      c.LastTickTime.Format(time.RFC3339),
		},

		"actions": map[string]interface{}{
			"accepted": atomic.LoadInt64(&c.ActionsAccepted),
			"rejected": atomic.LoadInt64(&c.ActionsRejected),
		},

		"orders": map[string]interface{}{
			"served":  atomic.LoadInt64(&c.OrdersServed),
			"expired": atomic.LoadInt64(&c.OrdersExpired),
		},

		"events": map[string]interface{}{
			"written":          eventsWritten,
			"avg_write_lat_ms": eventAvg,
			"max_write_lat_ms": float64(atomic.LoadInt64(&c.EventWriteLatMax)) / 1e6,
			"errors":           atomic.LoadInt64(&c.EventWriteErrors),
		},

		"websocket": map[string]interface{}{
			"active_connections": atomic.LoadInt64(&c.WSConnectionsActive),
			"messages_in":        atomic.LoadInt64(&c.WSMessagesIn),
			"messages_out":       atomic.LoadInt64(&c.WSMessagesOut),
			"errors":             atomic.LoadInt64(&c.WSErrors),
		},
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")

		snapshot := collector.Snapshot()
		json.NewEncoder(w).Encode(snapshot)
	}
}

// PrometheusHandler returns metrics in Prometheus format.
func PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		c := collector

		fmt.Fprintf(w, "# HELP kitchen_tick_count Total tick cycles\n")
		fmt.Fprintf(w, "# TYPE kitchen_tick_count counter\n")
		fmt.Fprintf(w, "kitchen_tick_count %d\n\n", atomic.LoadInt64(&c.TickCount))

		fmt.Fprintf(w, "# HELP kitchen_tick_latency_max_ms Maximum tick latency\n")
		fmt.Fprintf(w, "# TYPE kitchen_tick_latency_max_ms gauge\n")
		fmt.Fprintf(w, "kitchen_tick_latency_max_ms %.2f\n\n", float64(atomic.LoadInt64(&c.TickLatencyMax))/1e6)

		fmt.Fprintf(w, "# HELP kitchen_actions_total Player actions by outcome\n")
		fmt.Fprintf(w, "# TYPE kitchen_actions_total counter\n")
		fmt.Fprintf(w, "kitchen_actions_total{outcome=\"accepted\"} %d\n", atomic.LoadInt64(&c.ActionsAccepted))
		fmt.Fprintf(w, "kitchen_actions_total{outcome=\"rejected\"} %d\n\n", atomic.LoadInt64(&c.ActionsRejected))

		fmt.Fprintf(w, "# HELP kitchen_orders_total Orders by outcome\n")
		fmt.Fprintf(w, "# TYPE kitchen_orders_total counter\n")
		fmt.Fprintf(w, "kitchen_orders_total{outcome=\"served\"} %d\n", atomic.LoadInt64(&c.OrdersServed))
		fmt.Fprintf(w, "kitchen_orders_total{outcome=\"expired\"} %d\n\n", atomic.LoadInt64(&c.OrdersExpired))

		fmt.Fprintf(w, "# HELP kitchen_events_written Total events written\n")
		fmt.Fprintf(w, "# TYPE kitchen_events_written counter\n")
		fmt.Fprintf(w, "kitchen_events_written %d\n\n", atomic.LoadInt64(&c.EventsWritten))

		fmt.Fprintf(w, "# HELP kitchen_event_write_errors Total event write errors\n")
		fmt.Fprintf(w, "# TYPE kitchen_event_write_errors counter\n")
		fmt.Fprintf(w, "kitchen_event_write_errors %d\n\n", atomic.LoadInt64(&c.EventWriteErrors))

		fmt.Fprintf(w, "# HELP kitchen_ws_connections Active WebSocket connections\n")
		fmt.Fprintf(w, "# TYPE kitchen_ws_connections gauge\n")
		fmt.Fprintf(w, "kitchen_ws_connections %d\n\n", atomic.LoadInt64(&c.WSConnectionsActive))

		fmt.Fprintf(w, "# HELP kitchen_ws_messages_total Total WebSocket messages\n")
		fmt.Fprintf(w, "# TYPE kitchen_ws_messages_total counter\n")
		fmt.Fprintf(w, "kitchen_ws_messages_total{direction=\"in\"} %d\n", atomic.LoadInt64(&c.WSMessagesIn))
		fmt.Fprintf(w, "kitchen_ws_messages_total{direction=\"out\"} %d\n", atomic.LoadInt64(&c.WSMessagesOut))
	}
}
