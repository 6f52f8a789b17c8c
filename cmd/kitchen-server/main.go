// Package main is the entry point for the Kitchen Master game server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/ywchen/kitchen-master/server/internal/config"
	"github.com/ywchen/kitchen-master/server/internal/domain/catalog"
	"github.com/ywchen/kitchen-master/server/internal/engine"
	"github.com/ywchen/kitchen-master/server/internal/events"
	"github.com/ywchen/kitchen-master/server/internal/infra/storage"
	"github.com/ywchen/kitchen-master/server/internal/network"
	"github.com/ywchen/kitchen-master/server/internal/platform/logger"
	"github.com/ywchen/kitchen-master/server/internal/platform/metrics"
)

// SQLitePersisterAdapter translates domain events to storage events.
type SQLitePersisterAdapter struct {
	repo *storage.SQLiteEventRepository
}

func (a *SQLitePersisterAdapter) Append(event events.GameEvent) error {
	var payload string
	if event.Payload != nil {
		b, _ := json.Marshal(event.Payload)
		payload = string(b)
	}

	start := time.Now()
	err := a.repo.Append(context.Background(), storage.GameEvent{
		ID:        event.ID,
		Timestamp: event.Timestamp,
		EventType: string(event.Type),
		Severity:  string(event.Severity),
		Message:   event.Message,
		Payload:   payload,
	})
	metrics.Get().RecordEventWrite(time.Since(start), err)
	return err
}

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "kitchen-server",
		Short: "Kitchen Master authoritative game server",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (defaults to ./config.yaml if present)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	log.Println("[KITCHEN-SERVER] Initializing 'Kitchen Master' Authoritative Server...")

	appLogger := logger.NewLogger()

	if err := catalog.Validate(); err != nil {
		return fmt.Errorf("catalog validation failed: %w", err)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	appLogger.Info("Initializing SQLite database %q...", cfg.Server.DBPath)
	db, err := storage.InitSQLite(cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("init sqlite: %w", err)
	}
	defer db.Close()

	eventRepo := storage.NewSQLiteEventRepository(db)
	scoreRepo := storage.NewSQLiteScoreRepository(db)
	eventPersister := &SQLitePersisterAdapter{repo: eventRepo}

	appLogger.Info("Bootstrapping EventLog...")
	eventLog := events.NewEventLog(eventPersister)

	appLogger.Info("Bootstrapping Engine Subsystems...")
	spawner := engine.NewSpawner(cfg.Game.Seed)
	gameEngine := engine.NewEngine(spawner, eventLog, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticker := engine.NewTicker(gameEngine, appLogger)
	go ticker.Start(ctx)

	// Record a leaderboard entry the moment a run finishes.
	go watchGameOver(ctx, gameEngine, scoreRepo, cfg.Game.PlayerName, appLogger)

	appLogger.Info("Bootstrapping WebSocket Hub...")
	hub := network.NewHub(gameEngine, appLogger)
	go hub.Run(ctx)
	hub.StartEventPoller(ctx, eventLog)
	hub.StartSnapshotPoller(ctx)

	mux := http.NewServeMux()

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r, appLogger)
	})

	mux.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(gameEngine.Snapshot())
	})

	mux.HandleFunc("/api/action", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var action network.PlayerAction
		if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		state, err := network.Dispatch(gameEngine, action)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"status": "rejected", "error": err.Error()})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "state": state})
	})

	mux.HandleFunc("/api/events", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		recent, err := eventRepo.GetRecent(r.Context(), 50)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(recent)
	})

	mux.HandleFunc("/api/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		top, err := scoreRepo.Top(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		high, err := scoreRepo.HighScore(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"high_score": high,
			"scores":     top,
		})
	})

	mux.HandleFunc("/metrics", metrics.Handler())
	mux.HandleFunc("/metrics/prometheus", metrics.PrometheusHandler())

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: mux}
	go func() {
		log.Printf("[KITCHEN-SERVER] HTTP API & WS Server listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Println("[KITCHEN-SERVER] Server running. Press Ctrl+C to exit.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[KITCHEN-SERVER] Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

// watchGameOver persists a ScoreRecord once per run when the clock runs out
// or the restaurant's reputation collapses.
func watchGameOver(ctx context.Context, eng *engine.Engine, scores *storage.SQLiteScoreRepository, playerName string, appLogger *logger.Logger) {
	watch := time.NewTicker(engine.TickRate)
	defer watch.Stop()

	wasPlaying := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-watch.C:
			state := eng.Snapshot()
			switch state.Status {
			case engine.StatusPlaying:
				wasPlaying = true
			case engine.StatusEnded:
				if !wasPlaying {
					continue
				}
				wasPlaying = false
				rec := storage.ScoreRecord{
					Name:       playerName,
					Score:      state.Money,
					Popularity: state.Popularity,
					EndedAt:    time.Now(),
				}
				if err := scores.Insert(ctx, rec); err != nil {
					appLogger.Error("Failed to record final score: %v", err)
					continue
				}
				appLogger.Info("Run finished: %s scored $%d (popularity %d)", playerName, state.Money, state.Popularity)
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow cross-origin requests for the web client dev server
	},
}

// serveWs handles websocket requests from the peer.
func serveWs(hub *network.Hub, w http.ResponseWriter, r *http.Request, log *logger.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Failed to upgrade websocket connection: %v", err)
		return
	}

	client := network.NewClient(hub, conn)
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}
