package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteEventRepository implements EventRepository for SQLite.
type SQLiteEventRepository struct {
	db *sql.DB
}

func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

func (r *SQLiteEventRepository) Append(ctx context.Context, event GameEvent) error {
	query := `
		INSERT INTO events (id, timestamp, event_type, severity, message, payload)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Timestamp, event.EventType, event.Severity, event.Message, event.Payload,
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepository) GetRecent(ctx context.Context, n int) ([]GameEvent, error) {
	query := `SELECT id, timestamp, event_type, severity, message, payload FROM events ORDER BY timestamp DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []GameEvent
	for rows.Next() {
		var e GameEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.EventType, &e.Severity, &e.Message, &e.Payload); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ---------------------------------------------------------
// SQLiteScoreRepository
// ---------------------------------------------------------

// SQLiteScoreRepository implements ScoreRepository for SQLite.
type SQLiteScoreRepository struct {
	db *sql.DB
}

func NewSQLiteScoreRepository(db *sql.DB) *SQLiteScoreRepository {
	return &SQLiteScoreRepository{db: db}
}

func (r *SQLiteScoreRepository) Insert(ctx context.Context, rec ScoreRecord) error {
	query := `INSERT INTO scores (name, score, popularity, ended_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, rec.Name, rec.Score, rec.Popularity, rec.EndedAt); err != nil {
		return fmt.Errorf("failed to insert score: %w", err)
	}

	// Keep only the best LeaderboardSize runs.
	prune := `
		DELETE FROM scores WHERE id NOT IN (
			SELECT id FROM scores ORDER BY score DESC, ended_at ASC LIMIT ?
		)
	`
	if _, err := r.db.ExecContext(ctx, prune, LeaderboardSize); err != nil {
		return fmt.Errorf("failed to prune leaderboard: %w", err)
	}
	return nil
}

func (r *SQLiteScoreRepository) Top(ctx context.Context) ([]ScoreRecord, error) {
	query := `SELECT name, score, popularity, ended_at FROM scores ORDER BY score DESC, ended_at ASC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, LeaderboardSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []ScoreRecord
	for rows.Next() {
		var rec ScoreRecord
		if err := rows.Scan(&rec.Name, &rec.Score, &rec.Popularity, &rec.EndedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *SQLiteScoreRepository) HighScore(ctx context.Context) (int, error) {
	var best sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT MAX(score) FROM scores`).Scan(&best)
	if err != nil {
		return 0, err
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}
