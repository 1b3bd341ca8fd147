package rl

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrModelNotFound is returned when loading a model name that was never
// saved.
var ErrModelNotFound = errors.New("model not found in store")

// Store persists model weights and per-episode metrics in a single
// SQLite file. Weights are opaque payloads keyed by model name; the
// store never inspects them.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the store at path and applies the schema.
func OpenStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty store path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Single writer keeps the pure-Go driver happy under WAL.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		`CREATE TABLE IF NOT EXISTS models (
			name TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS episodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			episode INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			winner INTEGER NOT NULL,
			reward REAL NOT NULL,
			epsilon REAL NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("initializing store schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// SaveModel upserts the weight payload for a model name.
func (s *Store) SaveModel(ctx context.Context, name string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO models (name, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		name, payload, time.Now().UTC().Format(time.RFC3339))
	return err
}

// LoadModel returns the stored payload for a model name.
func (s *Store) LoadModel(ctx context.Context, name string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM models WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrModelNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// EpisodeStats summarizes one finished self-play episode.
type EpisodeStats struct {
	GameID  string
	Episode int
	Ticks   int
	Winner  int
	Reward  float32 // cumulative learner reward
	Epsilon float64
}

// RecordEpisode appends one episode row to the metrics table.
func (s *Store) RecordEpisode(ctx context.Context, stats EpisodeStats) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO episodes (game_id, episode, ticks, winner, reward, epsilon, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		stats.GameID, stats.Episode, stats.Ticks, stats.Winner,
		stats.Reward, stats.Epsilon, time.Now().UTC().Format(time.RFC3339))
	return err
}

// EpisodeCount returns the number of recorded episodes.
func (s *Store) EpisodeCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM episodes`).Scan(&n)
	return n, err
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
