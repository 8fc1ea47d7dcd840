// Package replay persists finished and in-progress games to SQLite and
// verifies them by deterministic re-resolution.
package replay

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"koth/game"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	created_at TIMESTAMP NOT NULL,
	config     TEXT NOT NULL,
	seed       INTEGER NOT NULL,
	randomized INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS turns (
	game_id TEXT NOT NULL REFERENCES games(id),
	turn    INTEGER NOT NULL,
	record  TEXT NOT NULL,
	PRIMARY KEY (game_id, turn)
);
`

// Store is a SQLite-backed game archive. One row per game, one append-only
// row per resolved turn.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a store at the given path. ":memory:"
// works for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open replay store: %w", err)
	}
	// the driver is not safe for concurrent writers on one connection pool
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate replay store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// GameMeta is everything needed to reconstruct a game's initial state.
type GameMeta struct {
	ID         uuid.UUID
	Config     game.Config
	Seed       uint64
	Randomized bool
}

// CreateGame registers a new game and returns its identifier.
func (s *Store) CreateGame(cfg game.Config, seed uint64, randomized bool) (uuid.UUID, error) {
	id := uuid.New()
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode config: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO games (id, created_at, config, seed, randomized) VALUES (?, ?, ?, ?, ?)",
		id.String(), time.Now().UTC(), string(cfgJSON), int64(seed), randomized,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert game: %w", err)
	}
	return id, nil
}

// Game loads a game's metadata.
func (s *Store) Game(id uuid.UUID) (GameMeta, error) {
	var (
		cfgJSON string
		seed    int64
		meta    = GameMeta{ID: id}
	)
	row := s.db.QueryRow("SELECT config, seed, randomized FROM games WHERE id = ?", id.String())
	if err := row.Scan(&cfgJSON, &seed, &meta.Randomized); err != nil {
		return GameMeta{}, fmt.Errorf("load game %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(cfgJSON), &meta.Config); err != nil {
		return GameMeta{}, fmt.Errorf("decode config of game %s: %w", id, err)
	}
	meta.Seed = uint64(seed)
	return meta, nil
}

// AppendTurn stores one resolved turn. Turns must arrive in order without
// gaps; the primary key rejects duplicates.
func (s *Store) AppendTurn(id uuid.UUID, record *game.TurnRecord) error {
	recJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode turn record: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO turns (game_id, turn, record) VALUES (?, ?, ?)",
		id.String(), record.Turn, string(recJSON),
	)
	if err != nil {
		return fmt.Errorf("append turn %d of game %s: %w", record.Turn, id, err)
	}
	return nil
}

// Turns loads all stored turn records of a game in turn order.
func (s *Store) Turns(id uuid.UUID) ([]*game.TurnRecord, error) {
	rows, err := s.db.Query("SELECT record FROM turns WHERE game_id = ? ORDER BY turn", id.String())
	if err != nil {
		return nil, fmt.Errorf("load turns of game %s: %w", id, err)
	}
	defer rows.Close()

	var records []*game.TurnRecord
	for rows.Next() {
		var recJSON string
		if err := rows.Scan(&recJSON); err != nil {
			return nil, fmt.Errorf("scan turn of game %s: %w", id, err)
		}
		record := &game.TurnRecord{}
		if err := json.Unmarshal([]byte(recJSON), record); err != nil {
			return nil, fmt.Errorf("decode turn of game %s: %w", id, err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// GameSink adapts the store to the engine's per-turn sink.
type GameSink struct {
	store *Store
	id    uuid.UUID
}

// Sink returns a per-turn sink appending to one game.
func (s *Store) Sink(id uuid.UUID) *GameSink {
	return &GameSink{store: s, id: id}
}

// OnTurn appends a resolved turn to the game's history.
func (gs *GameSink) OnTurn(_ *game.GameState, record *game.TurnRecord) error {
	return gs.store.AppendTurn(gs.id, record)
}
