// Package storage provides SQLite-based persistence for saved games and
// level results. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-cafe/internal/cafe"
)

// Store manages the SQLite database connection for save-game persistence.
type Store struct {
	db *sql.DB
}

// Character is one saved-game record.
type Character struct {
	Name      string
	Type      string
	Money     int
	Points    int
	LastLevel int
	Upgrades  []string
	UpdatedAt time.Time
}

// LevelResult is one completed-level history record.
type LevelResult struct {
	ID        int64
	Character string
	Level     int
	Points    int
	Money     int
	Served    int
	Ignored   int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS characters (
			name TEXT PRIMARY KEY,
			type TEXT NOT NULL DEFAULT '',
			money INTEGER NOT NULL DEFAULT 0,
			points INTEGER NOT NULL DEFAULT 0,
			last_level INTEGER NOT NULL DEFAULT 0,
			upgrades TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			character TEXT NOT NULL,
			level INTEGER NOT NULL,
			points INTEGER NOT NULL,
			money INTEGER NOT NULL,
			served INTEGER NOT NULL,
			ignored INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_character ON level_results(character);
		CREATE INDEX IF NOT EXISTS idx_level_results_top ON level_results(level, points DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame serializes a session snapshot into the character's record,
// creating or replacing it. Upgrades are stored as a comma-joined id list.
func (s *Store) SaveGame(snap cafe.SessionSnapshot, charType string) error {
	if snap.Character == "" {
		return fmt.Errorf("storage: cannot save game without a character name")
	}
	_, err := s.db.Exec(
		`INSERT INTO characters (name, type, money, points, last_level, upgrades, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET
		   type=excluded.type, money=excluded.money, points=excluded.points,
		   last_level=excluded.last_level, upgrades=excluded.upgrades,
		   updated_at=CURRENT_TIMESTAMP`,
		snap.Character, charType, snap.Money, snap.Points, snap.Level,
		strings.Join(snap.Upgrades, ","),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// LoadGame populates a session snapshot from the named character's record.
// Returns nil with no error when the character does not exist.
func (s *Store) LoadGame(name string) (*cafe.SessionSnapshot, error) {
	var (
		snap     cafe.SessionSnapshot
		upgrades string
		charType string
	)
	err := s.db.QueryRow(
		`SELECT name, type, money, points, last_level, upgrades
		 FROM characters WHERE name = ?`,
		name,
	).Scan(&snap.Character, &charType, &snap.Money, &snap.Points, &snap.Level, &upgrades)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load game: %w", err)
	}
	if upgrades != "" {
		snap.Upgrades = strings.Split(upgrades, ",")
	}
	return &snap, nil
}

// Characters lists all saved characters, most recently played first.
func (s *Store) Characters() ([]Character, error) {
	rows, err := s.db.Query(
		`SELECT name, type, money, points, last_level, upgrades, updated_at
		 FROM characters ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query characters: %w", err)
	}
	defer rows.Close()

	var chars []Character
	for rows.Next() {
		var (
			c         Character
			upgrades  string
			updatedAt any
		)
		if err := rows.Scan(&c.Name, &c.Type, &c.Money, &c.Points, &c.LastLevel, &upgrades, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if upgrades != "" {
			c.Upgrades = strings.Split(upgrades, ",")
		}
		c.UpdatedAt = parseTimestamp(updatedAt)
		chars = append(chars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return chars, nil
}

// DeleteCharacter removes a saved game and its level history.
func (s *Store) DeleteCharacter(name string) error {
	if _, err := s.db.Exec("DELETE FROM characters WHERE name = ?", name); err != nil {
		return fmt.Errorf("storage: cannot delete character: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM level_results WHERE character = ?", name); err != nil {
		return fmt.Errorf("storage: cannot delete level history: %w", err)
	}
	return nil
}

// RecordLevelResult appends one completed-level record.
func (s *Store) RecordLevelResult(r LevelResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO level_results (character, level, points, money, served, ignored)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Character, r.Level, r.Points, r.Money, r.Served, r.Ignored,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record level result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopLevelResults retrieves the best results for a level, ordered by points
// descending.
func (s *Store) TopLevelResults(level, limit int) ([]LevelResult, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, character, level, points, money, served, ignored, created_at
		 FROM level_results
		 WHERE level = ?
		 ORDER BY points DESC
		 LIMIT ?`,
		level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level results: %w", err)
	}
	defer rows.Close()

	var results []LevelResult
	for rows.Next() {
		var (
			r         LevelResult
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.Character, &r.Level, &r.Points, &r.Money, &r.Served, &r.Ignored, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// parseTimestamp handles the driver returning either time.Time or a string.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
