// Package storage keeps the high-score table in SQLite.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultPath is where scores live unless --db says otherwise.
const DefaultPath = "~/.stargather/scores.db"

type Store struct {
	db *sql.DB
}

// Run is one finished game.
type Run struct {
	ID         int64
	Score      int
	Stars      int
	Bombs      int
	Seed       uint64
	Background string
	CreatedAt  time.Time
}

// Open creates or opens the database at path, creating parent directories
// and the schema as needed. ":memory:" is passed through untouched.
func Open(path string) (*Store, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: connect: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return s, nil
}

func expandHome(path string) (string, error) {
	if path == "" {
		path = DefaultPath
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			stars INTEGER NOT NULL DEFAULT 0,
			bombs INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			background TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);
	`)
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun records a finished game and returns its row id.
func (s *Store) SaveRun(r Run) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (score, stars, bombs, seed, background) VALUES (?, ?, ?, ?, ?)`,
		r.Score, r.Stars, r.Bombs, int64(r.Seed), r.Background,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: inserted id: %w", err)
	}
	return id, nil
}

// SaveScore records a bare score.
func (s *Store) SaveScore(score int) (int64, error) {
	return s.SaveRun(Run{Score: score})
}

// TopScores returns the best runs, highest first. Ties keep insertion order.
func (s *Store) TopScores(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, score, stars, bombs, seed, background, created_at
		 FROM runs
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: query scores: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			seed      int64
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.Score, &r.Stars, &r.Bombs, &seed, &r.Background, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: scan row: %w", err)
		}
		r.Seed = uint64(seed)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration: %w", err)
	}
	return runs, nil
}

// HighScore returns the best score, or 0 when nothing has been recorded.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(score) FROM runs`).Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM runs`); err != nil {
		return fmt.Errorf("storage: clear: %w", err)
	}
	return nil
}

func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.DateTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
