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

// Repository handles all database operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new repository with SQLite
func NewRepository(dbPath string) (*Repository, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := &Repository{db: db}

	// Run migrations
	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repo, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// migrate creates the database schema
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS summoners (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			puuid VARCHAR(100) UNIQUE NOT NULL,
			game_name VARCHAR(50) NOT NULL DEFAULT '',
			tag_line VARCHAR(10) NOT NULL DEFAULT '',
			platform VARCHAR(10) NOT NULL DEFAULT '',
			cluster VARCHAR(16) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_summoners_puuid ON summoners(puuid)`,
		`CREATE INDEX IF NOT EXISTS idx_summoners_game_name ON summoners(game_name COLLATE NOCASE)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// UpsertSummoner inserts a summoner or refreshes the existing row for
// its PUUID. Empty platform/cluster values never overwrite stored ones.
func (r *Repository) UpsertSummoner(s *Summoner) error {
	now := time.Now()
	_, err := r.db.Exec(
		`INSERT INTO summoners (puuid, game_name, tag_line, platform, cluster, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(puuid) DO UPDATE SET
			game_name = excluded.game_name,
			tag_line = excluded.tag_line,
			platform = CASE WHEN excluded.platform != '' THEN excluded.platform ELSE platform END,
			cluster = CASE WHEN excluded.cluster != '' THEN excluded.cluster ELSE cluster END,
			updated_at = excluded.updated_at`,
		s.PUUID, s.GameName, s.TagLine, s.Platform, s.Cluster, now,
	)
	if err != nil {
		return err
	}

	row := r.db.QueryRow(`SELECT id FROM summoners WHERE puuid = ?`, s.PUUID)
	if err := row.Scan(&s.ID); err != nil {
		return err
	}
	s.UpdatedAt = now
	return nil
}

// GetSummonerByPUUID finds a summoner by PUUID
func (r *Repository) GetSummonerByPUUID(puuid string) (*Summoner, error) {
	s := &Summoner{}
	err := r.db.QueryRow(
		`SELECT id, puuid, game_name, tag_line, platform, cluster, created_at, updated_at
		 FROM summoners WHERE puuid = ?`,
		puuid,
	).Scan(&s.ID, &s.PUUID, &s.GameName, &s.TagLine, &s.Platform, &s.Cluster, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// SuggestSummoners returns up to limit summoners whose name matches the
// query prefix, most recently seen first. An empty query returns the
// most recently seen summoners.
func (r *Repository) SuggestSummoners(query string, limit int) ([]*Summoner, error) {
	var rows *sql.Rows
	var err error

	if query == "" {
		rows, err = r.db.Query(
			`SELECT id, puuid, game_name, tag_line, platform, cluster, created_at, updated_at
			 FROM summoners ORDER BY updated_at DESC LIMIT ?`,
			limit,
		)
	} else {
		pattern := escapeLike(query) + "%"
		rows, err = r.db.Query(
			`SELECT id, puuid, game_name, tag_line, platform, cluster, created_at, updated_at
			 FROM summoners
			 WHERE game_name LIKE ? ESCAPE '\'
				OR (game_name || '#' || tag_line) LIKE ? ESCAPE '\'
			 ORDER BY updated_at DESC LIMIT ?`,
			pattern, pattern, limit,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summoners []*Summoner
	for rows.Next() {
		s := &Summoner{}
		if err := rows.Scan(&s.ID, &s.PUUID, &s.GameName, &s.TagLine, &s.Platform, &s.Cluster, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		summoners = append(summoners, s)
	}

	return summoners, rows.Err()
}

// GetStaleSummoners returns summoners not updated since the cutoff
func (r *Repository) GetStaleSummoners(cutoff time.Time, limit int) ([]*Summoner, error) {
	rows, err := r.db.Query(
		`SELECT id, puuid, game_name, tag_line, platform, cluster, created_at, updated_at
		 FROM summoners WHERE updated_at < ? ORDER BY updated_at ASC LIMIT ?`,
		cutoff, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summoners []*Summoner
	for rows.Next() {
		s := &Summoner{}
		if err := rows.Scan(&s.ID, &s.PUUID, &s.GameName, &s.TagLine, &s.Platform, &s.Cluster, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		summoners = append(summoners, s)
	}

	return summoners, rows.Err()
}

// UpdateSummonerIdentity refreshes the display name for a summoner
func (r *Repository) UpdateSummonerIdentity(id int64, gameName, tagLine string) error {
	_, err := r.db.Exec(
		`UPDATE summoners SET game_name = ?, tag_line = ?, updated_at = ? WHERE id = ?`,
		gameName, tagLine, time.Now(), id,
	)
	return err
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
