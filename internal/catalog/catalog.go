// internal/catalog/catalog.go
// Package catalog indexes published consolidation artifacts in a SQLite
// database, so every run's outputs stay auditable after the fact: which
// stage wrote which file, with what content hash and row count.
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	scenario    TEXT NOT NULL,
	started_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS artifacts (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	stage       TEXT NOT NULL,
	path        TEXT NOT NULL,
	sha256      TEXT NOT NULL,
	rows        INTEGER NOT NULL,
	created_at  TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`

// Run identifies one consolidation invocation for a scenario.
type Run struct {
	ID        string
	Scenario  string
	StartedAt time.Time
}

// Artifact is one published file within a run.
type Artifact struct {
	RunID     string
	Scenario  string
	Stage     string
	Path      string
	SHA256    string
	Rows      int
	CreatedAt time.Time
}

// Catalog manages the artifact index in SQLite.
type Catalog struct {
	db *sql.DB
}

// Open opens the catalog database and runs migrations.
func Open(dbPath string) (*Catalog, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the underlying database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// BeginRun registers a new consolidation run and returns its record.
func (c *Catalog) BeginRun(scenario string) (Run, error) {
	run := Run{
		ID:        uuid.New().String(),
		Scenario:  scenario,
		StartedAt: time.Now().UTC(),
	}
	_, err := c.db.Exec(
		`INSERT INTO runs (run_id, scenario, started_at) VALUES (?, ?, ?)`,
		run.ID, run.Scenario, run.StartedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// RecordArtifact indexes one published file under an existing run.
func (c *Catalog) RecordArtifact(runID, stage, path, sha256 string, rows int) error {
	_, err := c.db.Exec(
		`INSERT INTO artifacts (run_id, stage, path, sha256, rows, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, stage, path, sha256, rows, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert artifact: %w", err)
	}
	return nil
}

// ListArtifacts returns the most recently published artifacts, newest first.
// A non-empty scenario restricts the listing to that scenario's runs.
func (c *Catalog) ListArtifacts(scenario string, limit int) ([]Artifact, error) {
	query := `SELECT a.run_id, r.scenario, a.stage, a.path, a.sha256, a.rows, a.created_at
	 FROM artifacts a JOIN runs r ON r.run_id = a.run_id`
	args := []any{}
	if scenario != "" {
		query += ` WHERE r.scenario = ?`
		args = append(args, scenario)
	}
	query += ` ORDER BY a.id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []Artifact
	for rows.Next() {
		var a Artifact
		var createdStr string
		if err := rows.Scan(&a.RunID, &a.Scenario, &a.Stage, &a.Path, &a.SHA256, &a.Rows, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		a.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}
