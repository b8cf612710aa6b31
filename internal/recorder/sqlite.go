package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets the API read history while agents write.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS agent_runs (
			id          TEXT PRIMARY KEY,
			agent       TEXT NOT NULL,
			status      TEXT NOT NULL,
			started_at  INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			error       TEXT,
			summary     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_agent_runs_agent_ts ON agent_runs(agent, started_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores evt, assigning an ID if it has none.
func (r *SQLiteRecorder) RecordRun(evt *RunEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	_, err := r.db.Exec(`INSERT INTO agent_runs
		(id, agent, status, started_at, duration_ms, error, summary)
		VALUES (?,?,?,?,?,?,?)`,
		evt.ID, evt.Agent, evt.Status,
		evt.StartedAt.UnixMilli(), evt.DurationMs,
		evt.Error, evt.Summary,
	)
	return err
}

// RecentRuns returns up to limit runs of agent, newest first.
func (r *SQLiteRecorder) RecentRuns(agent string, limit int) ([]RunEvent, error) {
	rows, err := r.db.Query(`SELECT id, agent, status, started_at, duration_ms, error, summary
		FROM agent_runs WHERE agent = ? ORDER BY started_at DESC, rowid DESC LIMIT ?`, agent, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunEvent{}
	for rows.Next() {
		var (
			evt              RunEvent
			startedMs        int64
			errText, summary sql.NullString
		)
		if err := rows.Scan(&evt.ID, &evt.Agent, &evt.Status, &startedMs, &evt.DurationMs, &errText, &summary); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		evt.StartedAt = time.UnixMilli(startedMs)
		evt.Error = errText.String
		evt.Summary = summary.String
		runs = append(runs, evt)
	}
	return runs, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
