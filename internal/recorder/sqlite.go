package recorder

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// MemoryDSN keeps the journal in process memory for the session lifetime.
const MemoryDSN = ":memory:"

// SQLiteRecorder journals commands and agent snapshots to SQLite.
type SQLiteRecorder struct {
	db        *sqlx.DB
	mu        sync.Mutex
	sessionID string
}

// NewSQLiteRecorder opens (or creates) the journal and runs migrations.
func NewSQLiteRecorder(dsn, sessionID string) (*SQLiteRecorder, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every pooled connection to :memory: would see its own empty database.
	db.SetMaxOpenConns(1)

	if dsn != MemoryDSN {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}

	r := &SQLiteRecorder{db: db, sessionID: sessionID}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] session journal opened: %s", dsn)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS commands (
			id               TEXT PRIMARY KEY,
			session_id       TEXT NOT NULL,
			timestamp        INTEGER NOT NULL,
			action           TEXT NOT NULL,
			target           TEXT,
			ok               INTEGER NOT NULL,
			error            TEXT,
			cooldown_seconds INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_commands_session_ts ON commands(session_id, timestamp)`,

		`CREATE TABLE IF NOT EXISTS agent_snapshots (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT,
			credits    INTEGER,
			ship_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_agent_ts ON agent_snapshots(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordCommand(evt *CommandEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	if evt.SessionID == "" {
		evt.SessionID = r.sessionID
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	evt.Unix = evt.Timestamp.Unix()

	_, err := r.db.NamedExec(`INSERT INTO commands
		(id, session_id, timestamp, action, target, ok, error, cooldown_seconds)
		VALUES (:id, :session_id, :timestamp, :action, :target, :ok, :error, :cooldown_seconds)`, evt)
	return err
}

func (r *SQLiteRecorder) RecordAgentSnapshot(snap *AgentSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if snap.SessionID == "" {
		snap.SessionID = r.sessionID
	}
	if snap.Unix == 0 {
		snap.Unix = time.Now().Unix()
	}
	_, err := r.db.NamedExec(`INSERT INTO agent_snapshots
		(session_id, timestamp, symbol, credits, ship_count)
		VALUES (:session_id, :timestamp, :symbol, :credits, :ship_count)`, snap)
	return err
}

// RecentCommands returns this session's newest commands first.
func (r *SQLiteRecorder) RecentCommands(limit int) ([]CommandEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var events []CommandEvent
	err := r.db.Select(&events, `SELECT id, session_id, timestamp, action, target, ok, error, cooldown_seconds
		FROM commands WHERE session_id = ? ORDER BY timestamp DESC, rowid DESC LIMIT ?`, r.sessionID, limit)
	if err != nil {
		return nil, err
	}
	for i := range events {
		events[i].Timestamp = time.Unix(events[i].Unix, 0)
	}
	return events, nil
}

// LatestCredits returns the most recent credit balance recorded this session.
func (r *SQLiteRecorder) LatestCredits() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var credits int64
	err := r.db.Get(&credits, `SELECT credits FROM agent_snapshots
		WHERE session_id = ? ORDER BY id DESC LIMIT 1`, r.sessionID)
	return credits, err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing session journal")
	return r.db.Close()
}
