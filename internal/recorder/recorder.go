package recorder

import "time"

// CommandEvent is one command issued against the game API.
type CommandEvent struct {
	ID              string    `db:"id"`
	SessionID       string    `db:"session_id"`
	Timestamp       time.Time `db:"-"`
	Unix            int64     `db:"timestamp"`
	Action          string    `db:"action"` // "navigate", "extract", "sell", ...
	Target          string    `db:"target"` // ship symbol or contract id
	OK              bool      `db:"ok"`
	Error           string    `db:"error"`
	CooldownSeconds int       `db:"cooldown_seconds"`
}

// AgentSnapshot records the credit balance seen by a poll.
type AgentSnapshot struct {
	SessionID string `db:"session_id"`
	Unix      int64  `db:"timestamp"`
	Symbol    string `db:"symbol"`
	Credits   int64  `db:"credits"`
	ShipCount int    `db:"ship_count"`
}

// Recorder journals session activity.
type Recorder interface {
	RecordCommand(evt *CommandEvent) error
	RecordAgentSnapshot(snap *AgentSnapshot) error
	RecentCommands(limit int) ([]CommandEvent, error)
	Close() error
}
