package recorder

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteRecorder_Commands(t *testing.T) {
	r, err := NewSQLiteRecorder(MemoryDSN, "sess-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := r.RecordCommand(&CommandEvent{Action: "orbit", Target: "S-1", OK: true, Timestamp: base}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := r.RecordCommand(&CommandEvent{
		Action: "extract", Target: "S-1", Error: "cooldown", CooldownSeconds: 42,
		Timestamp: base.Add(time.Minute),
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := r.RecentCommands(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(got))
	}
	if got[0].Action != "extract" || got[0].OK || got[0].CooldownSeconds != 42 {
		t.Errorf("unexpected newest command: %+v", got[0])
	}
	if got[1].Action != "orbit" || !got[1].OK || got[1].SessionID != "sess-1" || got[1].ID == "" {
		t.Errorf("unexpected oldest command: %+v", got[1])
	}
	if !got[1].Timestamp.Equal(base) {
		t.Errorf("expected timestamp %v, got %v", base, got[1].Timestamp)
	}
}

func TestSQLiteRecorder_AgentSnapshots(t *testing.T) {
	r, err := NewSQLiteRecorder("", "sess-2")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	for _, c := range []int64{100, 250} {
		if err := r.RecordAgentSnapshot(&AgentSnapshot{Symbol: "AGENT", Credits: c, ShipCount: 2}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	credits, err := r.LatestCredits()
	if err != nil || credits != 250 {
		t.Fatalf("expected 250, got %d err=%v", credits, err)
	}
}

func TestSQLiteRecorder_RecentCommandsScopedToSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	earlier, err := NewSQLiteRecorder(path, "sess-old")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := earlier.RecordCommand(&CommandEvent{Action: "sell", Target: "S-1", OK: true}); err != nil {
		t.Fatalf("record: %v", err)
	}
	earlier.Close()

	r, err := NewSQLiteRecorder(path, "sess-new")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r.Close()
	if err := r.RecordCommand(&CommandEvent{Action: "dock", Target: "S-1", OK: true}); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := r.RecentCommands(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 || got[0].Action != "dock" || got[0].SessionID != "sess-new" {
		t.Errorf("expected only this session's command, got %+v", got)
	}
}
