package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"FleetConsole/internal/logistics"
	"FleetConsole/internal/model"
	"FleetConsole/internal/recorder"
)

func TestSend_PostsHTMLMessage(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/sendMessage" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.APIBase = srv.URL
	if err := tn.Send("hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got["chat_id"] != "42" || got["text"] != "hello" || got["parse_mode"] != "HTML" {
		t.Errorf("unexpected payload %v", got)
	}
}

func TestSendWithRetry_GivesUpAfterBudget(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.APIBase = srv.URL
	if err := tn.SendWithRetry(context.Background(), "x", 0); err == nil {
		t.Fatal("expected error")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected 1 attempt with zero retries, got %d", n)
	}
}

func TestSendWithRetry_CancelledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.APIBase = srv.URL
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := tn.SendWithRetry(ctx, "x", 3); err != context.DeadlineExceeded {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestStartPolling_DispatchesCommands(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu      sync.Mutex
		replies []string
		polls   int32
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			if atomic.AddInt32(&polls, 1) == 1 {
				w.Write([]byte(`{"ok":true,"result":[{"update_id":7,"message":{"text":" /agent "}}]}`))
				return
			}
			if r.URL.Query().Get("offset") != "8" {
				t.Errorf("offset not advanced: %s", r.URL.RawQuery)
			}
			cancel()
			w.Write([]byte(`{"ok":true,"result":[]}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var p map[string]string
			json.NewDecoder(r.Body).Decode(&p)
			mu.Lock()
			replies = append(replies, p["text"])
			mu.Unlock()
			w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.APIBase = srv.URL
	var seen []string
	tn.StartPolling(ctx, func(cmd string) string {
		seen = append(seen, cmd)
		return "reply:" + cmd
	})

	if len(seen) != 1 || seen[0] != "/agent" {
		t.Errorf("unexpected commands %v", seen)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(replies) != 1 || replies[0] != "reply:/agent" {
		t.Errorf("unexpected replies %v", replies)
	}
}

func TestFormatAgent(t *testing.T) {
	out := FormatAgent(model.Agent{Symbol: "ACME", Credits: 1234567, Headquarters: "X1-A-B", ShipCount: 3})
	for _, want := range []string{"<b>ACME</b>", "1,234,567", "X1-A-B", "Ships: 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %s", want, out)
		}
	}
}

func TestFormatFleet(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 1, 15, 0, time.UTC)
	ships := []model.Ship{
		{Symbol: "S-1", Nav: model.ShipNav{Status: model.StatusInTransit, WaypointSymbol: "X1-A-B",
			Route: model.NavRoute{
				Destination:   model.RouteWaypoint{Symbol: "X1-A-C"},
				DepartureTime: "2024-01-01T00:00:00Z",
				Arrival:       "2024-01-01T00:05:00Z",
			}},
			Fuel:  model.Fuel{Current: 80, Capacity: 100},
			Cargo: model.Cargo{Units: 10, Capacity: 40}},
		{Symbol: "S-2", Nav: model.ShipNav{Status: model.StatusDocked, WaypointSymbol: "X1-A-B"}},
	}
	out := FormatFleet(ships, now)
	for _, want := range []string{"2 ships", "In transit 1", "Docked 1", "X1-A-C 25% ETA 3m 45s", "cargo 10/40 (25.0%)"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %s", want, out)
		}
	}
}

func TestFormatContracts(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	contracts := []model.Contract{
		{ID: "c1", Type: "PROCUREMENT", Accepted: true, Terms: model.ContractTerms{
			Deadline: "2024-01-01T02:00:00Z",
			Payment:  model.ContractPayment{OnAccepted: 1000, OnFulfilled: 9000},
			Deliver:  []model.Deliverable{{TradeSymbol: "IRON_ORE", DestinationSymbol: "X1-A-B", UnitsRequired: 50, UnitsFulfilled: 10}},
		}},
		{ID: "c2", Type: "TRANSPORT", Terms: model.ContractTerms{Deadline: "2023-12-31T00:00:00Z"}},
	}
	out := FormatContracts(contracts, now)
	for _, want := range []string{"active 1", "pending 1", "10,000 cr", "IRON_ORE → X1-A-B: 10/50", "deadline in 2h 0m", "deadline passed"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %s", want, out)
		}
	}
}

func TestFormatLogistics(t *testing.T) {
	wps := []model.Waypoint{
		{Symbol: "X1-A-HOME", Type: "PLANET", X: model.At(0), Y: model.At(0)},
		{Symbol: "X1-A-ROCK", Type: "ASTEROID", X: model.At(3), Y: model.At(4), Traits: []model.Trait{{Symbol: "COMMON_METAL_DEPOSITS"}}},
	}
	out := FormatLogistics("X1-A-HOME", logistics.Summarize(wps, "X1-A-HOME"))
	for _, want := range []string{"Mining sites</b> (1)", "X1-A-ROCK ASTEROID [5.0]", "Shipyards</b> (0)", "none"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %s", want, out)
		}
	}
}

func TestFormatDeadlineAndArrival(t *testing.T) {
	d := FormatDeadline(model.Contract{ID: "c1", Type: "PROCUREMENT"}, 90*time.Minute)
	if !strings.Contains(d, "due in 1h 30m") {
		t.Errorf("unexpected deadline alert %s", d)
	}
	a := FormatArrival(model.Ship{Symbol: "S-1", Nav: model.ShipNav{WaypointSymbol: "X1-A-C", Status: model.StatusInOrbit}})
	if !strings.Contains(a, "S-1") || !strings.Contains(a, "X1-A-C") {
		t.Errorf("unexpected arrival alert %s", a)
	}
}

func TestFormatJournal(t *testing.T) {
	if out := FormatJournal(nil); !strings.Contains(out, "No commands") {
		t.Errorf("unexpected empty journal %s", out)
	}
	out := FormatJournal([]recorder.CommandEvent{
		{Timestamp: time.Date(2024, 1, 1, 10, 0, 5, 0, time.UTC), Action: "extract", Target: "S-1", CooldownSeconds: 70},
		{Timestamp: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), Action: "orbit", Target: "S-1", OK: true},
	})
	for _, want := range []string{"❌ 10:00:05 extract S-1 (cooldown 1m 10s)", "✅ 10:00:00 orbit S-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %s", want, out)
		}
	}
}

func TestFormatLogistics_EscapesFields(t *testing.T) {
	summary := logistics.Summary{
		logistics.Markets: {{Symbol: "X1-<A>-B", Type: "ODD&TYPE", Traits: "<MARKETPLACE>"}},
	}
	out := FormatLogistics("X1-A-B", summary)
	if strings.Contains(out, "<A>") || strings.Contains(out, "<MARKETPLACE>") || strings.Contains(out, "ODD&TYPE") {
		t.Fatalf("unescaped field in %s", out)
	}
	if !strings.Contains(out, "X1-&lt;A&gt;-B ODD&amp;TYPE [—] &lt;MARKETPLACE&gt;") {
		t.Errorf("unexpected row in %s", out)
	}
}
