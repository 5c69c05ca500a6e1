package calculator

import (
	"testing"
	"time"

	"FleetConsole/internal/model"
)

func TestHumanizeSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0s"},
		{45, "45s"},
		{59.9, "59s"},
		{60, "1m 0s"},
		{125, "2m 5s"},
		{3600, "1h 0m"},
		{7384, "2h 3m"},
		{86400, "1d 0h"},
		{100000, "1d 3h"},
	}
	for _, tt := range tests {
		if got := HumanizeSeconds(tt.in); got != tt.want {
			t.Errorf("HumanizeSeconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if HumanizeOptional(nil) != Unknown {
		t.Error("expected placeholder for absent input")
	}
}

func TestTravelProgress(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	route := model.NavRoute{
		DepartureTime: t0.Format(time.RFC3339),
		Arrival:       t0.Add(100 * time.Second).Format(time.RFC3339Nano),
	}

	p := TravelProgress(route, t0.Add(25*time.Second))
	if !p.Known || p.Fraction != 0.25 {
		t.Fatalf("expected fraction 0.25, got %+v", p)
	}
	if p.ETA != "1m 15s" {
		t.Errorf("expected ETA 1m 15s, got %q", p.ETA)
	}

	p = TravelProgress(route, t0.Add(150*time.Second))
	if p.Fraction != 1.0 || p.ETA != "0s" {
		t.Errorf("expected clamped 1.0 / 0s, got %+v", p)
	}

	p = TravelProgress(route, t0.Add(-10*time.Second))
	if p.Fraction != 0 {
		t.Errorf("expected clamp to 0 before departure, got %v", p.Fraction)
	}
}

func TestTravelProgress_Unknown(t *testing.T) {
	tests := []model.NavRoute{
		{},
		{DepartureTime: "2024-05-01T10:00:00Z"},
		{DepartureTime: "yesterday", Arrival: "2024-05-01T10:00:00Z"},
		{DepartureTime: "2024-05-01T10:00:00Z", Arrival: "2024-05-01T10:00:00Z"},
		{DepartureTime: "2024-05-01T10:00:10Z", Arrival: "2024-05-01T10:00:00Z"},
	}
	for i, r := range tests {
		p := TravelProgress(r, time.Now())
		if p.Known || p.ETA != Unknown {
			t.Errorf("case %d: expected unknown progress, got %+v", i, p)
		}
	}
}

func TestExtractCooldownSeconds(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{`{"error":{"data":{"cooldown":{"remainingSeconds":37}}}}`, 37},
		{`map[cooldown:map[remainingSeconds: 12]]`, 12},
		{`{'remainingSeconds': 5}`, 5},
		{"ship is docked", 60},
		{"", 60},
	}
	for _, tt := range tests {
		if got := ExtractCooldownSeconds(tt.text, DefaultCooldownSeconds); got != tt.want {
			t.Errorf("ExtractCooldownSeconds(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
	if got := ExtractCooldownSeconds("nothing", 5); got != 5 {
		t.Errorf("expected custom fallback, got %d", got)
	}
}

func TestFormatCredits(t *testing.T) {
	if got := FormatCredits(1234567); got != "1,234,567" {
		t.Errorf("got %q", got)
	}
	if got := FormatCredits(999); got != "999" {
		t.Errorf("got %q", got)
	}
}

func TestCargoHelpers(t *testing.T) {
	inv := []model.CargoItem{
		{Symbol: "IRON_ORE", Units: 10, PurchasePrice: 5},
		{Symbol: "COPPER_ORE", Units: 4, SellPrice: 7},
		{Symbol: "ICE_WATER", Units: 3},
	}
	if v := CargoValue(inv); v != 78 {
		t.Errorf("expected 78, got %d", v)
	}
	if u := CargoUtilization(model.Cargo{Capacity: 30, Units: 17}); u != 56.7 {
		t.Errorf("expected 56.7, got %v", u)
	}
	if u := CargoUtilization(model.Cargo{}); u != 0 {
		t.Errorf("expected 0 for empty hold, got %v", u)
	}
}

func TestStatusCounts(t *testing.T) {
	ships := []model.Ship{
		{Nav: model.ShipNav{Status: model.StatusDocked}},
		{Nav: model.ShipNav{Status: model.StatusInTransit}},
		{Nav: model.ShipNav{Status: model.StatusDocked}},
		{Nav: model.ShipNav{Status: "DRIFTING"}},
	}
	fc := FleetStatusCounts(ships)
	if fc.Docked != 2 || fc.InTransit != 1 || fc.InOrbit != 0 || fc.Other != 1 {
		t.Errorf("unexpected fleet counts: %+v", fc)
	}

	contracts := []model.Contract{
		{Accepted: true},
		{Accepted: true, Fulfilled: true},
		{},
		{},
	}
	cc := ContractStatusCounts(contracts)
	if cc.Active != 1 || cc.Fulfilled != 1 || cc.Pending != 2 {
		t.Errorf("unexpected contract counts: %+v", cc)
	}
}
