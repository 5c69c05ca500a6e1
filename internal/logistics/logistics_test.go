package logistics

import (
	"reflect"
	"testing"

	"FleetConsole/internal/model"
)

func wp(symbol, typ string, x, y float64, traits ...string) model.Waypoint {
	w := model.Waypoint{Symbol: symbol, Type: typ, X: model.At(x), Y: model.At(y)}
	for _, t := range traits {
		w.Traits = append(w.Traits, model.Trait{Symbol: t})
	}
	return w
}

func symbols(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Symbol
	}
	return out
}

func testListing() []model.Waypoint {
	return []model.Waypoint{
		wp("X1-A-HQ", "PLANET", 0, 0, "MARKETPLACE", "SHIPYARD"),
		wp("X1-A-ROCK", "ASTEROID_FIELD", 3, 4),
		wp("X1-A-MOON", "MOON", -6, 8, "MINERAL_DEPOSITS", "MARKETPLACE"),
		wp("X1-A-DEPOT", "ORBITAL_STATION", 1, 1, "WAREHOUSE"),
		wp("X1-A-GAS", "GAS_GIANT", 10, 0),
	}
}

func TestSummarize_Classification(t *testing.T) {
	s := Summarize(testListing(), "X1-A-HQ")

	if got := symbols(s[Mining]); !reflect.DeepEqual(got, []string{"X1-A-ROCK", "X1-A-MOON"}) {
		t.Errorf("mining: %v", got)
	}
	if got := symbols(s[Markets]); !reflect.DeepEqual(got, []string{"X1-A-HQ", "X1-A-MOON"}) {
		t.Errorf("markets: %v", got)
	}
	if got := symbols(s[Warehouses]); !reflect.DeepEqual(got, []string{"X1-A-DEPOT"}) {
		t.Errorf("warehouses: %v", got)
	}
	if got := symbols(s[Shipyards]); !reflect.DeepEqual(got, []string{"X1-A-HQ"}) {
		t.Errorf("shipyards: %v", got)
	}
}

func TestSummarize_EntryFields(t *testing.T) {
	s := Summarize(testListing(), "x1-a-hq")

	rock := s[Mining][0]
	if rock.Traits != NoTraits {
		t.Errorf("expected placeholder traits, got %q", rock.Traits)
	}
	if rock.Distance == nil || *rock.Distance != 5.0 {
		t.Errorf("expected distance 5.0, got %v", rock.Distance)
	}

	hq := s[Markets][0]
	if hq.Traits != "MARKETPLACE, SHIPYARD" {
		t.Errorf("unexpected traits %q", hq.Traits)
	}
	if hq.Distance == nil || *hq.Distance != 0 {
		t.Errorf("expected zero distance to self, got %v", hq.Distance)
	}

	depot := s[Warehouses][0]
	if depot.Distance == nil || *depot.Distance != 1.4 {
		t.Errorf("expected 1.4, got %v", depot.Distance)
	}
}

func TestSummarize_UnknownReference(t *testing.T) {
	s := Summarize(testListing(), "X1-Z-NOWHERE")
	for _, c := range Categories {
		for _, e := range s[c] {
			if e.Distance != nil {
				t.Fatalf("%s/%s: expected nil distance", c, e.Symbol)
			}
		}
	}
	if _, ok := s.Nearest(Mining); ok {
		t.Error("nearest must be unavailable without distances")
	}
}

func TestSummarize_Deterministic(t *testing.T) {
	a := Summarize(testListing(), "X1-A-HQ")
	b := Summarize(testListing(), "X1-A-HQ")
	if !reflect.DeepEqual(a, b) {
		t.Error("identical input produced different summaries")
	}
	for _, c := range Categories {
		if _, ok := a[c]; !ok {
			t.Errorf("category %q missing", c)
		}
	}
}

func TestNearestAndByDistance(t *testing.T) {
	s := Summarize(testListing(), "X1-A-GAS")
	near, ok := s.Nearest(Mining)
	if !ok || near.Symbol != "X1-A-ROCK" {
		t.Fatalf("expected X1-A-ROCK nearest to gas giant, got %+v", near)
	}

	d := 2.0
	entries := []Entry{{Symbol: "none"}, {Symbol: "far", Distance: &d}}
	sorted := ByDistance(entries)
	if sorted[0].Symbol != "far" || sorted[1].Symbol != "none" {
		t.Errorf("expected nil distances last, got %v", symbols(sorted))
	}
	if entries[0].Symbol != "none" {
		t.Error("ByDistance must not reorder its input")
	}
}

func TestIsMiningSite(t *testing.T) {
	if !IsMiningSite("ENGINEERED_ASTEROID", nil) {
		t.Error("asteroid type should be minable")
	}
	if !IsMiningSite("PLANET", map[string]bool{"RARE_METAL_DEPOSITS": true}) {
		t.Error("deposit trait should be minable")
	}
	if IsMiningSite("PLANET", map[string]bool{"MARKETPLACE": true}) {
		t.Error("plain marketplace planet is not a mining site")
	}
}

func TestSummarize_NonNumericCoordinate(t *testing.T) {
	listing := testListing()
	odd := wp("X1-A-ODD", "ASTEROID", 0, 0)
	odd.X = model.Coord{}
	listing = append(listing, odd)

	s := Summarize(listing, "X1-A-HQ")
	var sawOdd, sawRock bool
	for _, e := range s[Mining] {
		switch e.Symbol {
		case "X1-A-ODD":
			sawOdd = true
			if e.Distance != nil {
				t.Errorf("expected nil distance for non-numeric coordinate, got %v", *e.Distance)
			}
		case "X1-A-ROCK":
			sawRock = true
			if e.Distance == nil || *e.Distance != 5.0 {
				t.Errorf("other entries keep their distance, got %v", e.Distance)
			}
		}
	}
	if !sawOdd || !sawRock {
		t.Fatalf("expected both asteroid entries, got %v", symbols(s[Mining]))
	}

	if _, ok := Distance(odd, listing[0]); ok {
		t.Error("Distance should report a missing coordinate")
	}
}
