// Package logistics classifies a system's waypoints into route targets and
// measures their distance from a reference waypoint.
package logistics

import (
	"math"
	"sort"
	"strings"

	"FleetConsole/internal/model"
)

// Category names a logistics target class.
type Category string

const (
	Mining     Category = "Mining sites"
	Markets    Category = "Markets & delivery"
	Warehouses Category = "Warehouses"
	Shipyards  Category = "Shipyards"
)

// Categories lists every category in display order.
var Categories = []Category{Mining, Markets, Warehouses, Shipyards}

// depositTraits mark a waypoint as minable regardless of its type.
var depositTraits = map[string]bool{
	"COMMON_METAL_DEPOSITS":   true,
	"RARE_METAL_DEPOSITS":     true,
	"PRECIOUS_METAL_DEPOSITS": true,
	"MINERAL_DEPOSITS":        true,
	"ASTEROID_FIELD":          true,
}

// traitCategories maps the exact-match traits to their category.
var traitCategories = []struct {
	Trait    string
	Category Category
}{
	{"MARKETPLACE", Markets},
	{"WAREHOUSE", Warehouses},
	{"SHIPYARD", Shipyards},
}

// NoTraits is shown for a waypoint without traits.
const NoTraits = "—"

// Entry is one candidate waypoint inside a category.
type Entry struct {
	Symbol   string
	Type     string
	Traits   string   // sorted, comma-joined
	Distance *float64 // nil when the reference is unknown or a coordinate is not numeric
}

// Summary maps every category to its entries, in listing order.
type Summary map[Category][]Entry

// Summarize classifies waypoints. A waypoint may land in several categories.
// Output depends only on the inputs.
func Summarize(waypoints []model.Waypoint, reference string) Summary {
	ref, hasRef := findWaypoint(waypoints, reference)

	summary := make(Summary, len(Categories))
	for _, c := range Categories {
		summary[c] = []Entry{}
	}

	for _, wp := range waypoints {
		traits := upperSet(wp.TraitSymbols())
		entry := buildEntry(wp, ref, hasRef)

		if IsMiningSite(wp.Type, traits) {
			summary[Mining] = append(summary[Mining], entry)
		}
		for _, tc := range traitCategories {
			if traits[tc.Trait] {
				summary[tc.Category] = append(summary[tc.Category], entry)
			}
		}
	}
	return summary
}

// IsMiningSite reports whether a waypoint type or its (upper-cased) traits
// indicate something to extract.
func IsMiningSite(waypointType string, traits map[string]bool) bool {
	t := strings.ToUpper(waypointType)
	if strings.Contains(t, "ASTEROID") || strings.Contains(t, "MINING") {
		return true
	}
	for tr := range traits {
		if depositTraits[tr] {
			return true
		}
	}
	return false
}

// Distance is the planar Euclidean distance between two waypoints in API units.
// ok is false when either waypoint lacks a numeric coordinate.
func Distance(a, b model.Waypoint) (float64, bool) {
	if !a.X.Valid || !a.Y.Valid || !b.X.Valid || !b.Y.Valid {
		return 0, false
	}
	return math.Hypot(a.X.Value-b.X.Value, a.Y.Value-b.Y.Value), true
}

// ByDistance returns a copy of entries ordered nearest first; entries without
// a distance go last. Ties keep their original order.
func ByDistance(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Distance, out[j].Distance
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		}
		return *di < *dj
	})
	return out
}

// Nearest returns the closest entry of a category.
func (s Summary) Nearest(c Category) (Entry, bool) {
	sorted := ByDistance(s[c])
	if len(sorted) == 0 || sorted[0].Distance == nil {
		return Entry{}, false
	}
	return sorted[0], true
}

func buildEntry(wp, ref model.Waypoint, hasRef bool) Entry {
	e := Entry{
		Symbol: wp.Symbol,
		Type:   wp.Type,
		Traits: joinTraits(wp.TraitSymbols()),
	}
	if !hasRef {
		return e
	}
	if d, ok := Distance(ref, wp); ok {
		d = math.Round(d*10) / 10
		e.Distance = &d
	}
	return e
}

func findWaypoint(waypoints []model.Waypoint, symbol string) (model.Waypoint, bool) {
	symbol = model.NormalizeSymbol(symbol)
	if symbol == "" {
		return model.Waypoint{}, false
	}
	for _, wp := range waypoints {
		if model.NormalizeSymbol(wp.Symbol) == symbol {
			return wp, true
		}
	}
	return model.Waypoint{}, false
}

func joinTraits(traits []string) string {
	if len(traits) == 0 {
		return NoTraits
	}
	sorted := make([]string, len(traits))
	copy(sorted, traits)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}

func upperSet(traits []string) map[string]bool {
	set := make(map[string]bool, len(traits))
	for _, t := range traits {
		set[strings.ToUpper(t)] = true
	}
	return set
}
