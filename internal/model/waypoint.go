package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Waypoint is a navigable point inside a system.
type Waypoint struct {
	Symbol       string  `json:"symbol"`
	Type         string  `json:"type"`
	SystemSymbol string  `json:"systemSymbol"`
	X            Coord   `json:"x"`
	Y            Coord   `json:"y"`
	Traits       []Trait `json:"traits"`
}

// TraitSymbols returns the symbols of all traits in API order.
func (w Waypoint) TraitSymbols() []string {
	out := make([]string, 0, len(w.Traits))
	for _, t := range w.Traits {
		if t.Symbol != "" {
			out = append(out, t.Symbol)
		}
	}
	return out
}

// Trait is a waypoint tag. The API sends objects, but bare strings are
// accepted too since some listings flatten them.
type Trait struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

func (t *Trait) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Trait{Symbol: s}
		return nil
	}
	type plain Trait
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Trait(p)
	return nil
}

// Coord is a map coordinate. A value that is not a number decodes as an
// invalid Coord instead of failing the enclosing listing.
type Coord struct {
	Value float64
	Valid bool
}

// At returns a valid coordinate.
func At(v float64) Coord { return Coord{Value: v, Valid: true} }

func (c *Coord) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*c = At(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*c = At(f)
			return nil
		}
	}
	*c = Coord{}
	return nil
}

func (c Coord) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// System is a star system listing entry.
type System struct {
	Symbol       string          `json:"symbol"`
	SectorSymbol string          `json:"sectorSymbol"`
	Type         string          `json:"type"`
	X            Coord           `json:"x"`
	Y            Coord           `json:"y"`
	Waypoints    []RouteWaypoint `json:"waypoints"`
}

// NormalizeSymbol trims and upper-cases a waypoint or system symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// SystemSymbol derives the owning system from a waypoint symbol: the first two
// dash-delimited segments. Returns "" when the symbol has fewer than two segments.
func SystemSymbol(waypoint string) string {
	parts := strings.Split(NormalizeSymbol(waypoint), "-")
	if len(parts) < 2 {
		return ""
	}
	return parts[0] + "-" + parts[1]
}
