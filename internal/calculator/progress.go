package calculator

import (
	"time"

	"FleetConsole/internal/model"
)

// Progress is the travel state of a route at a point in time.
type Progress struct {
	Known    bool    // false when timestamps are missing, unparsable or inverted
	Fraction float64 // 0.0 ~ 1.0, meaningful only when Known
	ETA      string
	Arrival  time.Time
}

// ParseTimestamp parses an API timestamp. ok is false for empty or malformed input.
func ParseTimestamp(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// TravelProgress computes the elapsed fraction and remaining time of a route.
func TravelProgress(route model.NavRoute, now time.Time) Progress {
	dep, ok1 := ParseTimestamp(route.DepartureTime)
	arr, ok2 := ParseTimestamp(route.Arrival)
	if !ok1 || !ok2 {
		return Progress{ETA: Unknown}
	}
	total := arr.Sub(dep).Seconds()
	if total <= 0 {
		return Progress{ETA: Unknown}
	}

	fraction := now.Sub(dep).Seconds() / total
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	remaining := arr.Sub(now).Seconds()
	if remaining < 0 {
		remaining = 0
	}
	return Progress{
		Known:    true,
		Fraction: fraction,
		ETA:      HumanizeSeconds(remaining),
		Arrival:  arr,
	}
}
