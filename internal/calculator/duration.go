package calculator

import "fmt"

// Unknown is shown when a duration or ETA cannot be computed.
const Unknown = "—"

// HumanizeSeconds renders a duration as "Ns", "Mm Ss", "Hh Mm" or "Dd Hh".
// Fractional seconds are truncated.
func HumanizeSeconds(seconds float64) string {
	s := int64(seconds)
	if s < 60 {
		return fmt.Sprintf("%ds", s)
	}
	minutes, sec := s/60, s%60
	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, sec)
	}
	hours, minutes := minutes/60, minutes%60
	if hours < 24 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	days, hours := hours/24, hours%24
	return fmt.Sprintf("%dd %dh", days, hours)
}

// HumanizeOptional is HumanizeSeconds with a placeholder for absent input.
func HumanizeOptional(seconds *float64) string {
	if seconds == nil {
		return Unknown
	}
	return HumanizeSeconds(*seconds)
}
