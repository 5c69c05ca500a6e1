package calculator

import (
	"regexp"
	"strconv"
)

// DefaultCooldownSeconds is assumed when an error does not say how long to wait.
const DefaultCooldownSeconds = 60

var remainingSecondsRe = regexp.MustCompile(`remainingSeconds['"]?:\s*(\d+)`)

// ExtractCooldownSeconds finds a remainingSeconds field in an error payload's
// text form. Returns fallback when absent or unparsable.
func ExtractCooldownSeconds(errText string, fallback int) int {
	m := remainingSecondsRe.FindStringSubmatch(errText)
	if m == nil {
		return fallback
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return fallback
	}
	return n
}
