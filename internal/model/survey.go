package model

import "time"

// Survey is a time-limited extraction hint produced by the survey command.
type Survey struct {
	Signature  string        `json:"signature"`
	Symbol     string        `json:"symbol"`
	Deposits   []SurveyDepot `json:"deposits"`
	Expiration string        `json:"expiration"`
	Size       string        `json:"size"`
}

type SurveyDepot struct {
	Symbol string `json:"symbol"`
}

// Expired reports whether the survey expiration is at or before now.
// A survey whose expiration cannot be parsed is treated as live and left for
// the server to reject.
func (s Survey) Expired(now time.Time) bool {
	exp, err := time.Parse(time.RFC3339Nano, s.Expiration)
	if err != nil {
		return false
	}
	return !exp.After(now)
}
