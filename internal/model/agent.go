package model

// Agent is the player account bound to the bearer token.
type Agent struct {
	AccountID       string `json:"accountId,omitempty"`
	Symbol          string `json:"symbol"`
	Headquarters    string `json:"headquarters"`
	Credits         int64  `json:"credits"`
	StartingFaction string `json:"startingFaction"`
	ShipCount       int    `json:"shipCount"`
}
