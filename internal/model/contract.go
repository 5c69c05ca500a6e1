package model

// Contract lifecycle: offered -> accepted -> delivered 0..n times -> fulfilled or expired.
type Contract struct {
	ID               string        `json:"id"`
	FactionSymbol    string        `json:"factionSymbol"`
	Type             string        `json:"type"`
	Terms            ContractTerms `json:"terms"`
	Accepted         bool          `json:"accepted"`
	Fulfilled        bool          `json:"fulfilled"`
	DeadlineToAccept string        `json:"deadlineToAccept,omitempty"`
}

type ContractTerms struct {
	Deadline string          `json:"deadline"`
	Payment  ContractPayment `json:"payment"`
	Deliver  []Deliverable   `json:"deliver"`
}

type ContractPayment struct {
	OnAccepted  int64 `json:"onAccepted"`
	OnFulfilled int64 `json:"onFulfilled"`
}

type Deliverable struct {
	TradeSymbol       string `json:"tradeSymbol"`
	DestinationSymbol string `json:"destinationSymbol"`
	UnitsRequired     int    `json:"unitsRequired"`
	UnitsFulfilled    int    `json:"unitsFulfilled"`
}

// Active reports whether the contract has been accepted but not yet fulfilled.
func (c Contract) Active() bool { return c.Accepted && !c.Fulfilled }
