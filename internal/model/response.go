package model

// Envelope is the {data, meta} wrapper every API response uses.
type Envelope[T any] struct {
	Data T     `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries listing metadata. Some deployments report totalPages directly,
// others only total and limit.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages,omitempty"`
}

// Pages returns the reported page count, 0 when unknown.
func (m *Meta) Pages() int {
	if m == nil {
		return 0
	}
	if m.TotalPages > 0 {
		return m.TotalPages
	}
	if m.Total > 0 && m.Limit > 0 {
		return (m.Total + m.Limit - 1) / m.Limit
	}
	return 0
}

// Command results.

type NavResult struct {
	Nav ShipNav `json:"nav"`
}

type NavigateResult struct {
	Nav  ShipNav `json:"nav"`
	Fuel Fuel    `json:"fuel"`
}

type RefuelResult struct {
	Agent       Agent       `json:"agent"`
	Fuel        Fuel        `json:"fuel"`
	Transaction Transaction `json:"transaction"`
}

type Yield struct {
	Symbol string `json:"symbol"`
	Units  int    `json:"units"`
}

type Extraction struct {
	ShipSymbol string `json:"shipSymbol"`
	Yield      Yield  `json:"yield"`
}

type ExtractResult struct {
	Extraction Extraction `json:"extraction"`
	Cooldown   Cooldown   `json:"cooldown"`
	Cargo      Cargo      `json:"cargo"`
}

type SurveyResult struct {
	Cooldown Cooldown `json:"cooldown"`
	Surveys  []Survey `json:"surveys"`
}

type CargoResult struct {
	Cargo Cargo `json:"cargo"`
}

type TradeResult struct {
	Agent       Agent       `json:"agent"`
	Cargo       Cargo       `json:"cargo"`
	Transaction Transaction `json:"transaction"`
}

type DeliverResult struct {
	Contract Contract `json:"contract"`
	Cargo    Cargo    `json:"cargo"`
}

type AcceptResult struct {
	Agent    Agent    `json:"agent"`
	Contract Contract `json:"contract"`
}

type PurchaseShipResult struct {
	Agent       Agent       `json:"agent"`
	Ship        Ship        `json:"ship"`
	Transaction Transaction `json:"transaction"`
}

type RepairResult struct {
	Agent       Agent       `json:"agent"`
	Ship        Ship        `json:"ship"`
	Transaction Transaction `json:"transaction"`
}

type ScrapResult struct {
	Agent       Agent       `json:"agent"`
	Transaction Transaction `json:"transaction"`
}

type TransferResult struct {
	Cargo       Cargo `json:"cargo"`
	TargetCargo Cargo `json:"targetCargo"`
}
