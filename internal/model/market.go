package model

// Market is a snapshot of a marketplace waypoint.
type Market struct {
	Symbol       string        `json:"symbol"`
	Exports      []TradeGood   `json:"exports"`
	Imports      []TradeGood   `json:"imports"`
	Exchange     []TradeGood   `json:"exchange"`
	Transactions []Transaction `json:"transactions,omitempty"`
	TradeGoods   []MarketGood  `json:"tradeGoods,omitempty"`
}

type TradeGood struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// MarketGood prices are only visible while a ship is present at the market.
type MarketGood struct {
	Symbol        string `json:"symbol"`
	Type          string `json:"type"`
	TradeVolume   int    `json:"tradeVolume"`
	Supply        string `json:"supply"`
	Activity      string `json:"activity,omitempty"`
	PurchasePrice int    `json:"purchasePrice"`
	SellPrice     int    `json:"sellPrice"`
}

// Transaction covers market trades, refuels, repairs and ship purchases.
type Transaction struct {
	WaypointSymbol string `json:"waypointSymbol"`
	ShipSymbol     string `json:"shipSymbol,omitempty"`
	ShipType       string `json:"shipType,omitempty"`
	TradeSymbol    string `json:"tradeSymbol,omitempty"`
	Type           string `json:"type,omitempty"`
	Units          int    `json:"units,omitempty"`
	PricePerUnit   int    `json:"pricePerUnit,omitempty"`
	TotalPrice     int    `json:"totalPrice,omitempty"`
	Price          int    `json:"price,omitempty"`
	Timestamp      string `json:"timestamp"`
}

// Shipyard is a snapshot of a shipyard waypoint.
type Shipyard struct {
	Symbol           string         `json:"symbol"`
	ShipTypes        []ShipTypeRef  `json:"shipTypes"`
	Transactions     []Transaction  `json:"transactions,omitempty"`
	Ships            []ShipyardShip `json:"ships,omitempty"`
	ModificationsFee int            `json:"modificationsFee"`
}

type ShipTypeRef struct {
	Type string `json:"type"`
}

type ShipyardShip struct {
	Type          string    `json:"type"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Supply        string    `json:"supply,omitempty"`
	PurchasePrice int       `json:"purchasePrice"`
	Frame         Component `json:"frame"`
	Reactor       Component `json:"reactor"`
	Engine        Component `json:"engine"`
}
