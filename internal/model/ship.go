package model

// NavStatus is the navigation state of a ship.
type NavStatus string

const (
	StatusInTransit NavStatus = "IN_TRANSIT"
	StatusDocked    NavStatus = "DOCKED"
	StatusInOrbit   NavStatus = "IN_ORBIT"
)

// Ship mirrors a remote ship record.
type Ship struct {
	Symbol       string       `json:"symbol"`
	Registration Registration `json:"registration"`
	Nav          ShipNav      `json:"nav"`
	Frame        Component    `json:"frame"`
	Reactor      Component    `json:"reactor"`
	Engine       Component    `json:"engine"`
	Modules      []Component  `json:"modules"`
	Mounts       []Component  `json:"mounts"`
	Cargo        Cargo        `json:"cargo"`
	Fuel         Fuel         `json:"fuel"`
	Cooldown     *Cooldown    `json:"cooldown,omitempty"`
}

type Registration struct {
	Name          string `json:"name"`
	FactionSymbol string `json:"factionSymbol"`
	Role          string `json:"role"`
}

// ShipNav holds the current position and, while travelling, the active route.
type ShipNav struct {
	SystemSymbol   string    `json:"systemSymbol"`
	WaypointSymbol string    `json:"waypointSymbol"`
	Route          NavRoute  `json:"route"`
	Status         NavStatus `json:"status"`
	FlightMode     string    `json:"flightMode"`
}

// NavRoute timestamps are kept as the raw RFC 3339 strings the API sends;
// see calculator.TravelProgress for parsing.
type NavRoute struct {
	Destination   RouteWaypoint `json:"destination"`
	Origin        RouteWaypoint `json:"origin"`
	DepartureTime string        `json:"departureTime"`
	Arrival       string        `json:"arrival"`
}

type RouteWaypoint struct {
	Symbol       string `json:"symbol"`
	Type         string `json:"type"`
	SystemSymbol string `json:"systemSymbol"`
	X            Coord  `json:"x"`
	Y            Coord  `json:"y"`
}

// Component describes a frame, reactor, engine, module or mount.
type Component struct {
	Symbol      string   `json:"symbol"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Condition   *float64 `json:"condition,omitempty"`
	Integrity   *float64 `json:"integrity,omitempty"`
	Strength    int      `json:"strength,omitempty"`
	Capacity    int      `json:"capacity,omitempty"`
}

type Cargo struct {
	Capacity  int         `json:"capacity"`
	Units     int         `json:"units"`
	Inventory []CargoItem `json:"inventory"`
}

type CargoItem struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Units         int    `json:"units"`
	PurchasePrice int    `json:"purchasePrice,omitempty"`
	SellPrice     int    `json:"sellPrice,omitempty"`
}

type Fuel struct {
	Current  int `json:"current"`
	Capacity int `json:"capacity"`
}

type Cooldown struct {
	ShipSymbol       string `json:"shipSymbol"`
	TotalSeconds     int    `json:"totalSeconds"`
	RemainingSeconds int    `json:"remainingSeconds"`
	Expiration       string `json:"expiration,omitempty"`
}
