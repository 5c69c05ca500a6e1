package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"

	"FleetConsole/internal/calculator"
	"FleetConsole/internal/client"
	"FleetConsole/internal/model"
	"FleetConsole/internal/recorder"
)

type tradeBody struct {
	Symbol string `json:"symbol"`
	Units  int    `json:"units"`
}

type navigateBody struct {
	WaypointSymbol string `json:"waypointSymbol"`
}

type courseBody struct {
	Course struct {
		Destination string `json:"destination"`
	} `json:"course"`
}

type extractBody struct {
	Survey *model.Survey `json:"survey,omitempty"`
}

type transferBody struct {
	TradeSymbol string `json:"tradeSymbol"`
	Units       int    `json:"units"`
	ShipSymbol  string `json:"shipSymbol"`
}

type deliverBody struct {
	ShipSymbol  string `json:"shipSymbol"`
	TradeSymbol string `json:"tradeSymbol"`
	Units       int    `json:"units"`
}

type purchaseShipBody struct {
	ShipType       string `json:"shipType"`
	WaypointSymbol string `json:"waypointSymbol"`
}

// command POSTs body to path. It is never cached; a request the server
// accepted clears the cache, even when its result body fails to decode.
// Every outcome is journaled.
func command[T any](ctx context.Context, s *Session, action, target, path string, body any) (T, error) {
	var env model.Envelope[T]
	err := s.transport.Do(ctx, http.MethodPost, path, nil, body, &env)
	accepted := err == nil || client.IsDecodeError(err)
	s.journal(action, target, accepted, err)
	if accepted {
		s.cache.InvalidateAll()
	}
	if err != nil && accepted {
		log.Printf("[WARN] %s %s accepted but result unreadable: %v", action, target, err)
	}
	return env.Data, err
}

func (s *Session) journal(action, target string, ok bool, err error) {
	evt := &recorder.CommandEvent{SessionID: s.ID, Action: action, Target: target, OK: ok}
	if err != nil {
		evt.Error = err.Error()
		if cd, ok := structuredCooldown(err); ok {
			evt.CooldownSeconds = cd
		}
	}
	if rerr := s.recorder.RecordCommand(evt); rerr != nil {
		log.Printf("[ERROR] journal %s %s: %v", action, target, rerr)
	}
}

func shipPath(ship, action string) string {
	return "/my/ships/" + ship + "/" + action
}

func requireUnits(units int) error {
	if units <= 0 {
		return client.Invalid("units", "must be positive, got %d", units)
	}
	return nil
}

// Orbit moves a docked ship into orbit.
func (s *Session) Orbit(ctx context.Context, ship string) (model.NavResult, error) {
	sym, err := requireSymbol("ship", ship)
	if err != nil {
		return model.NavResult{}, err
	}
	return command[model.NavResult](ctx, s, "orbit", sym, shipPath(sym, "orbit"), nil)
}

// Dock docks an orbiting ship.
func (s *Session) Dock(ctx context.Context, ship string) (model.NavResult, error) {
	sym, err := requireSymbol("ship", ship)
	if err != nil {
		return model.NavResult{}, err
	}
	return command[model.NavResult](ctx, s, "dock", sym, shipPath(sym, "dock"), nil)
}

// Refuel fills the tank at the current market.
func (s *Session) Refuel(ctx context.Context, ship string) (model.RefuelResult, error) {
	sym, err := requireSymbol("ship", ship)
	if err != nil {
		return model.RefuelResult{}, err
	}
	return command[model.RefuelResult](ctx, s, "refuel", sym, shipPath(sym, "refuel"), nil)
}

// Navigate sends a ship to a waypoint. If the server rejects the direct
// waypointSymbol body with an error naming the course field, the request is
// repeated once with the course-wrapped body.
func (s *Session) Navigate(ctx context.Context, ship, waypoint string) (model.NavigateResult, error) {
	sym, err := requireSymbol("ship", ship)
	if err != nil {
		return model.NavigateResult{}, err
	}
	wp, err := requireSymbol("waypoint", waypoint)
	if err != nil {
		return model.NavigateResult{}, err
	}
	path := shipPath(sym, "navigate")

	res, err := command[model.NavigateResult](ctx, s, "navigate", sym, path, navigateBody{WaypointSymbol: wp})
	if err == nil || !client.IsCourseShapeError(err) {
		return res, err
	}

	log.Printf("[WARN] navigate %s: direct destination body rejected, retrying with course body", sym)
	var alt courseBody
	alt.Course.Destination = wp
	return command[model.NavigateResult](ctx, s, "navigate", sym, path, alt)
}

// Extract mines at the current waypoint, optionally guided by a survey.
func (s *Session) Extract(ctx context.Context, ship string, sv *model.Survey) (model.ExtractResult, error) {
	sym, err := requireSymbol("ship", ship)
	if err != nil {
		return model.ExtractResult{}, err
	}
	return command[model.ExtractResult](ctx, s, "extract", sym, shipPath(sym, "extract"), extractBody{Survey: sv})
}

// ExtractWithSurvey pops the ship's idx-th stored survey and extracts with it.
// The survey goes back into the store if the server rejects the extraction.
func (s *Session) ExtractWithSurvey(ctx context.Context, ship string, idx int) (model.ExtractResult, error) {
	sym, err := requireSymbol("ship", ship)
	if err != nil {
		return model.ExtractResult{}, err
	}
	sv, err := s.Surveys.Take(sym, idx)
	if err != nil {
		return model.ExtractResult{}, client.Invalid("survey", "%v", err)
	}
	res, err := s.Extract(ctx, sym, &sv)
	if err != nil {
		if !client.IsDecodeError(err) {
			s.Surveys.Restore(sym, idx, sv)
		}
		return res, err
	}
	return res, nil
}

// Survey scans the current waypoint and stores the returned surveys for the ship.
func (s *Session) Survey(ctx context.Context, ship string) (model.SurveyResult, error) {
	sym, err := requireSymbol("ship", ship)
	if err != nil {
		return model.SurveyResult{}, err
	}
	res, err := command[model.SurveyResult](ctx, s, "survey", sym, shipPath(sym, "survey"), nil)
	if err != nil {
		return res, err
	}
	s.Surveys.Add(sym, res.Surveys...)
	return res, nil
}

// Jettison discards cargo.
func (s *Session) Jettison(ctx context.Context, ship, good string, units int) (model.CargoResult, error) {
	sym, body, err := shipTrade(ship, good, units)
	if err != nil {
		return model.CargoResult{}, err
	}
	return command[model.CargoResult](ctx, s, "jettison", sym, shipPath(sym, "jettison"), body)
}

// Sell sells cargo at the current market.
func (s *Session) Sell(ctx context.Context, ship, good string, units int) (model.TradeResult, error) {
	sym, body, err := shipTrade(ship, good, units)
	if err != nil {
		return model.TradeResult{}, err
	}
	return command[model.TradeResult](ctx, s, "sell", sym, shipPath(sym, "sell"), body)
}

// Buy purchases goods at the current market.
func (s *Session) Buy(ctx context.Context, ship, good string, units int) (model.TradeResult, error) {
	sym, body, err := shipTrade(ship, good, units)
	if err != nil {
		return model.TradeResult{}, err
	}
	return command[model.TradeResult](ctx, s, "buy", sym, shipPath(sym, "purchase"), body)
}

// Transfer moves cargo between two ships at the same waypoint.
func (s *Session) Transfer(ctx context.Context, from, to, good string, units int) (model.TransferResult, error) {
	src, body, err := shipTrade(from, good, units)
	if err != nil {
		return model.TransferResult{}, err
	}
	dst, err := requireSymbol("target ship", to)
	if err != nil {
		return model.TransferResult{}, err
	}
	return command[model.TransferResult](ctx, s, "transfer", src, shipPath(src, "transfer"),
		transferBody{TradeSymbol: body.Symbol, Units: body.Units, ShipSymbol: dst})
}

// Deliver hands cargo over against a contract.
func (s *Session) Deliver(ctx context.Context, contractID, ship, good string, units int) (model.DeliverResult, error) {
	if contractID == "" {
		return model.DeliverResult{}, client.Invalid("contract", "id is required")
	}
	sym, body, err := shipTrade(ship, good, units)
	if err != nil {
		return model.DeliverResult{}, err
	}
	return command[model.DeliverResult](ctx, s, "deliver", contractID,
		"/my/contracts/"+url.PathEscape(contractID)+"/deliver",
		deliverBody{ShipSymbol: sym, TradeSymbol: body.Symbol, Units: body.Units})
}

// AcceptContract accepts an offered contract.
func (s *Session) AcceptContract(ctx context.Context, contractID string) (model.AcceptResult, error) {
	if contractID == "" {
		return model.AcceptResult{}, client.Invalid("contract", "id is required")
	}
	return command[model.AcceptResult](ctx, s, "accept", contractID,
		"/my/contracts/"+url.PathEscape(contractID)+"/accept", nil)
}

// PurchaseShip buys a ship at a shipyard waypoint.
func (s *Session) PurchaseShip(ctx context.Context, shipType, waypoint string) (model.PurchaseShipResult, error) {
	typ := model.NormalizeSymbol(shipType)
	if typ == "" {
		return model.PurchaseShipResult{}, client.Invalid("ship type", "is required")
	}
	wp, err := requireSymbol("waypoint", waypoint)
	if err != nil {
		return model.PurchaseShipResult{}, err
	}
	return command[model.PurchaseShipResult](ctx, s, "purchase_ship", wp, "/my/ships",
		purchaseShipBody{ShipType: typ, WaypointSymbol: wp})
}

// Repair restores a docked ship at a shipyard.
func (s *Session) Repair(ctx context.Context, ship string) (model.RepairResult, error) {
	sym, err := requireSymbol("ship", ship)
	if err != nil {
		return model.RepairResult{}, err
	}
	return command[model.RepairResult](ctx, s, "repair", sym, shipPath(sym, "repair"), nil)
}

// Scrap sells a docked ship for parts.
func (s *Session) Scrap(ctx context.Context, ship string) (model.ScrapResult, error) {
	sym, err := requireSymbol("ship", ship)
	if err != nil {
		return model.ScrapResult{}, err
	}
	return command[model.ScrapResult](ctx, s, "scrap", sym, shipPath(sym, "scrap"), nil)
}

func shipTrade(ship, good string, units int) (string, tradeBody, error) {
	sym, err := requireSymbol("ship", ship)
	if err != nil {
		return "", tradeBody{}, err
	}
	g, err := requireSymbol("trade symbol", good)
	if err != nil {
		return "", tradeBody{}, err
	}
	if err := requireUnits(units); err != nil {
		return "", tradeBody{}, err
	}
	return sym, tradeBody{Symbol: g, Units: units}, nil
}

// CooldownHint estimates how many seconds to wait before retrying a failed
// command. It prefers the structured cooldown in the error body and falls
// back to matching remainingSeconds in the error text. Advisory only.
func CooldownHint(err error) int {
	if err == nil {
		return 0
	}
	if cd, ok := structuredCooldown(err); ok {
		return cd
	}
	return calculator.ExtractCooldownSeconds(err.Error(), calculator.DefaultCooldownSeconds)
}

func structuredCooldown(err error) (int, bool) {
	var te *client.TransportError
	if errors.As(err, &te) {
		return te.RemainingCooldown()
	}
	return 0, false
}
