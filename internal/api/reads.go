package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"FleetConsole/internal/cache"
	"FleetConsole/internal/client"
	"FleetConsole/internal/model"
	"FleetConsole/internal/paginate"
)

// Page is one page of a listing.
type Page[T any] struct {
	Items []T
	Meta  *model.Meta
}

func get[T any](ctx context.Context, t Transport, path string, query url.Values) (model.Envelope[T], error) {
	var env model.Envelope[T]
	err := t.Do(ctx, http.MethodGet, path, query, nil, &env)
	return env, err
}

func cachedGet[T any](ctx context.Context, s *Session, ttl time.Duration, key, path string, query url.Values) (T, error) {
	return cache.GetOrCompute(s.cache, key, ttl, func() (T, error) {
		env, err := get[T](ctx, s.transport, path, query)
		return env.Data, err
	})
}

func cachedPage[T any](ctx context.Context, s *Session, ttl time.Duration, key, path string, query url.Values) (Page[T], error) {
	return cache.GetOrCompute(s.cache, key, ttl, func() (Page[T], error) {
		env, err := get[[]T](ctx, s.transport, path, query)
		if err != nil {
			return Page[T]{}, err
		}
		return Page[T]{Items: env.Data, Meta: env.Meta}, nil
	})
}

func pageQuery(page, limit int) (int, int, url.Values) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > paginate.MaxPageSize {
		limit = paginate.MaxPageSize
	}
	return page, limit, url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
}

func requireSymbol(field, v string) (string, error) {
	v = model.NormalizeSymbol(v)
	if v == "" {
		return "", client.Invalid(field, "symbol is required")
	}
	return v, nil
}

// Agent returns the agent bound to the token.
func (s *Session) Agent(ctx context.Context) (model.Agent, error) {
	return cachedGet[model.Agent](ctx, s, s.ttl.Agent, cache.Key("agent"), "/my/agent", nil)
}

// Ships returns one page of the fleet.
func (s *Session) Ships(ctx context.Context, page, limit int) (Page[model.Ship], error) {
	page, limit, q := pageQuery(page, limit)
	return cachedPage[model.Ship](ctx, s, s.ttl.Ships, cache.Key("ships", page, limit), "/my/ships", q)
}

// Ship returns a single ship.
func (s *Session) Ship(ctx context.Context, symbol string) (model.Ship, error) {
	sym, err := requireSymbol("ship", symbol)
	if err != nil {
		return model.Ship{}, err
	}
	return cachedGet[model.Ship](ctx, s, s.ttl.Ships, cache.Key("ship", sym), "/my/ships/"+sym, nil)
}

// NavStatus reads a ship's navigation state. It is never cached.
func (s *Session) NavStatus(ctx context.Context, symbol string) (model.ShipNav, error) {
	sym, err := requireSymbol("ship", symbol)
	if err != nil {
		return model.ShipNav{}, err
	}
	env, err := get[model.ShipNav](ctx, s.transport, "/my/ships/"+sym+"/nav", nil)
	return env.Data, err
}

// Contracts returns one page of contracts.
func (s *Session) Contracts(ctx context.Context, page, limit int) (Page[model.Contract], error) {
	page, limit, q := pageQuery(page, limit)
	return cachedPage[model.Contract](ctx, s, s.ttl.Contracts, cache.Key("contracts", page, limit), "/my/contracts", q)
}

// Contract returns a single contract.
func (s *Session) Contract(ctx context.Context, id string) (model.Contract, error) {
	if id == "" {
		return model.Contract{}, client.Invalid("contract", "id is required")
	}
	return cachedGet[model.Contract](ctx, s, s.ttl.Contracts, cache.Key("contract", id), "/my/contracts/"+url.PathEscape(id), nil)
}

// Systems returns one page of the system listing.
func (s *Session) Systems(ctx context.Context, page, limit int) (Page[model.System], error) {
	page, limit, q := pageQuery(page, limit)
	return cachedPage[model.System](ctx, s, s.ttl.Systems, cache.Key("systems", page, limit), "/systems", q)
}

// Waypoints returns one page of a system's waypoints, optionally filtered by trait.
func (s *Session) Waypoints(ctx context.Context, system string, page, limit int, traits string) (Page[model.Waypoint], error) {
	sys, err := requireSymbol("system", system)
	if err != nil {
		return Page[model.Waypoint]{}, err
	}
	page, limit, q := pageQuery(page, limit)
	if traits != "" {
		q.Set("traits", traits)
	}
	key := cache.Key("waypoints", sys, page, limit, traits)
	return cachedPage[model.Waypoint](ctx, s, s.ttl.Waypoints, key, "/systems/"+sys+"/waypoints", q)
}

// Waypoint returns one waypoint; the system is derived from its symbol.
func (s *Session) Waypoint(ctx context.Context, symbol string) (model.Waypoint, error) {
	wp, sys, err := waypointAndSystem(symbol)
	if err != nil {
		return model.Waypoint{}, err
	}
	path := fmt.Sprintf("/systems/%s/waypoints/%s", sys, wp)
	return cachedGet[model.Waypoint](ctx, s, s.ttl.Waypoints, cache.Key("waypoint", wp), path, nil)
}

// Market returns the market snapshot at a waypoint.
func (s *Session) Market(ctx context.Context, waypoint string) (model.Market, error) {
	wp, sys, err := waypointAndSystem(waypoint)
	if err != nil {
		return model.Market{}, err
	}
	path := fmt.Sprintf("/systems/%s/waypoints/%s/market", sys, wp)
	return cachedGet[model.Market](ctx, s, s.ttl.Market, cache.Key("market", wp), path, nil)
}

// Shipyard returns the shipyard snapshot at a waypoint.
func (s *Session) Shipyard(ctx context.Context, waypoint string) (model.Shipyard, error) {
	wp, sys, err := waypointAndSystem(waypoint)
	if err != nil {
		return model.Shipyard{}, err
	}
	path := fmt.Sprintf("/systems/%s/waypoints/%s/shipyard", sys, wp)
	return cachedGet[model.Shipyard](ctx, s, s.ttl.Shipyard, cache.Key("shipyard", wp), path, nil)
}

// SystemWaypoints returns every waypoint of a system, up to the page ceiling.
func (s *Session) SystemWaypoints(ctx context.Context, system string) ([]model.Waypoint, error) {
	sys, err := requireSymbol("system", system)
	if err != nil {
		return nil, err
	}
	key := cache.Key("system_waypoints", sys, s.pageSize, s.maxPages)
	return cache.GetOrCompute(s.cache, key, s.ttl.Waypoints, func() ([]model.Waypoint, error) {
		return paginate.CollectAll(ctx, func(ctx context.Context, page, limit int) ([]model.Waypoint, *model.Meta, error) {
			_, _, q := pageQuery(page, limit)
			env, err := get[[]model.Waypoint](ctx, s.transport, "/systems/"+sys+"/waypoints", q)
			return env.Data, env.Meta, err
		}, s.pageSize, s.maxPages)
	})
}

// AllShips returns the whole fleet, one cached page at a time.
func (s *Session) AllShips(ctx context.Context) ([]model.Ship, error) {
	return paginate.CollectAll(ctx, func(ctx context.Context, page, limit int) ([]model.Ship, *model.Meta, error) {
		p, err := s.Ships(ctx, page, limit)
		return p.Items, p.Meta, err
	}, s.pageSize, s.maxPages)
}

// AllContracts returns every contract, one cached page at a time.
func (s *Session) AllContracts(ctx context.Context) ([]model.Contract, error) {
	return paginate.CollectAll(ctx, func(ctx context.Context, page, limit int) ([]model.Contract, *model.Meta, error) {
		p, err := s.Contracts(ctx, page, limit)
		return p.Items, p.Meta, err
	}, s.pageSize, s.maxPages)
}

func waypointAndSystem(symbol string) (string, string, error) {
	wp, err := requireSymbol("waypoint", symbol)
	if err != nil {
		return "", "", err
	}
	sys := model.SystemSymbol(wp)
	if sys == "" {
		return "", "", client.Invalid("waypoint", "unable to determine system for waypoint %q", wp)
	}
	return wp, sys, nil
}
