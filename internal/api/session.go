// Package api exposes one typed accessor per game resource. Reads go through
// the session cache; commands bypass it and clear it on success.
package api

import (
	"context"
	"log"
	"net/url"
	"time"

	"github.com/google/uuid"

	"FleetConsole/internal/cache"
	"FleetConsole/internal/paginate"
	"FleetConsole/internal/recorder"
	"FleetConsole/internal/survey"
)

// Transport is the request contract accessors are built on. *client.Client
// satisfies it.
type Transport interface {
	Do(ctx context.Context, method, path string, query url.Values, body any, out any) error
}

// TTLs are the per-resource freshness windows.
type TTLs struct {
	Agent     time.Duration
	Ships     time.Duration
	Contracts time.Duration
	Systems   time.Duration
	Waypoints time.Duration
	Market    time.Duration
	Shipyard  time.Duration
}

// DefaultTTLs reflect how volatile each resource is.
func DefaultTTLs() TTLs {
	return TTLs{
		Agent:     60 * time.Second,
		Ships:     30 * time.Second,
		Contracts: 60 * time.Second,
		Systems:   300 * time.Second,
		Waypoints: 300 * time.Second,
		Market:    120 * time.Second,
		Shipyard:  300 * time.Second,
	}
}

// Session owns everything scoped to one bearer token: transport, cache,
// surveys and the command journal. Create one per token; Close it when done.
type Session struct {
	ID      string
	Surveys *survey.Store

	transport Transport
	cache     *cache.Cache
	ttl       TTLs
	recorder  recorder.Recorder
	pageSize  int
	maxPages  int
}

// Option configures a Session.
type Option func(*Session)

func WithTTLs(ttl TTLs) Option { return func(s *Session) { s.ttl = ttl } }

func WithCache(c *cache.Cache) Option { return func(s *Session) { s.cache = c } }

func WithRecorder(r recorder.Recorder) Option { return func(s *Session) { s.recorder = r } }

func WithSurveys(st *survey.Store) Option { return func(s *Session) { s.Surveys = st } }

// WithPaging sets the page size and page ceiling used by the aggregated listings.
func WithPaging(pageSize, maxPages int) Option {
	return func(s *Session) {
		s.pageSize = pageSize
		s.maxPages = maxPages
	}
}

// WithID overrides the generated session ID.
func WithID(id string) Option { return func(s *Session) { s.ID = id } }

// NewSession creates a session over t.
func NewSession(t Transport, opts ...Option) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		transport: t,
		ttl:       DefaultTTLs(),
		pageSize:  paginate.MaxPageSize,
		maxPages:  5,
	}
	for _, o := range opts {
		o(s)
	}
	if s.cache == nil {
		s.cache = cache.New()
	}
	if s.Surveys == nil {
		s.Surveys = survey.NewStore()
	}
	if s.recorder == nil {
		s.recorder = recorder.NewNoopRecorder()
	}
	return s
}

// Recorder returns the session journal.
func (s *Session) Recorder() recorder.Recorder { return s.recorder }

// Invalidate clears every cached read.
func (s *Session) Invalidate() { s.cache.InvalidateAll() }

// Close drops cached state and closes the journal.
func (s *Session) Close() error {
	s.cache.InvalidateAll()
	if err := s.recorder.Close(); err != nil {
		log.Printf("[WARN] close session %s journal: %v", s.ID, err)
		return err
	}
	return nil
}
