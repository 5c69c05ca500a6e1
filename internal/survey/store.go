// Package survey holds client-side surveys per ship for the session.
package survey

import (
	"fmt"
	"sync"
	"time"

	"FleetConsole/internal/model"
)

// Store is a per-ship survey list safe for concurrent callers.
type Store struct {
	mu     sync.Mutex
	byShip map[string][]model.Survey
	now    func() time.Time
}

func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{byShip: make(map[string][]model.Survey), now: now}
}

// Add appends surveys to a ship's list.
func (s *Store) Add(ship string, surveys ...model.Survey) {
	if len(surveys) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byShip[ship] = append(s.byShip[ship], surveys...)
}

// List returns a copy of the ship's live surveys. Expired ones are dropped.
func (s *Store) List(ship string) []model.Survey {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(ship)
	out := make([]model.Survey, len(s.byShip[ship]))
	copy(out, s.byShip[ship])
	return out
}

// Take removes and returns the survey at idx of the ship's live list.
func (s *Store) Take(ship string, idx int) (model.Survey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(ship)
	list := s.byShip[ship]
	if idx < 0 || idx >= len(list) {
		return model.Survey{}, fmt.Errorf("no survey %d for ship %s (have %d)", idx, ship, len(list))
	}
	sv := list[idx]
	s.byShip[ship] = append(list[:idx:idx], list[idx+1:]...)
	return sv, nil
}

// Restore puts a survey back at idx, or at the end when idx is out of range.
func (s *Store) Restore(ship string, idx int, sv model.Survey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.byShip[ship]
	if idx < 0 || idx > len(list) {
		idx = len(list)
	}
	out := make([]model.Survey, 0, len(list)+1)
	out = append(out, list[:idx]...)
	out = append(out, sv)
	out = append(out, list[idx:]...)
	s.byShip[ship] = out
}

// Clear drops every survey held for the ship.
func (s *Store) Clear(ship string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byShip, ship)
}

func (s *Store) pruneLocked(ship string) {
	list := s.byShip[ship]
	if len(list) == 0 {
		return
	}
	now := s.now()
	live := list[:0]
	for _, sv := range list {
		if !sv.Expired(now) {
			live = append(live, sv)
		}
	}
	if len(live) == 0 {
		delete(s.byShip, ship)
		return
	}
	s.byShip[ship] = live
}
