package survey

import (
	"sync"
	"testing"
	"time"

	"FleetConsole/internal/model"
)

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func sv(sig string, expires time.Duration) model.Survey {
	return model.Survey{Signature: sig, Expiration: base.Add(expires).Format(time.RFC3339)}
}

func TestStore_TakeAndRestore(t *testing.T) {
	s := NewStoreWithClock(func() time.Time { return base })
	s.Add("S-1", sv("a", time.Hour), sv("b", time.Hour), sv("c", time.Hour))

	got, err := s.Take("S-1", 1)
	if err != nil || got.Signature != "b" {
		t.Fatalf("expected b, got %+v err=%v", got, err)
	}
	if l := s.List("S-1"); len(l) != 2 || l[0].Signature != "a" || l[1].Signature != "c" {
		t.Fatalf("unexpected remaining list: %+v", l)
	}

	s.Restore("S-1", 1, got)
	l := s.List("S-1")
	if len(l) != 3 || l[1].Signature != "b" {
		t.Fatalf("expected b restored at index 1, got %+v", l)
	}

	if _, err := s.Take("S-1", 5); err == nil {
		t.Error("expected out-of-range error")
	}
	if _, err := s.Take("S-2", 0); err == nil {
		t.Error("expected error for ship without surveys")
	}
}

func TestStore_ExpiredDropped(t *testing.T) {
	now := base
	s := NewStoreWithClock(func() time.Time { return now })
	s.Add("S-1", sv("old", time.Minute), sv("new", time.Hour))

	now = base.Add(2 * time.Minute)
	l := s.List("S-1")
	if len(l) != 1 || l[0].Signature != "new" {
		t.Fatalf("expected only live survey, got %+v", l)
	}
	got, err := s.Take("S-1", 0)
	if err != nil || got.Signature != "new" {
		t.Fatalf("expected new, got %+v err=%v", got, err)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStoreWithClock(func() time.Time { return base })
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add("S-1", sv("x", time.Hour))
		}()
	}
	wg.Wait()

	taken := make(chan struct{}, 100)
	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Take("S-1", 0); err == nil {
				taken <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(taken)
	n := 0
	for range taken {
		n++
	}
	if n != 50 {
		t.Errorf("expected exactly 50 successful takes, got %d", n)
	}
}
