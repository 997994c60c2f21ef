package core

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestStore() (*SessionStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewSessionStore()
	s.now = clock.Now
	return s, clock
}

func TestSessionStore_Isolation(t *testing.T) {
	s, _ := newTestStore()
	a := &Dataset{FileName: "a.csv"}
	b := &Dataset{FileName: "b.csv"}

	s.Put("alice", a)
	s.Put("bob", b)

	got, ok := s.Get("alice")
	if !ok || got != a {
		t.Errorf("Get(alice) = %v, want a.csv", got)
	}
	got, ok = s.Get("bob")
	if !ok || got != b {
		t.Errorf("Get(bob) = %v, want b.csv", got)
	}
	if _, ok := s.Get("carol"); ok {
		t.Error("Get(carol) found data for a session that never uploaded")
	}
}

func TestSessionStore_Replace(t *testing.T) {
	s, _ := newTestStore()
	s.Put("alice", &Dataset{FileName: "first.csv"})
	s.Put("alice", &Dataset{FileName: "second.csv"})

	got, _ := s.Get("alice")
	if got.FileName != "second.csv" {
		t.Errorf("FileName = %q, want second.csv", got.FileName)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestSessionStore_Evict(t *testing.T) {
	s, clock := newTestStore()
	s.Put("idle", &Dataset{})
	s.Put("busy", &Dataset{})

	clock.Advance(90 * time.Minute)
	s.Get("busy")
	clock.Advance(60 * time.Minute)

	if removed := s.Evict(2 * time.Hour); removed != 1 {
		t.Errorf("Evict() = %d, want 1", removed)
	}
	if s.Has("idle") {
		t.Error("idle session should be evicted")
	}
	if !s.Has("busy") {
		t.Error("recently used session should be kept")
	}
}

func TestSessionStore_Delete(t *testing.T) {
	s, _ := newTestStore()
	s.Put("alice", &Dataset{})
	s.Delete("alice")
	if s.Has("alice") || s.Len() != 0 {
		t.Error("Delete did not remove the session")
	}
}

func TestSessionStore_Concurrent(t *testing.T) {
	s, _ := newTestStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i%5)
			s.Put(id, &Dataset{FileName: id})
			if d, ok := s.Get(id); ok && d.FileName != id {
				t.Errorf("session %s saw %s", id, d.FileName)
			}
			s.Evict(time.Hour)
		}(i)
	}
	wg.Wait()
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
}
