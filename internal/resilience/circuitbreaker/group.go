package circuitbreaker

import (
	"sync"
	"time"

	"beer-catalog/internal/observability/metrics"

	"github.com/sony/gobreaker"
)

// DefaultMaxKeys bounds the number of circuits a Group keeps.
const DefaultMaxKeys = 1024

// Group holds one circuit breaker per key, e.g. per upstream host, so that a
// failing key never rejects calls for another.
//
// Keys are caller supplied, so the group is bounded: once MaxKeys circuits
// exist the least recently used one is dropped, preferring closed circuits.
type Group struct {
	cfg     Config
	maxKeys int
	now     func() time.Time

	mu       sync.Mutex
	breakers map[string]*groupEntry
}

type groupEntry struct {
	cb       *CircuitBreaker
	lastUsed time.Time
}

// NewGroup creates a keyed breaker group. Every circuit uses cfg with the name
// "<cfg.Name>/<key>". maxKeys <= 0 means DefaultMaxKeys.
func NewGroup(cfg Config, maxKeys int) *Group {
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}
	return &Group{
		cfg:      cfg,
		maxKeys:  maxKeys,
		now:      time.Now,
		breakers: make(map[string]*groupEntry),
	}
}

// Name returns the group name.
func (g *Group) Name() string {
	return g.cfg.Name
}

// Get returns the circuit for key, creating it on first use.
func (g *Group) Get(key string) *CircuitBreaker {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if e, ok := g.breakers[key]; ok {
		e.lastUsed = now
		return e.cb
	}

	if len(g.breakers) >= g.maxKeys {
		g.evictLocked()
	}

	cfg := g.cfg
	cfg.Name = g.cfg.Name + "/" + key
	group := g.cfg.Name
	cfg.OnStateChange = func(_ string, from, to gobreaker.State) {
		switch {
		case to == gobreaker.StateOpen:
			metrics.RecordBreakerOpened(group)
		case from == gobreaker.StateOpen:
			metrics.RecordBreakerClosed(group)
		}
	}

	cb := New(cfg)
	g.breakers[key] = &groupEntry{cb: cb, lastUsed: now}
	return cb
}

// evictLocked drops the least recently used closed circuit, or the least
// recently used circuit of any state when none is closed.
func (g *Group) evictLocked() {
	var (
		victim       string
		victimAt     time.Time
		closedVictim string
		closedAt     time.Time
	)
	for key, e := range g.breakers {
		if victim == "" || e.lastUsed.Before(victimAt) {
			victim, victimAt = key, e.lastUsed
		}
		if e.cb.breaker.State() == gobreaker.StateClosed &&
			(closedVictim == "" || e.lastUsed.Before(closedAt)) {
			closedVictim, closedAt = key, e.lastUsed
		}
	}
	if closedVictim != "" {
		victim = closedVictim
	}
	if e, ok := g.breakers[victim]; ok {
		if e.cb.breaker.State() == gobreaker.StateOpen {
			metrics.RecordBreakerClosed(g.cfg.Name)
		}
		delete(g.breakers, victim)
	}
}

// Len returns the number of circuits currently held.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.breakers)
}

// OpenCount returns how many circuits are open.
func (g *Group) OpenCount() int {
	g.mu.Lock()
	cbs := make([]*CircuitBreaker, 0, len(g.breakers))
	for _, e := range g.breakers {
		cbs = append(cbs, e.cb)
	}
	g.mu.Unlock()

	n := 0
	for _, cb := range cbs {
		if cb.IsOpen() {
			n++
		}
	}
	return n
}
