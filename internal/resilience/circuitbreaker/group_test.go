package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupConfig() Config {
	cfg := testConfig()
	cfg.Timeout = time.Minute
	return cfg
}

func tripGroupCircuit(t *testing.T, cb *CircuitBreaker) {
	t.Helper()
	for i := 0; i < 3; i++ {
		_, _ = Do(cb, func() (int, error) { return 0, errors.New("down") })
	}
	require.True(t, cb.IsOpen())
}

func TestGroup_GetReturnsSameCircuitPerKey(t *testing.T) {
	g := NewGroup(groupConfig(), 0)

	a := g.Get("a.example.com")
	assert.Same(t, a, g.Get("a.example.com"))
	assert.NotSame(t, a, g.Get("b.example.com"))
	assert.Equal(t, "test-circuit/a.example.com", a.Name())
	assert.Equal(t, "test-circuit", g.Name())
	assert.Equal(t, 2, g.Len())
}

func TestGroup_FailingKeyDoesNotAffectOthers(t *testing.T) {
	g := NewGroup(groupConfig(), 0)

	tripGroupCircuit(t, g.Get("bad.example.com"))

	out, err := Do(g.Get("good.example.com"), func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, gobreaker.StateClosed, g.Get("good.example.com").State())
	assert.Equal(t, 1, g.OpenCount())
}

func TestGroup_EvictsLeastRecentlyUsedClosedCircuit(t *testing.T) {
	g := NewGroup(groupConfig(), 2)
	clock := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return clock }

	open := g.Get("open.example.com")
	tripGroupCircuit(t, open)
	clock = clock.Add(time.Second)
	g.Get("closed.example.com")
	clock = clock.Add(time.Second)

	g.Get("new.example.com")

	assert.Equal(t, 2, g.Len())
	assert.Same(t, open, g.Get("open.example.com"), "open circuit kept over an older closed one")
}

func TestGroup_EvictsOldestWhenAllOpen(t *testing.T) {
	g := NewGroup(groupConfig(), 1)
	old := g.Get("old.example.com")
	tripGroupCircuit(t, old)

	g.Get("new.example.com")

	assert.Equal(t, 1, g.Len())
	assert.NotSame(t, old, g.Get("old.example.com"))
}
