package pipeline

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const DefaultCooldown = 5 * time.Second

// Gate enforces a minimum interval between triggered syncs. There is one gate
// for the whole tree: once any event opens it, events from every path are
// suppressed until the cooldown has passed.
type Gate struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	cooldown time.Duration
	last     time.Time
}

func NewGate(cooldown time.Duration, clock clockwork.Clock) *Gate {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Gate{
		clock:    clock,
		cooldown: cooldown,
	}
}

// ShouldTrigger opens the gate and records now when at least one cooldown has
// passed since the last trigger. A suppressed call leaves the gate untouched.
func (g *Gate) ShouldTrigger(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.last.IsZero() && now.Sub(g.last) < g.cooldown {
		return false
	}

	g.last = now
	return true
}

func (g *Gate) Allow() bool {
	return g.ShouldTrigger(g.clock.Now())
}

func (g *Gate) Cooldown() time.Duration {
	return g.cooldown
}

// LastTrigger returns the time of the last trigger, or the zero time.
func (g *Gate) LastTrigger() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}
