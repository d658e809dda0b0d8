package pipeline

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestGateFirstEventTriggers(t *testing.T) {
	g := NewGate(DefaultCooldown, clockwork.NewFakeClockAt(t0))

	assert.True(t, g.Allow())
	assert.Equal(t, t0, g.LastTrigger())
}

func TestGateCooldownBoundary(t *testing.T) {
	const eps = time.Millisecond
	g := NewGate(5*time.Second, nil)

	assert.True(t, g.ShouldTrigger(t0))
	assert.False(t, g.ShouldTrigger(t0.Add(5*time.Second-eps)))
	assert.Equal(t, t0, g.LastTrigger(), "suppressed call must not move the gate")
	assert.True(t, g.ShouldTrigger(t0.Add(5*time.Second+eps)))
	assert.Equal(t, t0.Add(5*time.Second+eps), g.LastTrigger())
}

func TestGateBurstCollapsesToOneTrigger(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	g := NewGate(5*time.Second, clock)

	triggers := 0
	for range 100 {
		if g.Allow() {
			triggers++
		}
		clock.Advance(40 * time.Millisecond)
	}

	assert.Equal(t, 1, triggers)
}

func TestGateScenarioTwoWindows(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	g := NewGate(5*time.Second, clock)

	assert.True(t, g.Allow(), "t=0")
	clock.Advance(6 * time.Second)
	assert.True(t, g.Allow(), "t=6")
	clock.Advance(time.Second)
	assert.False(t, g.Allow(), "t=7")
}

func TestGateIgnoresClockGoingBackwards(t *testing.T) {
	g := NewGate(5*time.Second, nil)

	assert.True(t, g.ShouldTrigger(t0))
	assert.False(t, g.ShouldTrigger(t0.Add(-time.Hour)))
	assert.Equal(t, t0, g.LastTrigger())
}

func TestGateConcurrentCallersTriggerOnce(t *testing.T) {
	g := NewGate(time.Minute, nil)

	var wg sync.WaitGroup
	var triggers atomic.Int32
	for range 50 {
		wg.Go(func() {
			if g.ShouldTrigger(t0) {
				triggers.Add(1)
			}
		})
	}
	wg.Wait()

	assert.Equal(t, int32(1), triggers.Load())
}
