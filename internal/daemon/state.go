package daemon

import (
	"sync"
	"syncwatch/internal/model"
	"time"
)

// State holds the counters shown by the status endpoint.
type State struct {
	mu         sync.RWMutex
	src        string
	dst        string
	startedAt  time.Time
	cooldown   time.Duration
	events     int
	ignored    int
	suppressed int
	synced     int
	failed     int
	running    bool
	lastSync   *time.Time
	lastStatus model.SyncStatus
}

func NewState(target model.WatchTarget, cooldown time.Duration, startedAt time.Time) *State {
	return &State{
		src:       target.SourcePath,
		dst:       target.DestinationPath,
		startedAt: startedAt,
		cooldown:  cooldown,
	}
}

func (s *State) RecordEvent(disposition string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events++
	switch disposition {
	case dispositionIgnored:
		s.ignored++
	case dispositionSuppressed:
		s.suppressed++
	}
}

func (s *State) SetRunning(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = running
}

func (s *State) RecordSync(outcome model.SyncOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	s.lastSync = new(outcome.StartedAt.Add(outcome.Duration))
	s.lastStatus = outcome.Status
	if outcome.Success() {
		s.synced++
	} else {
		s.failed++
	}
}

func (s *State) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.Snapshot{
		Src:        s.src,
		Dst:        s.dst,
		StartedAt:  s.startedAt,
		Cooldown:   s.cooldown,
		Events:     s.events,
		Ignored:    s.ignored,
		Suppressed: s.suppressed,
		Synced:     s.synced,
		Failed:     s.failed,
		Running:    s.running,
		LastSync:   s.lastSync,
		LastStatus: s.lastStatus,
	}
}
