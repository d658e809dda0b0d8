package repository

import (
	"sync"
	"syncwatch/internal/model"
)

// HistoryRepository keeps the most recent sync outcomes in memory. Nothing is
// written to disk; the history starts empty with every daemon session.
type HistoryRepository struct {
	mu      sync.RWMutex
	entries []model.HistoryEntry
	limit   int
	stats   Stats
}

type Stats struct {
	Total   int64
	Success int64
	Failed  int64
}

func NewHistoryRepository(limit int) *HistoryRepository {
	if limit <= 0 {
		limit = 1
	}

	return &HistoryRepository{
		entries: make([]model.HistoryEntry, 0, limit),
		limit:   limit,
	}
}

func (r *HistoryRepository) Save(outcome model.SyncOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) == r.limit {
		copy(r.entries, r.entries[1:])
		r.entries = r.entries[:len(r.entries)-1]
	}
	r.entries = append(r.entries, model.NewHistoryEntry(outcome))

	r.stats.Total++
	if outcome.Success() {
		r.stats.Success++
	} else {
		r.stats.Failed++
	}
}

func (r *HistoryRepository) GetStats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats
}

// GetRecent returns up to limit entries, newest first.
func (r *HistoryRepository) GetRecent(limit int) []model.HistoryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}

	out := make([]model.HistoryEntry, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}

	return out
}

func (r *HistoryRepository) GetFailed() []model.HistoryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.HistoryEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].Status != model.StatusSucceeded {
			out = append(out, r.entries[i])
		}
	}

	return out
}
