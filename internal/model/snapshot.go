package model

import "time"

type Snapshot struct {
	Src        string        `json:"src"`
	Dst        string        `json:"dst"`
	StartedAt  time.Time     `json:"started_at"`
	Cooldown   time.Duration `json:"cooldown"`
	Events     int           `json:"events"`
	Ignored    int           `json:"ignored"`
	Suppressed int           `json:"suppressed"`
	Synced     int           `json:"synced"`
	Failed     int           `json:"failed"`
	Running    bool          `json:"running"`
	LastSync   *time.Time    `json:"last_sync"`
	LastStatus SyncStatus    `json:"last_status,omitempty"`
}

// HistoryEntry is the JSON view of a SyncOutcome served by the control server.
type HistoryEntry struct {
	Trigger   string        `json:"trigger"`
	Status    SyncStatus    `json:"status"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
	Deduped   *bool         `json:"deduped,omitempty"`
}

func NewHistoryEntry(o SyncOutcome) HistoryEntry {
	entry := HistoryEntry{
		Trigger:   o.Trigger,
		Status:    o.Status,
		StartedAt: o.StartedAt,
		Duration:  o.Duration,
	}
	if o.Err != nil {
		entry.Error = o.Err.Error()
	}
	if o.Dedupe != nil {
		entry.Deduped = new(o.Dedupe.Success)
	}

	return entry
}
