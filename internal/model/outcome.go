package model

import "time"

type SyncStatus string

const (
	StatusSucceeded     SyncStatus = "SUCCEEDED"
	StatusFailed        SyncStatus = "FAILED"
	StatusSourceMissing SyncStatus = "SOURCE_MISSING"
)

// SyncOutcome describes one sync invocation. It is never written to disk.
type SyncOutcome struct {
	Trigger   string
	Status    SyncStatus
	StartedAt time.Time
	Duration  time.Duration
	Stdout    string
	Stderr    string
	Err       error

	// Dedupe is nil unless the sync itself succeeded.
	Dedupe *DedupeOutcome
}

func (o SyncOutcome) Success() bool {
	return o.Status == StatusSucceeded
}

type DedupeOutcome struct {
	Success bool
	Stdout  string
	Stderr  string
	Err     error
}
