package convert

import (
	"sync/atomic"
	"time"
)

// Status is the terminal state of a job.
type Status int

const (
	// StatusConverted means the tool succeeded and the source was preserved.
	StatusConverted Status = iota
	// StatusDeleted means the tool succeeded and the source was removed.
	StatusDeleted
	// StatusDeleteFailed means the tool succeeded but the source could not be removed.
	StatusDeleteFailed
	StatusConversionFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusConverted:
		return "converted"
	case StatusDeleted:
		return "deleted"
	case StatusDeleteFailed:
		return "delete failed"
	case StatusConversionFailed:
		return "conversion failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Converted reports whether the tool produced the destination file.
func (s Status) Converted() bool {
	return s == StatusConverted || s == StatusDeleted || s == StatusDeleteFailed
}

// Failed reports whether the status counts against the exit code.
func (s Status) Failed() bool {
	return s == StatusConversionFailed || s == StatusDeleteFailed
}

// SkipReason explains a StatusSkipped outcome.
type SkipReason string

const (
	SkipDryRun            SkipReason = "dry run"
	SkipDestinationExists SkipReason = "destination exists"
	// Another file in the same run converts to the same destination.
	SkipDestinationClaimed SkipReason = "destination taken by another file"
)

// Outcome is the result of one job.
type Outcome struct {
	Job      Job
	Status   Status
	Reason   SkipReason // set for StatusSkipped
	Err      error      // *ConversionError or *DeleteError
	Duration time.Duration
}

// Summary is a snapshot of the run counters.
type Summary struct {
	Discovered      int64
	Converted       int64 // includes deleted and delete-failed jobs
	Deleted         int64
	DeleteFailed    int64
	Failed          int64
	Skipped         int64
	DiscoveryErrors int64
	Elapsed         time.Duration
}

// HasFailures reports whether any job failed conversion or deletion.
func (s Summary) HasFailures() bool {
	return s.Failed > 0 || s.DeleteFailed > 0
}

// Tally counts outcomes. It is safe for concurrent use.
type Tally struct {
	discovered      atomic.Int64
	converted       atomic.Int64
	deleted         atomic.Int64
	deleteFailed    atomic.Int64
	failed          atomic.Int64
	skipped         atomic.Int64
	discoveryErrors atomic.Int64
}

// Discovered counts one entry handed to the pool.
func (t *Tally) Discovered() { t.discovered.Add(1) }

// DiscoveryFailed counts one unreadable part of the tree.
func (t *Tally) DiscoveryFailed() { t.discoveryErrors.Add(1) }

// Record counts one outcome.
func (t *Tally) Record(o Outcome) {
	if o.Status.Converted() {
		t.converted.Add(1)
	}
	switch o.Status {
	case StatusDeleted:
		t.deleted.Add(1)
	case StatusDeleteFailed:
		t.deleteFailed.Add(1)
	case StatusConversionFailed:
		t.failed.Add(1)
	case StatusSkipped:
		t.skipped.Add(1)
	}
}

// Snapshot returns the current counts.
func (t *Tally) Snapshot() Summary {
	return Summary{
		Discovered:      t.discovered.Load(),
		Converted:       t.converted.Load(),
		Deleted:         t.deleted.Load(),
		DeleteFailed:    t.deleteFailed.Load(),
		Failed:          t.failed.Load(),
		Skipped:         t.skipped.Load(),
		DiscoveryErrors: t.discoveryErrors.Load(),
	}
}
