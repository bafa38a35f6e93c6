package types

import (
	"fmt"
	"time"
)

// Status is the terminal state of one frame after an engine invocation.
type Status int

const (
	// StatusPending is the zero value: the frame has not reached a
	// terminal state. Never present in a finished report.
	StatusPending Status = iota

	// StatusCommitted means the frame's file was atomically replaced
	// with the new metadata-bearing content.
	StatusCommitted

	// StatusSkipped means the file already carried this roll's
	// identifier and overwriting was not requested.
	StatusSkipped

	// StatusFailed means the frame could not be tagged; its file is
	// byte-for-byte unchanged.
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCommitted:
		return "committed"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the per-frame outcome. Immutable once produced.
type Result struct {
	Path   string
	Index  int
	Status Status

	// Err explains a StatusFailed result. Nil otherwise.
	Err error

	// Warnings are non-fatal issues encountered while tagging this
	// frame (e.g., unreadable pre-existing Exif that was ignored).
	Warnings []Warning
}

// String renders the result as one report line.
func (r Result) String() string {
	if r.Status == StatusFailed && r.Err != nil {
		return fmt.Sprintf("[%d] %s: %s: %v", r.Index, r.Path, r.Status, r.Err)
	}
	return fmt.Sprintf("[%d] %s: %s", r.Index, r.Path, r.Status)
}

// Warning records a non-fatal issue encountered while tagging a frame.
type Warning struct {
	// Stage where the warning occurred ("read", "stage", "commit").
	Stage string

	Message string
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// Report aggregates the outcome of one engine invocation. Results are
// ordered by frame index regardless of commit completion order.
type Report struct {
	// RunID uniquely identifies this invocation.
	RunID string

	// RollID echoes the roll the batch was tagged with.
	RollID string

	Results []Result

	Committed int
	Skipped   int
	Failed    int

	Elapsed time.Duration
}

// AnyFailed reports whether at least one frame failed. A wrapping CLI
// maps this to its exit status.
func (r *Report) AnyFailed() bool {
	return r.Failed > 0
}

// Summary returns a one-line aggregate.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d committed, %d skipped, %d failed (%d frames in %s)",
		r.Committed, r.Skipped, r.Failed, len(r.Results), r.Elapsed.Round(time.Millisecond))
}
