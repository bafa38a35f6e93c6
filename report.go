package rolltag

import (
	"github.com/filmlab/rolltag/internal/types"
)

// Status is an alias to types.Status.
// Re-exported from internal/types so codec packages share one definition.
type Status = types.Status

// Re-export all status constants.
const (
	// StatusPending is the zero value; never present in a finished report.
	StatusPending = types.StatusPending
	// StatusCommitted means the frame's file was atomically replaced
	// with the new metadata-bearing content.
	StatusCommitted = types.StatusCommitted
	// StatusSkipped means the file already carried this roll's
	// identifier and overwriting was not requested.
	StatusSkipped = types.StatusSkipped
	// StatusFailed means the frame could not be tagged; its file is
	// byte-for-byte unchanged.
	StatusFailed = types.StatusFailed
)

// Result is an alias to types.Result.
type Result = types.Result

// Report is an alias to types.Report.
type Report = types.Report
