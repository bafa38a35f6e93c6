package rolltag

import (
	"log/slog"
	"runtime"
)

// RunOption configures a single engine invocation.
//
// Options use the functional options pattern:
//
//	report, err := rolltag.Run(ctx, paths, roll,
//	    rolltag.WithOverwrite(),
//	    rolltag.WithConcurrency(4),
//	)
type RunOption func(*runOptions)

// runOptions holds configuration for one invocation.
type runOptions struct {
	overwrite     bool                      // Re-tag files already carrying this roll's identifier
	clearExisting bool                      // Drop all pre-existing tags before staging
	concurrency   int                       // Worker limit; 0 means NumCPU
	overrides     map[int]*PerFrameOverride // Per-frame override by index
	codec         Codec                     // Force one codec for every frame
	logger        *slog.Logger              // Structured logger; discard by default
}

// defaultRunOptions returns the default configuration.
func defaultRunOptions() *runOptions {
	return &runOptions{
		concurrency: runtime.NumCPU(),
		overrides:   make(map[int]*PerFrameOverride),
		logger:      slog.New(slog.DiscardHandler),
	}
}

// WithOverwrite re-tags files that already carry this roll's identifier.
//
// By default such files are recorded as skipped, which makes repeated
// runs idempotent. Use this to deliberately re-stamp a roll after
// correcting its metadata.
func WithOverwrite() RunOption {
	return func(o *runOptions) {
		o.overwrite = true
	}
}

// WithClearExisting drops all pre-existing tags before staging new ones.
//
// By default existing tags not produced by rolltag (scanner software
// fields, embedded thumbnails' tags) are preserved and merged with the
// resolved values.
func WithClearExisting() RunOption {
	return func(o *runOptions) {
		o.clearExisting = true
	}
}

// WithConcurrency limits the number of frames tagged concurrently.
//
// The default is runtime.NumCPU(). Values below 1 are treated as 1.
// Per-file commits are independent (distinct files, atomic rename), so
// the limit only throttles resource usage.
func WithConcurrency(n int) RunOption {
	return func(o *runOptions) {
		if n < 1 {
			n = 1
		}
		o.concurrency = n
	}
}

// WithOverride replaces selected roll-level values for one frame,
// identified by its 0-based index.
//
// Overrides are invocation input: they are validated up front, and an
// invalid override aborts the run before any file is touched.
func WithOverride(index int, override PerFrameOverride) RunOption {
	return func(o *runOptions) {
		o.overrides[index] = &override
	}
}

// WithCodec forces one codec for every frame instead of per-format
// registry lookup.
//
// Use this to route a batch through an alternative backend (e.g., the
// exiftool codec for formats the native codec does not write).
func WithCodec(c Codec) RunOption {
	return func(o *runOptions) {
		o.codec = c
	}
}

// WithLogger attaches a structured logger to the invocation.
//
// The engine logs per-frame outcomes at debug level and batch summary
// at info level. By default all logging is discarded, so library use
// is silent.
func WithLogger(l *slog.Logger) RunOption {
	return func(o *runOptions) {
		if l != nil {
			o.logger = l
		}
	}
}
