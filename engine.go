package rolltag

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/filmlab/rolltag/internal/types"
)

// Run tags every file in paths with metadata derived from roll.
//
// Run is the sole external contract of the engine. The invocation fails
// fast, with no report and no file touched, when the input list or the
// metadata (including per-frame overrides) is invalid. After that point
// every outcome is per-frame: one file's failure never aborts the batch,
// and the returned report holds one terminal result per frame in input
// order.
//
// Frames are tagged concurrently up to the configured limit; each worker
// owns exactly one frame's lifecycle. Cancellation is cooperative:
// frames not yet started are recorded as failed with the context's
// error, while in-flight commits are allowed to finish atomically so the
// no-corruption guarantee holds.
//
// Example:
//
//	report, err := rolltag.Run(ctx, paths, roll, rolltag.WithConcurrency(4))
//	if err != nil {
//		return err // invalid input; nothing was touched
//	}
//	if report.AnyFailed() {
//		// inspect report.Results for the frames to retry
//	}
func Run(ctx context.Context, paths []string, roll RollMetadata, opts ...RunOption) (*Report, error) {
	options := defaultRunOptions()
	for _, opt := range opts {
		opt(options)
	}

	// Fail-fast phase: nothing below may touch a file until sequencing
	// and every metadata derivation has succeeded.
	frames, err := Sequence(paths)
	if err != nil {
		return nil, err
	}

	for index := range options.overrides {
		if index < 0 || index >= len(frames) {
			return nil, &types.InvalidMetadataError{
				Index:  index,
				Reason: "override index out of range",
			}
		}
	}

	resolved := make([]*Resolved, len(frames))
	for i := range frames {
		meta, err := Resolve(roll, i, options.overrides[i])
		if err != nil {
			return nil, err
		}
		meta.ClearExisting = options.clearExisting
		resolved[i] = meta
	}

	report := &Report{
		RunID:   uuid.NewString(),
		RollID:  roll.ID,
		Results: make([]Result, len(frames)),
	}
	log := options.logger.With(
		slog.String("run_id", report.RunID),
		slog.String("roll_id", roll.ID),
	)
	log.Info("starting batch",
		slog.Int("frames", len(frames)),
		slog.Int("concurrency", options.concurrency),
		slog.Bool("overwrite", options.overwrite),
	)

	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(options.concurrency)

	for i := range frames {
		frame := frames[i]
		meta := resolved[i]
		g.Go(func() error {
			// One result slot per frame index, written by exactly
			// one worker, so report order is input order.
			report.Results[frame.Index] = tagFrame(gctx, frame, meta, options, log)
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes completion.
	_ = g.Wait()

	report.Elapsed = time.Since(start)
	for _, res := range report.Results {
		switch res.Status {
		case StatusCommitted:
			report.Committed++
		case StatusSkipped:
			report.Skipped++
		case StatusFailed:
			report.Failed++
		}
	}

	log.Info("batch complete",
		slog.Int("committed", report.Committed),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
		slog.Duration("elapsed", report.Elapsed),
	)

	return report, nil
}

// tagFrame drives one frame through Pending -> {Committed | Skipped | Failed}.
//
// Terminal states are final: there are no retries within an invocation,
// and a failed frame's file is left exactly as found.
func tagFrame(ctx context.Context, frame Frame, meta *Resolved, options *runOptions, log *slog.Logger) Result {
	res := Result{
		Path:   frame.Path,
		Index:  frame.Index,
		Status: StatusFailed,
	}

	// Cooperative cancellation: a frame that has not started does not
	// start. In-flight frames below run to completion.
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	codec := options.codec
	if codec == nil {
		codec = findCodec(frame.Format)
	}
	if codec == nil {
		res.Err = &types.UnsupportedFormatError{Path: frame.Path, Format: frame.Format}
		log.Debug("frame failed", slog.Int("index", frame.Index), slog.Any("error", res.Err))
		return res
	}

	tags, err := codec.ReadTags(frame.Path)
	if err != nil {
		var corrupt *types.CorruptTagsError
		if errors.As(err, &corrupt) {
			// Unreadable existing tags don't block tagging a fresh
			// scan; proceed as untagged and surface a warning.
			res.Warnings = append(res.Warnings, Warning{Stage: "read", Message: corrupt.Reason})
			tags = TagSet{}
		} else {
			res.Err = err
			log.Debug("frame failed", slog.Int("index", frame.Index), slog.Any("error", err))
			return res
		}
	}

	if !options.overwrite && tags.RollID() == meta.RollID {
		res.Status = StatusSkipped
		log.Debug("frame skipped, already tagged", slog.Int("index", frame.Index))
		return res
	}

	// Stage the replacement content without touching the original.
	buf, err := codec.Encode(frame.Path, meta)
	if err != nil {
		res.Err = err
		log.Debug("frame failed", slog.Int("index", frame.Index), slog.Any("error", err))
		return res
	}

	// Commit: atomic replace, or leave the original byte-for-byte intact.
	if err := codec.AtomicWrite(frame.Path, buf); err != nil {
		res.Err = err
		log.Debug("frame failed", slog.Int("index", frame.Index), slog.Any("error", err))
		return res
	}

	res.Status = StatusCommitted
	log.Debug("frame committed",
		slog.Int("index", frame.Index),
		slog.Int("frame_number", meta.FrameNumber),
		slog.Time("timestamp", meta.Timestamp),
	)
	return res
}
