// Package rolltag tags Exif metadata onto batches of scanned images from
// digitized film rolls.
//
// rolltag maps an ordered sequence of scanned files to per-frame metadata
// derived from one roll's base values and commits each file atomically, so
// a crash or error mid-batch never leaves a file corrupted or ambiguously
// tagged.
//
// # Quick Start
//
// Tagging a roll of scans:
//
//	roll := rolltag.RollMetadata{
//		ID:       "2024-03-portra400-01",
//		BaseTime: time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC),
//		Interval: time.Minute,
//		Make:     "Nikon",
//		Model:    "FM2",
//		Film:     "Kodak Portra 400",
//		ISO:      400,
//	}
//
//	report, err := rolltag.Run(ctx, paths, roll)
//	if err != nil {
//		log.Fatal(err) // nothing was touched
//	}
//	for _, res := range report.Results {
//		fmt.Println(res)
//	}
//
// # Failure Model
//
// rolltag distinguishes invocation-level errors from per-frame failures:
//
//   - Malformed global input (empty file list, duplicate or missing
//     paths, invalid roll metadata or overrides) aborts the whole
//     invocation before any file is touched. No report is produced.
//   - Per-frame problems during tagging (unsupported format, encode
//     failure, filesystem error) mark only that frame as failed in the
//     report; the rest of the roll is still tagged.
//
// Every commit is a temp-file write followed by an atomic rename, so a
// file's on-disk state after any invocation is either its pre-run bytes
// or the fully committed new content, never anything in between.
//
// # Idempotence
//
// Each committed frame carries the roll identifier. Re-running the same
// batch skips frames already tagged with that identifier unless
// WithOverwrite is given, so repeated runs never double-advance
// timestamps or frame numbers.
//
// # Concurrency
//
// Frames are tagged concurrently; each worker owns exactly one frame's
// lifecycle and files are disjoint, so no cross-frame locking is needed.
// Report order is always input order regardless of completion order.
// Cancellation is cooperative: frames not yet started fail with the
// context's error, while in-flight commits finish atomically.
package rolltag
