package types

import "fmt"

// InvalidInputError is returned when the input file list is malformed:
// empty, containing duplicates, or naming files that do not exist.
// It aborts the invocation before any file is touched.
type InvalidInputError struct {
	Path   string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid input: %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// InvalidMetadataError is returned when RollMetadata or a per-frame
// override cannot produce a valid value set. It aborts the invocation
// before any file is touched.
type InvalidMetadataError struct {
	Reason string

	// Index is the frame index of the offending override, or -1 when
	// the roll-level metadata itself is invalid.
	Index int
}

func (e *InvalidMetadataError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid metadata for frame %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("invalid metadata: %s", e.Reason)
}

// UnsupportedFormatError is returned when no codec can handle a file's
// format. The frame fails; the batch continues.
type UnsupportedFormatError struct {
	Path   string
	Format Format
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: no codec for format %s", e.Path, e.Format)
}

// CorruptTagsError indicates that a file's existing metadata container
// could not be parsed. The engine treats this as non-fatal for the
// already-tagged check and records a warning on the result.
type CorruptTagsError struct {
	Path   string
	Reason string
}

func (e *CorruptTagsError) Error() string {
	return fmt.Sprintf("%s: corrupt metadata: %s", e.Path, e.Reason)
}

// EncodeError indicates the codec could not represent the resolved
// metadata in the file's container format. The original file is
// untouched; the frame fails.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("%s: encode: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
