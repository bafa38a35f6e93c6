package rolltag

import (
	"io"

	"github.com/filmlab/rolltag/internal/types"
)

// Format is an alias to types.Format.
// Re-exported from internal/types so codec packages share one definition.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatJPEG    = types.FormatJPEG
	FormatTIFF    = types.FormatTIFF
	FormatPNG     = types.FormatPNG
)

// DetectFormat is a wrapper around types.DetectFormat.
// Maintains the public API while delegating to the internal implementation.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}
