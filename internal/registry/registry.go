// Package registry manages format-specific metadata codecs.
package registry

import (
	"github.com/filmlab/rolltag/internal/types"
)

// Codec is the capability interface a metadata codec implements.
//
// A codec owns the binary container format: it reads existing tags,
// stages new tags into a transient buffer without touching the original
// file, and commits a buffer atomically.
type Codec interface {
	// ReadTags returns the file's existing tags, keyed by canonical
	// Exif field name. A file with no metadata container returns an
	// empty set, not an error. Returns *types.CorruptTagsError when
	// the container exists but cannot be parsed.
	ReadTags(path string) (types.TagSet, error)

	// Encode produces the complete replacement file content with the
	// resolved metadata staged into it. The original file is only
	// read, never written. Returns *types.EncodeError when the
	// metadata cannot be represented in the container format.
	Encode(path string, meta *types.Resolved) ([]byte, error)

	// AtomicWrite replaces path with data. The target either retains
	// its prior content or is fully replaced, never partially written.
	AtomicWrite(path string, data []byte) error
}

// codecs maps formats to their codecs.
// Populated in each codec package's init() function.
var codecs = make(map[types.Format]Codec)

// Register registers a codec for a format.
// This is called by codec packages during initialization (init functions).
func Register(format types.Format, codec Codec) {
	codecs[format] = codec
}

// Get returns the codec for a given format.
// Returns nil if no codec is registered for the format.
func Get(format types.Format) Codec {
	return codecs[format]
}
