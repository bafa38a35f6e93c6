package rolltag

import (
	"github.com/filmlab/rolltag/internal/registry"
	"github.com/filmlab/rolltag/internal/types"
)

// Codec is the capability interface a metadata codec implements.
//
// A codec owns the binary container format: it reads existing tags,
// stages new tags into a transient buffer without touching the original
// file, and commits a buffer atomically. The engine treats codecs as
// opaque collaborators.
//
// Codec is an alias to registry.Codec so internal codec packages can
// register themselves without importing the root package.
type Codec = registry.Codec

// RegisterCodec registers a codec for a format.
// This is called by codec packages during initialization (init functions).
//
// This function is public to allow internal codec packages to register
// themselves, but it's not intended for external use.
func RegisterCodec(format Format, codec Codec) {
	registry.Register(format, codec)
}

// findCodec returns the codec for a given format.
//
// Returns nil if no codec is registered for the format.
func findCodec(format types.Format) Codec {
	return registry.Get(format)
}
