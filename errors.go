package rolltag

import (
	"github.com/filmlab/rolltag/internal/types"
)

// InvalidInputError is an alias to types.InvalidInputError.
// Re-exported from internal/types so codec packages share one definition.
type InvalidInputError = types.InvalidInputError

// InvalidMetadataError is an alias to types.InvalidMetadataError.
type InvalidMetadataError = types.InvalidMetadataError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptTagsError is an alias to types.CorruptTagsError.
type CorruptTagsError = types.CorruptTagsError

// EncodeError is an alias to types.EncodeError.
type EncodeError = types.EncodeError
