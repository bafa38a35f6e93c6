package rolltag

import (
	"github.com/filmlab/rolltag/internal/types"
)

// RollMetadata is an alias to types.RollMetadata.
// Re-exported from internal/types so codec packages share one definition.
type RollMetadata = types.RollMetadata

// GPSPosition is an alias to types.GPSPosition.
type GPSPosition = types.GPSPosition

// PerFrameOverride is an alias to types.PerFrameOverride.
type PerFrameOverride = types.PerFrameOverride

// Resolved is an alias to types.Resolved.
type Resolved = types.Resolved

// Frame is an alias to types.Frame.
type Frame = types.Frame

// TagSet is an alias to types.TagSet.
type TagSet = types.TagSet

// Warning is an alias to types.Warning.
type Warning = types.Warning

// Canonical tag names used across codecs.
const (
	TagRollID           = types.TagRollID
	TagDateTimeOriginal = types.TagDateTimeOriginal
	TagFrameNumber      = types.TagFrameNumber
	TagMake             = types.TagMake
	TagModel            = types.TagModel
	TagLensMake         = types.TagLensMake
	TagLensModel        = types.TagLensModel
	TagFilm             = types.TagFilm
	TagISO              = types.TagISO
)

// SplitMakeModel splits a combined "Make Model ..." string: the first
// word is the make, the remainder the model.
func SplitMakeModel(s string) (make, model string) {
	return types.SplitMakeModel(s)
}
