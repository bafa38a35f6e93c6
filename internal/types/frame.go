package types

// Frame is one scanned image file positioned in the roll's shooting order.
type Frame struct {
	// Path to the image file. Unique within a batch.
	Path string

	// Index is the 0-based position in the sequence, assigned in input
	// order. Contiguous within a batch.
	Index int

	// Size of the file in bytes at sequencing time.
	Size int64

	// Format detected from the file's leading bytes.
	Format Format
}

// TagSet is a flat view of a file's existing metadata, keyed by
// canonical Exif field name. Codecs populate only the fields the engine
// inspects; unknown tags may be omitted.
type TagSet map[string]string

// Canonical tag names used across codecs.
const (
	// TagRollID is where the roll identifier is stored (Exif ImageUniqueID).
	TagRollID = "ImageUniqueID"

	TagDateTimeOriginal = "DateTimeOriginal"
	TagFrameNumber      = "ImageNumber"
	TagMake             = "Make"
	TagModel            = "Model"
	TagLensMake         = "LensMake"
	TagLensModel        = "LensModel"
	TagFilm             = "ImageDescription"
	TagISO              = "ISOSpeedRatings"
)

// RollID returns the roll identifier carried by the tag set, or "" when
// the file has not been tagged by this tool.
func (t TagSet) RollID() string {
	return t[TagRollID]
}
