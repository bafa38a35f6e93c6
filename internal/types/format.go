package types

import (
	"bytes"
	"io"
)

// Format represents the detected image container format.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatJPEG represents JPEG/JFIF image files.
	FormatJPEG
	// FormatTIFF represents TIFF image files (including most RAW scans).
	FormatTIFF
	// FormatPNG represents PNG image files.
	FormatPNG
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "JPEG"
	case FormatTIFF:
		return "TIFF"
	case FormatPNG:
		return "PNG"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatJPEG:
		return []string{".jpg", ".jpeg"}
	case FormatTIFF:
		return []string{".tif", ".tiff"}
	case FormatPNG:
		return []string{".png"}
	default:
		return nil
	}
}

var (
	magicJPEG    = []byte{0xFF, 0xD8, 0xFF}
	magicTIFFLE  = []byte{'I', 'I', 0x2A, 0x00}
	magicTIFFBE  = []byte{'M', 'M', 0x00, 0x2A}
	magicPNG     = []byte{0x89, 'P', 'N', 'G'}
	minMagicSize = int64(4)
)

// DetectFormat determines the image format by examining magic bytes.
//
// Detection is based on file signatures at the beginning of the file and
// does not validate the entire file structure.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	if size < minMagicSize {
		return FormatUnknown, &UnsupportedFormatError{Path: path, Format: FormatUnknown}
	}

	magic := make([]byte, minMagicSize)
	if _, err := r.ReadAt(magic, 0); err != nil {
		return FormatUnknown, &CorruptTagsError{Path: path, Reason: "failed to read file header"}
	}

	switch {
	case bytes.HasPrefix(magic, magicJPEG):
		return FormatJPEG, nil
	case bytes.Equal(magic, magicTIFFLE), bytes.Equal(magic, magicTIFFBE):
		return FormatTIFF, nil
	case bytes.Equal(magic, magicPNG):
		return FormatPNG, nil
	default:
		return FormatUnknown, &UnsupportedFormatError{Path: path, Format: FormatUnknown}
	}
}
