// Package jpegexif implements the native JPEG Exif codec.
//
// Reading and staging are built on go-exif and go-jpeg-image-structure:
// the file's segment list is parsed in memory, the Exif builder is
// merged with the resolved values, and the complete replacement JPEG is
// serialized to a buffer. The original file is only ever read; commits
// go through safefile.Replace.
package jpegexif

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	exifundefined "github.com/dsoprea/go-exif/v3/undefined"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"

	"github.com/filmlab/rolltag/internal/registry"
	"github.com/filmlab/rolltag/internal/safefile"
	"github.com/filmlab/rolltag/internal/types"
)

func init() {
	registry.Register(types.FormatJPEG, &Codec{})
}

// Codec reads and writes Exif metadata embedded in JPEG files.
type Codec struct{}

// flatTags is the set of existing tags surfaced to the engine.
var flatTags = map[string]struct{}{
	types.TagRollID:           {},
	types.TagDateTimeOriginal: {},
	types.TagFrameNumber:      {},
	types.TagMake:             {},
	types.TagModel:            {},
	types.TagLensMake:         {},
	types.TagLensModel:        {},
	types.TagFilm:             {},
	types.TagISO:              {},
}

// ReadTags returns the file's existing Exif tags.
//
// A JPEG with no Exif segment returns an empty set: fresh scans rarely
// carry Exif and must still be taggable. An Exif segment that cannot be
// parsed returns *types.CorruptTagsError.
func (c *Codec) ReadTags(path string) (types.TagSet, error) {
	rawExif, err := exif.SearchFileAndExtractExif(path)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return types.TagSet{}, nil
		}
		return nil, &types.CorruptTagsError{Path: path, Reason: err.Error()}
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil, &types.CorruptTagsError{Path: path, Reason: err.Error()}
	}

	tags := make(types.TagSet)
	for _, entry := range entries {
		if _, wanted := flatTags[entry.TagName]; !wanted {
			continue
		}
		if _, present := tags[entry.TagName]; present {
			continue // first IFD wins
		}
		tags[entry.TagName] = entry.FormattedFirst
	}
	return tags, nil
}

// Encode produces the complete replacement JPEG with meta staged into
// its Exif segment. The original file is only read.
func (c *Codec) Encode(path string, meta *types.Resolved) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	jmp := jpegstructure.NewJpegMediaParser()
	intfc, err := jmp.ParseBytes(data)
	if err != nil {
		return nil, &types.EncodeError{Path: path, Err: fmt.Errorf("parse jpeg: %w", err)}
	}
	sl := intfc.(*jpegstructure.SegmentList)

	if meta.ClearExisting {
		if _, err := sl.DropExif(); err != nil {
			return nil, &types.EncodeError{Path: path, Err: fmt.Errorf("drop exif: %w", err)}
		}
	}

	rootIb, err := sl.ConstructExifBuilder()
	if err != nil {
		// No usable Exif segment: start from an empty builder.
		im, mapErr := exifcommon.NewIfdMappingWithStandard()
		if mapErr != nil {
			return nil, &types.EncodeError{Path: path, Err: mapErr}
		}
		rootIb = exif.NewIfdBuilder(im, exif.NewTagIndex(),
			exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder)
	}

	if err := stage(rootIb, meta); err != nil {
		return nil, &types.EncodeError{Path: path, Err: err}
	}

	if err := sl.SetExif(rootIb); err != nil {
		return nil, &types.EncodeError{Path: path, Err: fmt.Errorf("set exif: %w", err)}
	}

	buf := new(bytes.Buffer)
	if err := sl.Write(buf); err != nil {
		return nil, &types.EncodeError{Path: path, Err: fmt.Errorf("serialize jpeg: %w", err)}
	}
	return buf.Bytes(), nil
}

// AtomicWrite commits a staged buffer over the original file.
func (c *Codec) AtomicWrite(path string, data []byte) error {
	return safefile.Replace(path, data)
}

// stage sets the resolved values on the Exif builder. Empty optional
// fields are left alone so scanner-written tags survive a merge.
func stage(rootIb *exif.IfdBuilder, meta *types.Resolved) error {
	ifd0, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD0")
	if err != nil {
		return fmt.Errorf("IFD0: %w", err)
	}

	ts := exifcommon.ExifFullTimestampString(meta.Timestamp)
	if err := ifd0.SetStandardWithName("DateTime", ts); err != nil {
		return fmt.Errorf("DateTime: %w", err)
	}
	if err := ifd0.SetStandardWithName("ImageNumber", []uint32{uint32(meta.FrameNumber)}); err != nil {
		return fmt.Errorf("ImageNumber: %w", err)
	}
	if err := ifd0.SetStandardWithName("Software", "rolltag"); err != nil {
		return fmt.Errorf("Software: %w", err)
	}
	if meta.Make != "" {
		if err := ifd0.SetStandardWithName("Make", meta.Make); err != nil {
			return fmt.Errorf("Make: %w", err)
		}
	}
	if meta.Model != "" {
		if err := ifd0.SetStandardWithName("Model", meta.Model); err != nil {
			return fmt.Errorf("Model: %w", err)
		}
	}
	if meta.Film != "" {
		if err := ifd0.SetStandardWithName("ImageDescription", meta.Film); err != nil {
			return fmt.Errorf("ImageDescription: %w", err)
		}
	}

	exifIb, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD0/Exif")
	if err != nil {
		return fmt.Errorf("Exif IFD: %w", err)
	}
	if err := exifIb.SetStandardWithName("ImageUniqueID", meta.RollID); err != nil {
		return fmt.Errorf("ImageUniqueID: %w", err)
	}
	if err := exifIb.SetStandardWithName("DateTimeOriginal", ts); err != nil {
		return fmt.Errorf("DateTimeOriginal: %w", err)
	}
	if err := exifIb.SetStandardWithName("DateTimeDigitized", ts); err != nil {
		return fmt.Errorf("DateTimeDigitized: %w", err)
	}
	if meta.ISO > 0 {
		if err := exifIb.SetStandardWithName("ISOSpeedRatings", []uint16{uint16(meta.ISO)}); err != nil {
			return fmt.Errorf("ISOSpeedRatings: %w", err)
		}
	}
	if meta.LensMake != "" {
		if err := exifIb.SetStandardWithName("LensMake", meta.LensMake); err != nil {
			return fmt.Errorf("LensMake: %w", err)
		}
	}
	if meta.LensModel != "" {
		if err := exifIb.SetStandardWithName("LensModel", meta.LensModel); err != nil {
			return fmt.Errorf("LensModel: %w", err)
		}
	}
	if meta.Notes != "" {
		comment := exifundefined.Tag9286UserComment{
			EncodingType:  exifundefined.TagUndefinedType_9286_UserComment_Encoding_ASCII,
			EncodingBytes: []byte(meta.Notes),
		}
		if err := exifIb.SetStandardWithName("UserComment", comment); err != nil {
			return fmt.Errorf("UserComment: %w", err)
		}
	}

	if meta.GPS != nil {
		if err := stageGPS(rootIb, meta.GPS); err != nil {
			return err
		}
	}
	return nil
}

// stageGPS writes a decimal-degrees fix as degree/minute/second rationals.
func stageGPS(rootIb *exif.IfdBuilder, pos *types.GPSPosition) error {
	gpsIb, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD0/GPSInfo")
	if err != nil {
		return fmt.Errorf("GPS IFD: %w", err)
	}

	if err := gpsIb.SetStandardWithName("GPSVersionID", []byte{2, 3, 0, 0}); err != nil {
		return fmt.Errorf("GPSVersionID: %w", err)
	}

	latRef, lat := dmsRationals(pos.Latitude, "N", "S")
	if err := gpsIb.SetStandardWithName("GPSLatitudeRef", latRef); err != nil {
		return fmt.Errorf("GPSLatitudeRef: %w", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLatitude", lat); err != nil {
		return fmt.Errorf("GPSLatitude: %w", err)
	}

	lonRef, lon := dmsRationals(pos.Longitude, "E", "W")
	if err := gpsIb.SetStandardWithName("GPSLongitudeRef", lonRef); err != nil {
		return fmt.Errorf("GPSLongitudeRef: %w", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLongitude", lon); err != nil {
		return fmt.Errorf("GPSLongitude: %w", err)
	}
	return nil
}

// dmsRationals converts a signed decimal-degrees value to Exif
// degree/minute/second rationals and the matching hemisphere reference.
// Seconds keep four decimal places (~3mm of precision).
func dmsRationals(value float64, positiveRef, negativeRef string) (string, []exifcommon.Rational) {
	ref := positiveRef
	if value < 0 {
		ref = negativeRef
		value = -value
	}

	degrees := uint32(value)
	remainder := (value - float64(degrees)) * 60
	minutes := uint32(remainder)
	seconds := (remainder - float64(minutes)) * 60

	return ref, []exifcommon.Rational{
		{Numerator: degrees, Denominator: 1},
		{Numerator: minutes, Denominator: 1},
		{Numerator: uint32(seconds*10000 + 0.5), Denominator: 10000},
	}
}
