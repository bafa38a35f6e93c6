package rolltag

import (
	"os"
	"sort"
	"strings"

	"github.com/filmlab/rolltag/internal/types"
)

// Sequence orders input files into a deterministic frame sequence.
//
// Frames are assigned contiguous 0-based indices in input order. The
// input order is the caller's: scan order must reflect the physical
// film-roll order, and filesystem timestamps are unreliable after
// scanning, so Sequence never reorders (use SortNatural first for the
// default filename ordering).
//
// Returns *InvalidInputError if the input is empty, contains duplicate
// paths, or names a file that does not exist. Sequence only reads file
// headers for format detection; it never modifies anything.
func Sequence(paths []string) ([]Frame, error) {
	if len(paths) == 0 {
		return nil, &types.InvalidInputError{Reason: "no files provided"}
	}

	seen := make(map[string]struct{}, len(paths))
	frames := make([]Frame, 0, len(paths))

	for i, path := range paths {
		if _, dup := seen[path]; dup {
			return nil, &types.InvalidInputError{Path: path, Reason: "duplicate path"}
		}
		seen[path] = struct{}{}

		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &types.InvalidInputError{Path: path, Reason: "file does not exist"}
			}
			return nil, &types.InvalidInputError{Path: path, Reason: err.Error()}
		}
		if info.IsDir() {
			return nil, &types.InvalidInputError{Path: path, Reason: "is a directory"}
		}

		frames = append(frames, Frame{
			Path:   path,
			Index:  i,
			Size:   info.Size(),
			Format: sniffFormat(path, info.Size()),
		})
	}

	return frames, nil
}

// sniffFormat detects a file's format from its leading bytes.
//
// Detection failure is not fatal here: an unsupported format becomes a
// per-frame failure in the engine, not an invocation-level error.
func sniffFormat(path string, size int64) Format {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown
	}
	defer f.Close()

	format, err := types.DetectFormat(f, size, path)
	if err != nil {
		return FormatUnknown
	}
	return format
}

// SortNatural sorts paths in natural filename order: runs of digits
// compare numerically, so "scan_9.jpg" sorts before "scan_10.jpg".
//
// This is the default ordering a scanner's sequential filenames need;
// plain lexicographic order would interleave frame 10 before frame 9.
func SortNatural(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		return naturalLess(paths[i], paths[j])
	})
}

// naturalLess compares two strings segment by segment, treating digit
// runs as numbers.
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		aRun, aNum, aRest := nextSegment(a)
		bRun, bNum, bRest := nextSegment(b)

		switch {
		case aNum && bNum:
			// Compare digit runs numerically; equal values fall
			// through to the longer-run tiebreak below.
			at := strings.TrimLeft(aRun, "0")
			bt := strings.TrimLeft(bRun, "0")
			if len(at) != len(bt) {
				return len(at) < len(bt)
			}
			if at != bt {
				return at < bt
			}
		case aNum != bNum:
			// Digits sort before letters, matching lexicographic ASCII.
			return aNum
		default:
			if aRun != bRun {
				return aRun < bRun
			}
		}

		a, b = aRest, bRest
	}
	return a == "" && b != ""
}

// nextSegment splits off the leading run of digits or non-digits.
func nextSegment(s string) (run string, isNum bool, rest string) {
	isNum = s[0] >= '0' && s[0] <= '9'
	for i := 0; i < len(s); i++ {
		digit := s[i] >= '0' && s[i] <= '9'
		if digit != isNum {
			return s[:i], isNum, s[i:]
		}
	}
	return s, isNum, ""
}
