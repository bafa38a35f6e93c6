package types

import (
	"bytes"
	"errors"
	"testing"
)

func TestSplitMakeModel(t *testing.T) {
	tests := []struct {
		in        string
		wantMake  string
		wantModel string
	}{
		{"Nikon FM2", "Nikon", "FM2"},
		{"Canon AE-1 Program", "Canon", "AE-1 Program"},
		{"Leica", "Leica", ""},
		{"", "", ""},
		{"  Nikon  FM2 ", "Nikon", "FM2"},
	}
	for _, tt := range tests {
		gotMake, gotModel := SplitMakeModel(tt.in)
		if gotMake != tt.wantMake || gotModel != tt.wantModel {
			t.Errorf("SplitMakeModel(%q) = (%q, %q), want (%q, %q)",
				tt.in, gotMake, gotModel, tt.wantMake, tt.wantModel)
		}
	}
}

func TestTagSet_RollID(t *testing.T) {
	if got := (TagSet{}).RollID(); got != "" {
		t.Errorf("empty set roll id = %q", got)
	}
	tags := TagSet{TagRollID: "roll-1"}
	if got := tags.RollID(); got != "roll-1" {
		t.Errorf("roll id = %q, want roll-1", got)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, FormatJPEG},
		{"tiff little endian", []byte{'I', 'I', 0x2A, 0x00, 0x08}, FormatTIFF},
		{"tiff big endian", []byte{'M', 'M', 0x00, 0x2A, 0x00}, FormatTIFF},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D}, FormatPNG},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bytes.NewReader(tt.data)
			got, err := DetectFormat(r, int64(len(tt.data)), "x")
			if err != nil {
				t.Fatalf("DetectFormat: %v", err)
			}
			if got != tt.want {
				t.Errorf("format = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFormat_Unknown(t *testing.T) {
	r := bytes.NewReader([]byte("plain text file"))
	_, err := DetectFormat(r, 15, "x")
	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedFormatError, got %T: %v", err, err)
	}
}

func TestDetectFormat_TooSmall(t *testing.T) {
	r := bytes.NewReader([]byte{0xFF})
	if _, err := DetectFormat(r, 1, "x"); err == nil {
		t.Fatal("expected error for tiny file")
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusCommitted, "committed"},
		{StatusSkipped, "skipped"},
		{StatusFailed, "failed"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestResultString(t *testing.T) {
	res := Result{Path: "a.jpg", Index: 2, Status: StatusFailed, Err: errors.New("boom")}
	got := res.String()
	for _, want := range []string{"a.jpg", "failed", "boom"} {
		if !contains(got, want) {
			t.Errorf("result string %q missing %q", got, want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&InvalidInputError{Reason: "no files provided"}, "invalid input: no files provided"},
		{&InvalidInputError{Path: "a.jpg", Reason: "duplicate path"}, "invalid input: a.jpg: duplicate path"},
		{&InvalidMetadataError{Index: -1, Reason: "base timestamp is required"}, "invalid metadata: base timestamp is required"},
		{&InvalidMetadataError{Index: 3, Reason: "override index out of range"}, "invalid metadata for frame 3: override index out of range"},
		{&UnsupportedFormatError{Path: "a.dat", Format: FormatUnknown}, "a.dat: no codec for format Unknown"},
		{&CorruptTagsError{Path: "a.jpg", Reason: "truncated IFD"}, "a.jpg: corrupt metadata: truncated IFD"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestEncodeError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &EncodeError{Path: "a.jpg", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("EncodeError does not unwrap to inner error")
	}
}

func contains(s, sub string) bool {
	return bytes.Contains([]byte(s), []byte(sub))
}
