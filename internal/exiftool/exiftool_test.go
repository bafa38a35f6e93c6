package exiftool

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/filmlab/rolltag/internal/types"
)

func TestBuildArgs(t *testing.T) {
	meta := &types.Resolved{
		FrameNumber: 7,
		Timestamp:   time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC),
		RollID:      "roll-1",
		Make:        "Nikon",
		Model:       "FM2",
		Film:        "Kodak Portra 400",
		ISO:         400,
	}

	args := buildArgs(meta)
	joined := strings.Join(args, "\n")

	for _, want := range []string{
		"-overwrite_original",
		"-ImageUniqueID=roll-1",
		"-DateTimeOriginal=2024:03:16 10:00:00",
		"-ImageNumber=7",
		"-Make=Nikon",
		"-Model=FM2",
		"-ImageDescription=Kodak Portra 400",
		"-ISO=400",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q:\n%s", want, joined)
		}
	}
	if strings.Contains(joined, "-all=") {
		t.Error("args clear existing tags without ClearExisting")
	}
	if strings.Contains(joined, "-LensMake") {
		t.Error("args set empty lens fields")
	}
}

func TestBuildArgs_ClearAndGPS(t *testing.T) {
	meta := &types.Resolved{
		RollID:        "roll-1",
		Timestamp:     time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC),
		ClearExisting: true,
		GPS:           &types.GPSPosition{Latitude: -33.8688, Longitude: 151.2093},
	}

	joined := strings.Join(buildArgs(meta), "\n")
	for _, want := range []string{
		"-all=",
		"-GPSLatitude=33.8688",
		"-GPSLatitudeRef=S",
		"-GPSLongitude=151.2093",
		"-GPSLongitudeRef=E",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q:\n%s", want, joined)
		}
	}
}

func TestCopyToTemp(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "scan.tif")
	if err := os.WriteFile(src, []byte("scan bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	tmp, err := copyToTemp(src)
	if err != nil {
		t.Fatalf("copyToTemp: %v", err)
	}
	defer os.Remove(tmp)

	if filepath.Dir(tmp) != dir {
		t.Errorf("temp dir = %s, want sibling of source", filepath.Dir(tmp))
	}
	if filepath.Ext(tmp) != ".tif" {
		t.Errorf("temp ext = %q, want original extension preserved", filepath.Ext(tmp))
	}
	data, err := os.ReadFile(tmp)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "scan bytes" {
		t.Errorf("temp content = %q", data)
	}
}

func TestNew_MissingBinary(t *testing.T) {
	if _, err := exec.LookPath("exiftool"); err == nil {
		t.Skip("exiftool installed; missing-binary path not testable")
	}
	if _, err := New(); err == nil {
		t.Fatal("expected error when exiftool is not on PATH")
	}
}

func TestRoundtrip(t *testing.T) {
	if _, err := exec.LookPath("exiftool"); err != nil {
		t.Skip("exiftool not installed")
	}

	c, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	// Smallest valid JPEG exiftool accepts: SOI + EOI.
	path := filepath.Join(t.TempDir(), "scan.jpg")
	if err := os.WriteFile(path, []byte{0xFF, 0xD8, 0xFF, 0xD9}, 0o644); err != nil {
		t.Fatal(err)
	}

	meta := &types.Resolved{
		FrameNumber: 3,
		Timestamp:   time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC),
		RollID:      "roll-rt",
	}
	buf, err := c.Encode(path, meta)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := c.AtomicWrite(path, buf); err != nil {
		t.Fatalf("AtomicWrite: %v", err)
	}

	tags, err := c.ReadTags(path)
	if err != nil {
		t.Fatalf("ReadTags: %v", err)
	}
	if tags.RollID() != "roll-rt" {
		t.Errorf("roll id = %q, want roll-rt", tags.RollID())
	}
}
