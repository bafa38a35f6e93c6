// Package exiftool implements a metadata codec backed by a persistent
// exiftool process.
//
// It covers container formats the native codec does not write (TIFF and
// most RAW scan formats) by delegating the binary work to exiftool in
// stay-open mode: one long-lived process accepts argument batches on
// stdin and signals completion with a {ready} marker, avoiding the
// per-file process spawn cost on large rolls.
//
// Staging never touches the original file: the original is copied to a
// temporary sibling, exiftool rewrites the copy in place, and the
// copy's bytes become the transient buffer the engine commits.
package exiftool

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	exifcommon "github.com/dsoprea/go-exif/v3/common"

	"github.com/filmlab/rolltag/internal/safefile"
	"github.com/filmlab/rolltag/internal/types"
)

// Codec drives a persistent exiftool process.
//
// A single process serves all frames; calls are serialized internally,
// so one Codec is safe to share across engine workers.
type Codec struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Scanner
}

// New starts an exiftool process in stay-open mode.
//
// Returns an error if the exiftool binary is not on PATH.
func New() (*Codec, error) {
	if _, err := exec.LookPath("exiftool"); err != nil {
		return nil, fmt.Errorf("exiftool not found on PATH: %w", err)
	}

	// "-" as the -@ argument makes exiftool read argument batches from stdin.
	cmd := exec.Command("exiftool", "-stay_open", "True", "-@", "-")

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}

	return &Codec{
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewScanner(stdout),
	}, nil
}

// Close shuts the exiftool process down gracefully.
func (c *Codec) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := fmt.Fprintln(c.stdin, "-stay_open"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(c.stdin, "False"); err != nil {
		return err
	}
	if err := c.stdin.Close(); err != nil {
		return err
	}
	return c.cmd.Wait()
}

// execute sends one argument batch and reads output up to the {ready} marker.
func (c *Codec) execute(args ...string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, arg := range args {
		if _, err := fmt.Fprintln(c.stdin, arg); err != nil {
			return "", fmt.Errorf("write arg %q: %w", arg, err)
		}
	}
	if _, err := fmt.Fprintln(c.stdin, "-execute"); err != nil {
		return "", fmt.Errorf("write execute: %w", err)
	}

	var output strings.Builder
	for c.stdout.Scan() {
		line := c.stdout.Text()
		if strings.HasPrefix(line, "{ready}") {
			break
		}
		output.WriteString(line)
		output.WriteString("\n")
	}
	if err := c.stdout.Err(); err != nil {
		return "", fmt.Errorf("read output: %w", err)
	}
	return output.String(), nil
}

// readFields maps exiftool -S output names to canonical tag names.
var readFields = map[string]string{
	"ImageUniqueID":    types.TagRollID,
	"DateTimeOriginal": types.TagDateTimeOriginal,
	"ImageNumber":      types.TagFrameNumber,
	"Make":             types.TagMake,
	"Model":            types.TagModel,
	"LensMake":         types.TagLensMake,
	"LensModel":        types.TagLensModel,
	"ImageDescription": types.TagFilm,
	"ISO":              types.TagISO,
}

// ReadTags returns the file's existing tags via exiftool -S output.
func (c *Codec) ReadTags(path string) (types.TagSet, error) {
	out, err := c.execute(
		"-S",
		"-ImageUniqueID", "-DateTimeOriginal", "-ImageNumber",
		"-Make", "-Model", "-LensMake", "-LensModel",
		"-ImageDescription", "-ISO",
		path,
	)
	if err != nil {
		return nil, &types.CorruptTagsError{Path: path, Reason: err.Error()}
	}

	tags := make(types.TagSet)
	for _, line := range strings.Split(out, "\n") {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		canonical, wanted := readFields[strings.TrimSpace(name)]
		if !wanted {
			continue
		}
		if v := strings.TrimSpace(value); v != "" {
			tags[canonical] = v
		}
	}
	return tags, nil
}

// Encode stages meta by rewriting a temporary copy of the file and
// returning the copy's bytes. The original file is only read.
func (c *Codec) Encode(path string, meta *types.Resolved) ([]byte, error) {
	tmp, err := copyToTemp(path)
	if err != nil {
		return nil, fmt.Errorf("stage copy: %w", err)
	}
	defer os.Remove(tmp)

	args := buildArgs(meta)
	args = append(args, tmp)
	out, err := c.execute(args...)
	if err != nil {
		return nil, &types.EncodeError{Path: path, Err: err}
	}
	if strings.Contains(out, "Error") {
		return nil, &types.EncodeError{Path: path, Err: fmt.Errorf("exiftool: %s", strings.TrimSpace(out))}
	}

	data, err := os.ReadFile(tmp)
	if err != nil {
		return nil, &types.EncodeError{Path: path, Err: err}
	}
	return data, nil
}

// AtomicWrite commits a staged buffer over the original file.
func (c *Codec) AtomicWrite(path string, data []byte) error {
	return safefile.Replace(path, data)
}

// buildArgs translates resolved metadata into exiftool assignments.
func buildArgs(meta *types.Resolved) []string {
	ts := exifcommon.ExifFullTimestampString(meta.Timestamp)

	args := []string{"-overwrite_original"}
	if meta.ClearExisting {
		args = append(args, "-all=")
	}
	args = append(args,
		"-ImageUniqueID="+meta.RollID,
		"-DateTimeOriginal="+ts,
		"-CreateDate="+ts,
		"-ModifyDate="+ts,
		"-ImageNumber="+strconv.Itoa(meta.FrameNumber),
	)
	if meta.Make != "" {
		args = append(args, "-Make="+meta.Make)
	}
	if meta.Model != "" {
		args = append(args, "-Model="+meta.Model)
	}
	if meta.LensMake != "" {
		args = append(args, "-LensMake="+meta.LensMake)
	}
	if meta.LensModel != "" {
		args = append(args, "-LensModel="+meta.LensModel)
	}
	if meta.Film != "" {
		args = append(args, "-ImageDescription="+meta.Film)
	}
	if meta.ISO > 0 {
		args = append(args, "-ISO="+strconv.Itoa(meta.ISO))
	}
	if meta.Notes != "" {
		args = append(args, "-UserComment="+meta.Notes)
	}
	if meta.GPS != nil {
		lat, lon := meta.GPS.Latitude, meta.GPS.Longitude
		latRef, lonRef := "N", "E"
		if lat < 0 {
			latRef, lat = "S", -lat
		}
		if lon < 0 {
			lonRef, lon = "W", -lon
		}
		args = append(args,
			"-GPSLatitude="+strconv.FormatFloat(lat, 'f', -1, 64),
			"-GPSLatitudeRef="+latRef,
			"-GPSLongitude="+strconv.FormatFloat(lon, 'f', -1, 64),
			"-GPSLongitudeRef="+lonRef,
		)
	}
	return args
}

// copyToTemp copies path to a temporary sibling and returns its name.
// The sibling lives in the same directory so exiftool sees the same
// filesystem and extension-based type detection still works.
func copyToTemp(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".rolltag-stage-*"+filepath.Ext(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
