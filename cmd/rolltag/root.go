package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/filmlab/rolltag"
	"github.com/filmlab/rolltag/internal/exiftool"
	"github.com/filmlab/rolltag/internal/logging"

	// Register the native codecs.
	_ "github.com/filmlab/rolltag/internal/jpegexif"
)

type rootFlags struct {
	rollFile   string
	rollID     string
	date       string
	interval   time.Duration
	startFrame int
	camera     string
	lens       string
	film       string
	iso        int
	gps        string
	notes      string

	overwrite   bool
	clear       bool
	jobs        int
	useExiftool bool
	noSort      bool

	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "rolltag [flags] <scans...>",
		Short: "Tag Exif metadata onto scanned film-roll images",
		Long: `rolltag maps an ordered sequence of scanned images to per-frame Exif
metadata derived from one roll's base values (capture date, camera, film
stock, GPS) and commits each file atomically, so an error mid-batch never
corrupts a scan or tags it ambiguously.

Files are ordered by natural filename order by default, matching a
scanner's sequential numbering; pass --no-sort to keep the argument
order. Frames already carrying the roll identifier are skipped unless
--overwrite is given, so re-running a batch is safe.

Roll metadata can come from flags, a YAML roll file (--roll), or both;
flags win over the file.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env if present (ignore errors).
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTag(cmd, flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.rollFile, "roll", "", "YAML file with roll metadata")
	cmd.Flags().StringVar(&flags.rollID, "roll-id", "", "roll identifier written to every frame")
	cmd.Flags().StringVar(&flags.date, "date", "", "capture timestamp of frame 0 (2006-01-02[T15:04:05])")
	cmd.Flags().DurationVar(&flags.interval, "interval", 0, "time between consecutive frames (e.g. 60s)")
	cmd.Flags().IntVar(&flags.startFrame, "start-frame", 0, "frame number of frame 0")
	cmd.Flags().StringVarP(&flags.camera, "camera", "c", "", "camera; first word is the make, rest the model")
	cmd.Flags().StringVarP(&flags.lens, "lens", "l", "", "lens; first word is the make, rest the model")
	cmd.Flags().StringVarP(&flags.film, "film", "f", "", "film stock")
	cmd.Flags().IntVarP(&flags.iso, "iso", "i", 0, "ISO film speed")
	cmd.Flags().StringVar(&flags.gps, "gps", "", "GPS fix as decimal \"lat,lon\"")
	cmd.Flags().StringVar(&flags.notes, "notes", "", "free-form roll notes")

	cmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "re-tag frames already carrying this roll's identifier")
	cmd.Flags().BoolVar(&flags.clear, "clear", false, "drop all existing metadata before tagging")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "frames to tag concurrently (default: number of CPUs)")
	cmd.Flags().BoolVar(&flags.useExiftool, "use-exiftool", false, "route all frames through an exiftool subprocess (TIFF/RAW support)")
	cmd.Flags().BoolVar(&flags.noSort, "no-sort", false, "keep argument order instead of natural filename order")

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text", "log format (text, json)")

	cmd.AddCommand(newInspectCmd(flags))

	return cmd
}

func runTag(cmd *cobra.Command, flags *rootFlags, args []string) error {
	if len(args) == 0 {
		return errors.New("no scan files provided")
	}

	roll, err := buildRoll(flags)
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Options{Level: flags.logLevel, Format: flags.logFormat})
	if err != nil {
		return err
	}

	paths := append([]string(nil), args...)
	if !flags.noSort {
		rolltag.SortNatural(paths)
	}

	opts := []rolltag.RunOption{rolltag.WithLogger(log)}
	if flags.overwrite {
		opts = append(opts, rolltag.WithOverwrite())
	}
	if flags.clear {
		opts = append(opts, rolltag.WithClearExisting())
	}
	if flags.jobs > 0 {
		opts = append(opts, rolltag.WithConcurrency(flags.jobs))
	}
	if flags.useExiftool {
		et, err := exiftool.New()
		if err != nil {
			return err
		}
		defer et.Close()
		opts = append(opts, rolltag.WithCodec(et))
	}

	report, err := rolltag.Run(cmd.Context(), paths, roll, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, res := range report.Results {
		fmt.Fprintln(out, res)
		for _, w := range res.Warnings {
			fmt.Fprintf(out, "    warning: %s\n", w)
		}
	}
	fmt.Fprintln(out, report.Summary())

	if report.AnyFailed() {
		return fmt.Errorf("%d frame(s) failed", report.Failed)
	}
	return nil
}

// buildRoll merges the YAML roll file (if any) with flag values.
// Flags win over the file.
func buildRoll(flags *rootFlags) (rolltag.RollMetadata, error) {
	var roll rolltag.RollMetadata

	if flags.rollFile != "" {
		loaded, err := loadRollFile(flags.rollFile)
		if err != nil {
			return roll, err
		}
		roll = loaded
	}

	if flags.rollID != "" {
		roll.ID = flags.rollID
	}
	if flags.date != "" {
		t, err := parseDate(flags.date)
		if err != nil {
			return roll, err
		}
		roll.BaseTime = t
	}
	if flags.interval != 0 {
		roll.Interval = flags.interval
	}
	if flags.startFrame != 0 {
		roll.StartFrame = flags.startFrame
	}
	if flags.camera != "" {
		roll.Make, roll.Model = rolltag.SplitMakeModel(flags.camera)
	}
	if flags.lens != "" {
		roll.LensMake, roll.LensModel = rolltag.SplitMakeModel(flags.lens)
	}
	if flags.film != "" {
		roll.Film = flags.film
	}
	if flags.iso != 0 {
		roll.ISO = flags.iso
	}
	if flags.gps != "" {
		pos, err := parseGPS(flags.gps)
		if err != nil {
			return roll, err
		}
		roll.GPS = pos
	}
	if flags.notes != "" {
		roll.Notes = flags.notes
	}

	return roll, nil
}

// dateLayouts are accepted --date formats, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want 2006-01-02[T15:04:05])", s)
}

func parseGPS(s string) (*rolltag.GPSPosition, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("unrecognized GPS fix %q (want \"lat,lon\")", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return nil, fmt.Errorf("bad latitude in %q: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return nil, fmt.Errorf("bad longitude in %q: %w", s, err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("GPS fix %q out of range", s)
	}
	return &rolltag.GPSPosition{Latitude: lat, Longitude: lon}, nil
}
