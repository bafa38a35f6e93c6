package main

import (
	"fmt"
	"os"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/cobra"

	"github.com/filmlab/rolltag"
)

// newInspectCmd reports the tagging state of scans without modifying
// anything: which files already carry a roll identifier and capture
// timestamp, and which are still untagged.
func newInspectCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <scans...>",
		Short: "Report existing roll tags without modifying any file",
		Long: `Inspect reads each scan's Exif and reports its roll identifier and
capture timestamp. Use it before a run to see which frames would be
skipped, or after one to verify a roll.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := append([]string(nil), args...)
			if !flags.noSort {
				rolltag.SortNatural(paths)
			}

			out := cmd.OutOrStdout()
			tagged := 0
			for _, path := range paths {
				rollID, taken := inspectFile(path)
				switch {
				case rollID != "":
					tagged++
					fmt.Fprintf(out, "%s: roll %s, taken %s\n", path, rollID, taken)
				case taken != "":
					fmt.Fprintf(out, "%s: untagged (taken %s)\n", path, taken)
				default:
					fmt.Fprintf(out, "%s: untagged\n", path)
				}
			}
			fmt.Fprintf(out, "%d of %d tagged\n", tagged, len(paths))
			return nil
		},
	}
}

// inspectFile extracts the roll identifier and capture timestamp from a
// file's Exif. Missing or unreadable Exif reads as untagged.
func inspectFile(path string) (rollID, taken string) {
	f, err := os.Open(path)
	if err != nil {
		return "", ""
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return "", ""
	}

	if tag, err := x.Get(exif.ImageUniqueID); err == nil {
		rollID, _ = tag.StringVal()
	}
	if tag, err := x.Get(exif.DateTimeOriginal); err == nil {
		taken, _ = tag.StringVal()
	}
	return rollID, taken
}
