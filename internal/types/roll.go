// Package types provides core data structures for film-roll tagging.
//
// This package defines the RollMetadata, Frame, Resolved, Result, and
// Report types shared between the public API and the codec packages.
package types

import (
	"strings"
	"time"
)

// RollMetadata holds the base metadata shared by every frame of one
// scanned film roll. It is immutable once a batch starts; all per-frame
// values are derived from it.
type RollMetadata struct {
	// ID uniquely identifies the roll (e.g., "2024-03-portra400-01").
	// It is written to each frame and used for the already-tagged check.
	ID string

	// BaseTime is the capture timestamp of frame 0. Required.
	BaseTime time.Time

	// Interval is the time between consecutive frames. Must be >= 0.
	// Zero means every frame shares BaseTime.
	Interval time.Duration

	// StartFrame offsets the frame-number tag (frame number = index + StartFrame).
	StartFrame int

	// Camera body.
	Make  string
	Model string

	// Lens.
	LensMake  string
	LensModel string

	// Film stock (e.g., "Kodak Portra 400") and ISO speed.
	Film string
	ISO  int

	// GPS is the fix where the roll was shot, if known.
	GPS *GPSPosition

	// Notes is free-form text for the roll.
	Notes string
}

// GPSPosition is a decimal-degrees GPS fix.
type GPSPosition struct {
	Latitude  float64
	Longitude float64
}

// PerFrameOverride replaces selected roll-level values for one frame.
// Nil fields inherit from RollMetadata.
type PerFrameOverride struct {
	// Timestamp replaces the derived timestamp exactly. Must not be
	// earlier than the roll's BaseTime.
	Timestamp *time.Time

	// GPS replaces the roll's GPS fix for this frame.
	GPS *GPSPosition

	// Camera overrides, for mid-roll body or lens swaps.
	Make      string
	Model     string
	LensMake  string
	LensModel string

	// Notes replaces the roll notes for this frame.
	Notes string
}

// Resolved is the concrete metadata value set for one frame, ready to be
// staged by a codec. Produced by Resolve; never mutated afterwards.
type Resolved struct {
	Index       int
	FrameNumber int
	Timestamp   time.Time
	RollID      string
	Make        string
	Model       string
	LensMake    string
	LensModel   string
	Film        string
	ISO         int
	GPS         *GPSPosition
	Notes       string

	// ClearExisting drops all pre-existing tags before staging.
	ClearExisting bool
}

// SplitMakeModel splits a combined "Make Model ..." string the way the
// CLI accepts camera and lens flags: first word is the make, the rest is
// the model. Either part may come back empty.
func SplitMakeModel(s string) (make, model string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}
	parts := strings.SplitN(s, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}
