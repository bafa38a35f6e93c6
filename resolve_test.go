package rolltag_test

import (
	"errors"
	"testing"
	"time"

	"github.com/filmlab/rolltag"
)

var t0 = time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC)

func validRoll() rolltag.RollMetadata {
	return rolltag.RollMetadata{
		ID:         "2024-03-portra400-01",
		BaseTime:   t0,
		Interval:   time.Minute,
		StartFrame: 1,
		Make:       "Nikon",
		Model:      "FM2",
		Film:       "Kodak Portra 400",
		ISO:        400,
	}
}

func TestResolve_DerivedValues(t *testing.T) {
	roll := validRoll()

	for index, want := range []time.Time{t0, t0.Add(time.Minute), t0.Add(2 * time.Minute)} {
		meta, err := rolltag.Resolve(roll, index, nil)
		if err != nil {
			t.Fatalf("Resolve(%d): %v", index, err)
		}
		if !meta.Timestamp.Equal(want) {
			t.Errorf("frame %d timestamp = %v, want %v", index, meta.Timestamp, want)
		}
		if meta.FrameNumber != index+1 {
			t.Errorf("frame %d number = %d, want %d", index, meta.FrameNumber, index+1)
		}
		if meta.RollID != roll.ID {
			t.Errorf("frame %d roll id = %q", index, meta.RollID)
		}
		if meta.Make != "Nikon" || meta.Model != "FM2" {
			t.Errorf("frame %d camera = %q %q, want roll values", index, meta.Make, meta.Model)
		}
	}
}

func TestResolve_TimestampsNonDecreasing(t *testing.T) {
	roll := validRoll()
	roll.Interval = 17 * time.Second

	prev := time.Time{}
	for index := 0; index < 40; index++ {
		meta, err := rolltag.Resolve(roll, index, nil)
		if err != nil {
			t.Fatalf("Resolve(%d): %v", index, err)
		}
		if meta.Timestamp.Before(prev) {
			t.Fatalf("timestamp decreased at frame %d: %v < %v", index, meta.Timestamp, prev)
		}
		prev = meta.Timestamp
	}
}

func TestResolve_ZeroInterval(t *testing.T) {
	roll := validRoll()
	roll.Interval = 0

	meta, err := rolltag.Resolve(roll, 10, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !meta.Timestamp.Equal(t0) {
		t.Errorf("timestamp = %v, want base time for zero interval", meta.Timestamp)
	}
}

func TestResolve_OverrideWinsExactly(t *testing.T) {
	roll := validRoll()
	exact := t0.Add(90 * time.Minute)

	meta, err := rolltag.Resolve(roll, 2, &rolltag.PerFrameOverride{Timestamp: &exact})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !meta.Timestamp.Equal(exact) {
		t.Errorf("timestamp = %v, want override %v", meta.Timestamp, exact)
	}
}

func TestResolve_OverrideFields(t *testing.T) {
	roll := validRoll()
	override := &rolltag.PerFrameOverride{
		GPS:   &rolltag.GPSPosition{Latitude: 46.519, Longitude: 6.633},
		Model: "F3",
		Notes: "borrowed body",
	}

	meta, err := rolltag.Resolve(roll, 5, override)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if meta.GPS == nil || meta.GPS.Latitude != 46.519 {
		t.Errorf("GPS not overridden: %+v", meta.GPS)
	}
	if meta.Model != "F3" {
		t.Errorf("model = %q, want override", meta.Model)
	}
	if meta.Make != "Nikon" {
		t.Errorf("make = %q, want inherited roll value", meta.Make)
	}
	if meta.Notes != "borrowed body" {
		t.Errorf("notes = %q, want override", meta.Notes)
	}
}

func TestResolve_Invalid(t *testing.T) {
	early := t0.Add(-time.Second)

	tests := []struct {
		name     string
		mutate   func(*rolltag.RollMetadata)
		override *rolltag.PerFrameOverride
	}{
		{
			name:   "missing base timestamp",
			mutate: func(r *rolltag.RollMetadata) { r.BaseTime = time.Time{} },
		},
		{
			name:   "negative interval",
			mutate: func(r *rolltag.RollMetadata) { r.Interval = -time.Second },
		},
		{
			name:   "missing roll id",
			mutate: func(r *rolltag.RollMetadata) { r.ID = "" },
		},
		{
			name:     "override earlier than base",
			mutate:   func(r *rolltag.RollMetadata) {},
			override: &rolltag.PerFrameOverride{Timestamp: &early},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roll := validRoll()
			tt.mutate(&roll)

			_, err := rolltag.Resolve(roll, 0, tt.override)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var invalid *rolltag.InvalidMetadataError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *InvalidMetadataError, got %T: %v", err, err)
			}
		})
	}
}
