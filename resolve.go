package rolltag

import (
	"time"

	"github.com/filmlab/rolltag/internal/types"
)

// ValidateRoll checks roll-level metadata before any file is touched.
//
// Returns *InvalidMetadataError if the base timestamp is absent, the
// per-frame interval is negative, or the roll identifier is empty (the
// identifier is what makes re-runs idempotent, so it is required).
func ValidateRoll(roll RollMetadata) error {
	if roll.ID == "" {
		return &types.InvalidMetadataError{Index: -1, Reason: "roll identifier is required"}
	}
	if roll.BaseTime.IsZero() {
		return &types.InvalidMetadataError{Index: -1, Reason: "base timestamp is required"}
	}
	if roll.Interval < 0 {
		return &types.InvalidMetadataError{Index: -1, Reason: "per-frame interval must not be negative"}
	}
	if roll.ISO < 0 {
		return &types.InvalidMetadataError{Index: -1, Reason: "ISO must not be negative"}
	}
	return nil
}

// Resolve computes the concrete metadata value set for one frame.
//
// The derived timestamp is BaseTime + index*Interval unless the override
// supplies one, in which case the override wins exactly. The frame
// number is index + StartFrame. GPS and camera fields copy verbatim from
// the roll unless overridden. Pure function; no I/O.
//
// Returns *InvalidMetadataError if the roll is invalid or an override
// timestamp is earlier than the roll's base timestamp. The monotonicity
// guard exists so a typo in an override cannot silently reorder the roll.
func Resolve(roll RollMetadata, index int, override *PerFrameOverride) (*Resolved, error) {
	if err := ValidateRoll(roll); err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, &types.InvalidMetadataError{Index: index, Reason: "negative frame index"}
	}

	r := &Resolved{
		Index:       index,
		FrameNumber: index + roll.StartFrame,
		Timestamp:   roll.BaseTime.Add(time.Duration(index) * roll.Interval),
		RollID:      roll.ID,
		Make:        roll.Make,
		Model:       roll.Model,
		LensMake:    roll.LensMake,
		LensModel:   roll.LensModel,
		Film:        roll.Film,
		ISO:         roll.ISO,
		GPS:         roll.GPS,
		Notes:       roll.Notes,
	}

	if override == nil {
		return r, nil
	}

	if override.Timestamp != nil {
		if override.Timestamp.Before(roll.BaseTime) {
			return nil, &types.InvalidMetadataError{
				Index:  index,
				Reason: "override timestamp is earlier than the roll's base timestamp",
			}
		}
		r.Timestamp = *override.Timestamp
	}
	if override.GPS != nil {
		r.GPS = override.GPS
	}
	if override.Make != "" {
		r.Make = override.Make
	}
	if override.Model != "" {
		r.Model = override.Model
	}
	if override.LensMake != "" {
		r.LensMake = override.LensMake
	}
	if override.LensModel != "" {
		r.LensModel = override.LensModel
	}
	if override.Notes != "" {
		r.Notes = override.Notes
	}

	return r, nil
}
