package enums

import "fmt"

// HalfSelection targets a variation at one half of a combined pizza, or both.
// Meaningful only on half-and-half lines whose group allows per-half targeting.
type HalfSelection string

const (
	HalfSelectionNone  HalfSelection = ""
	HalfSelectionHalf1 HalfSelection = "half1"
	HalfSelectionHalf2 HalfSelection = "half2"
	HalfSelectionWhole HalfSelection = "whole"
)

var validHalfSelections = []HalfSelection{
	HalfSelectionHalf1,
	HalfSelectionHalf2,
	HalfSelectionWhole,
}

// IsValid reports whether the value is a concrete half target. The empty
// value is legal on a selection row but is not a choosable target.
func (h HalfSelection) IsValid() bool {
	for _, candidate := range validHalfSelections {
		if candidate == h {
			return true
		}
	}
	return false
}

// ParseHalfSelection converts the raw string to HalfSelection.
func ParseHalfSelection(value string) (HalfSelection, error) {
	for _, candidate := range validHalfSelections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid half selection %q", value)
}
