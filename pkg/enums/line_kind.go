package enums

import "fmt"

// LineKind is the closed variant tag for cart and order lines. A standard
// line snapshots one catalog item; a half-pizza line snapshots a combined
// flavor pair priced as a single entity.
type LineKind string

const (
	LineKindStandard  LineKind = "standard"
	LineKindHalfPizza LineKind = "half_pizza"
)

var validLineKinds = []LineKind{
	LineKindStandard,
	LineKindHalfPizza,
}

// IsValid reports whether the value matches the canonical line kind enum.
func (k LineKind) IsValid() bool {
	for _, candidate := range validLineKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseLineKind converts the raw string to LineKind.
func ParseLineKind(value string) (LineKind, error) {
	for _, candidate := range validLineKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid line kind %q", value)
}
