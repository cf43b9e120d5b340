package types

import "strings"

// Address is the delivery address attached to an order. Stored as jsonb;
// geocoding and freight lookups happen in external collaborators.
type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
}

// Validate reports the first missing required field, or "".
func (a Address) Validate() string {
	switch {
	case strings.TrimSpace(a.Street) == "":
		return "street"
	case strings.TrimSpace(a.Number) == "":
		return "number"
	case strings.TrimSpace(a.District) == "":
		return "district"
	case strings.TrimSpace(a.City) == "":
		return "city"
	default:
		return ""
	}
}
