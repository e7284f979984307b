package researcher

import (
	"encoding/json"
	"strings"
)

// Affiliation is one affiliation entry from an upstream source. Sources
// disagree on shape: some emit a plain string, others an object with a
// display_name or name field. Decoding accepts both; malformed entries
// degrade to an empty display string, never an error.
type Affiliation struct {
	DisplayName string `json:"display_name,omitempty"`
	RawName     string `json:"name,omitempty"`
}

// AffiliationFromString wraps a plain affiliation string.
func AffiliationFromString(s string) Affiliation {
	return Affiliation{DisplayName: s}
}

// Display returns the lowercase display string for membership tests.
// Empty when the entry carried no usable name.
func (a Affiliation) Display() string {
	if a.DisplayName != "" {
		return strings.ToLower(a.DisplayName)
	}
	return strings.ToLower(a.RawName)
}

// UnmarshalJSON accepts both the string and object encodings.
func (a *Affiliation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Affiliation{DisplayName: s}
		return nil
	}

	type object Affiliation
	var o object
	if err := json.Unmarshal(data, &o); err == nil {
		*a = Affiliation(o)
		return nil
	}

	// Unknown shape (number, array, nested institution object without the
	// expected fields): treat as no affiliation information.
	*a = Affiliation{}
	return nil
}
