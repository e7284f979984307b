// Package fusion implements identity verification and record fusion:
// deciding whether partial records from untrusted, overlapping sources
// describe the same person, and merging them into one canonical record
// without losing information.
package fusion

import (
	"strings"

	"github.com/iris-research/iris/internal/domain/researcher"
)

// VerifyAffiliation reports whether any affiliation entry names the target
// institution: true iff at least one entry's lowercase display string
// contains at least one keyword as a substring. Pure substring containment,
// no tokenization. Missing or malformed entries contribute nothing; an
// empty input yields false, never an error.
//
// This is the sole gate that marks a record's source as verified.
func VerifyAffiliation(affs []researcher.Affiliation, keywords []string) bool {
	for _, aff := range affs {
		display := aff.Display()
		if display == "" {
			continue
		}
		for _, kw := range keywords {
			if kw != "" && strings.Contains(display, kw) {
				return true
			}
		}
	}
	return false
}
