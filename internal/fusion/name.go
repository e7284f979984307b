package fusion

import "strings"

// NamesMatch reports whether two name strings plausibly refer to the same
// person. Either normalized name being a substring of the other matches
// ("Jane Smith" vs "Dr. Jane Smith"); otherwise the surnames (last
// whitespace tokens) must be equal and the first tokens must share their
// first byte.
//
// This is a heuristic, not a proof of identity: surname + first-initial is
// a known false-positive source for common surnames ("Kim", "Smith"). The
// imprecision is accepted; do not strengthen without precision/recall data.
func NamesMatch(a, b string) bool {
	n1 := strings.ToLower(strings.TrimSpace(a))
	n2 := strings.ToLower(strings.TrimSpace(b))
	if n1 == "" || n2 == "" {
		return false
	}

	if strings.Contains(n1, n2) || strings.Contains(n2, n1) {
		return true
	}

	parts1 := strings.Fields(n1)
	parts2 := strings.Fields(n2)
	if len(parts1) == 0 || len(parts2) == 0 {
		return false
	}
	if parts1[len(parts1)-1] != parts2[len(parts2)-1] {
		return false
	}
	return parts1[0][0] == parts2[0][0]
}
