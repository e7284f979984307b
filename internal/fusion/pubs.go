package fusion

import (
	"sort"
	"strings"

	"github.com/iris-research/iris/internal/domain/researcher"
)

// DedupePublications merges two publication lists into one deduplicated
// list of at most cap entries, sorted by citations descending, ties broken
// by year descending (missing year sorts last).
//
// Duplicates collapse on canonical DOI equality or on titles that are
// case-insensitive substrings of one another. The surviving instance is
// the first seen in iteration order (all of a, then all of b), pinned as
// the contract even though either copy would be a defensible choice.
// The set of kept publications is order-independent up to the truncation
// boundary; their stored citation counts are not.
func DedupePublications(a, b []researcher.Publication, cap int) []researcher.Publication {
	seenDOIs := make(map[string]bool)
	var seenTitles []string

	unique := make([]researcher.Publication, 0, len(a)+len(b))
	for _, pub := range append(append([]researcher.Publication{}, a...), b...) {
		pub = pub.Normalize()
		title := strings.ToLower(strings.TrimSpace(pub.Title))

		if pub.DOI != "" && seenDOIs[pub.DOI] {
			continue
		}
		if title != "" && titleSeen(title, seenTitles) {
			continue
		}

		unique = append(unique, pub)
		if pub.DOI != "" {
			seenDOIs[pub.DOI] = true
		}
		if title != "" {
			seenTitles = append(seenTitles, title)
		}
	}

	sortPublications(unique)

	if cap > 0 && len(unique) > cap {
		unique = unique[:cap]
	}
	return unique
}

// titleSeen reports whether title is a substring of any seen title or
// vice versa (fuzzy duplicate: subtitle variants, trailing venue text).
func titleSeen(title string, seen []string) bool {
	for _, t := range seen {
		if strings.Contains(t, title) || strings.Contains(title, t) {
			return true
		}
	}
	return false
}

// sortPublications orders by citations descending, then year descending.
// The sort is stable so equal entries keep their first-seen order.
func sortPublications(pubs []researcher.Publication) {
	sort.SliceStable(pubs, func(i, j int) bool {
		if pubs[i].Citations != pubs[j].Citations {
			return pubs[i].Citations > pubs[j].Citations
		}
		return pubs[i].Year > pubs[j].Year
	})
}
