package fusion

import "github.com/iris-research/iris/internal/domain/researcher"

// Merge fuses two partial records for the same logical person into one
// canonical record, never losing known information:
//
//   - numeric metrics take the maximum of the two inputs;
//   - interests and provenance are set unions (interests capped at
//     MaxInterests, insertion order, base entries first; which entries
//     survive past the cap is an accepted nondeterminism);
//   - publications are deduplicated via DedupePublications with cap
//     MaxPublications;
//   - verified is a logical OR: once any source passed affiliation
//     verification the merged record stays verified;
//   - base wins ties on plain string fields when both sides are non-empty.
//
// Merge is idempotent and, for metrics/provenance/interests, associative
// across any application order. Publication list order may differ across
// merge orders at the truncation boundary.
func Merge(base, overlay researcher.Record) researcher.Record {
	merged := base

	merged.Name = firstNonEmpty(base.Name, overlay.Name)
	merged.FirstName = firstNonEmpty(base.FirstName, overlay.FirstName)
	merged.LastName = firstNonEmpty(base.LastName, overlay.LastName)
	merged.Institution = firstNonEmpty(base.Institution, overlay.Institution)
	merged.Field = firstNonEmpty(base.Field, overlay.Field)
	merged.Subfield = firstNonEmpty(base.Subfield, overlay.Subfield)
	merged.OpenAlexID = firstNonEmpty(base.OpenAlexID, overlay.OpenAlexID)
	merged.ORCID = firstNonEmpty(base.ORCID, overlay.ORCID)

	merged.InstitutionKeywords = unionStrings(base.InstitutionKeywords, overlay.InstitutionKeywords, 0)

	merged.Metrics = researcher.Metrics{
		HIndex:         maxInt(base.Metrics.HIndex, overlay.Metrics.HIndex),
		I10Index:       maxInt(base.Metrics.I10Index, overlay.Metrics.I10Index),
		TotalCitations: maxInt(base.Metrics.TotalCitations, overlay.Metrics.TotalCitations),
	}

	merged.Interests = unionStrings(base.Interests, overlay.Interests, researcher.MaxInterests)
	merged.Publications = DedupePublications(base.Publications, overlay.Publications, researcher.MaxPublications)
	merged.Provenance = unionStrings(base.Provenance, overlay.Provenance, 0)
	merged.Verified = base.Verified || overlay.Verified

	return merged
}

// unionStrings unions two string slices preserving first-seen order,
// truncating to cap when cap > 0.
func unionStrings(a, b []string, cap int) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	if cap > 0 && len(out) > cap {
		out = out[:cap]
	}
	return out
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
