// Package researcher defines the canonical researcher record and its
// publication list as produced by record fusion and served at query time.
package researcher

import "strings"

// MaxInterests caps the interests list after a merge.
const MaxInterests = 15

// MaxPublications caps the publication list after a merge.
const MaxPublications = 50

// Metrics holds the quantitative quality signals of a record.
// All values are non-negative; absent values are zero.
type Metrics struct {
	HIndex         int `json:"h_index"`
	I10Index       int `json:"i10_index"`
	TotalCitations int `json:"citations"`
}

// Record is one canonical researcher. Records are assembled by merging
// partial per-source records and are immutable once published into a
// corpus snapshot.
type Record struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`

	Institution string `json:"institution"`
	// InstitutionKeywords are the lowercase tokens used for affiliation
	// membership tests (e.g. "kennesaw", "ksu").
	InstitutionKeywords []string `json:"institution_keywords,omitempty"`

	Field    string `json:"field,omitempty"`
	Subfield string `json:"subfield,omitempty"`

	Metrics      Metrics       `json:"metrics"`
	Interests    []string      `json:"interests,omitempty"`
	Publications []Publication `json:"publications,omitempty"`

	OpenAlexID string `json:"openalex_id,omitempty"`
	ORCID      string `json:"orcid,omitempty"`

	// Provenance lists the source identifiers that contributed to this
	// record ("openalex", "orcid", "semantic_scholar", ...).
	Provenance []string `json:"sources,omitempty"`

	// Verified is true once any contributing source's affiliation data
	// matched the institution keyword set. Merging never clears it.
	Verified bool `json:"verified"`
}

// PublicationCount is derived from the publication list.
func (r *Record) PublicationCount() int { return len(r.Publications) }

// HasSource reports whether the named source contributed to this record.
func (r *Record) HasSource(source string) bool {
	for _, s := range r.Provenance {
		if s == source {
			return true
		}
	}
	return false
}

// EmbeddingText is the text embedded into the vector index for this
// record: name, discipline, interests and institution, space-joined.
func (r *Record) EmbeddingText() string {
	parts := make([]string, 0, 4+len(r.Interests))
	for _, p := range []string{r.Name, r.Field, r.Subfield} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, r.Interests...)
	if r.Institution != "" {
		parts = append(parts, r.Institution)
	}
	return strings.Join(parts, " ")
}
