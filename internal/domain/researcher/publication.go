package researcher

import "strings"

// MaxAbstractRunes truncates stored abstracts.
const MaxAbstractRunes = 500

// Publication is one work attributed to a researcher. Title identifies
// the work when no DOI is present.
type Publication struct {
	Title     string   `json:"title"`
	DOI       string   `json:"doi,omitempty"`
	Year      int      `json:"year,omitempty"`
	Venue     string   `json:"venue,omitempty"`
	Citations int      `json:"citations"`
	Authors   []string `json:"authors,omitempty"`
	Abstract  string   `json:"abstract,omitempty"`
	Source    string   `json:"source,omitempty"`
}

// doiPrefixes are stripped during canonicalization, longest first.
var doiPrefixes = []string{
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"https://doi.org/",
	"http://doi.org/",
	"doi:",
}

// NormalizeDOI canonicalizes a DOI: trimmed, lowercased, resolver URL and
// "doi:" prefixes stripped. Empty input stays empty.
func NormalizeDOI(doi string) string {
	d := strings.ToLower(strings.TrimSpace(doi))
	for _, p := range doiPrefixes {
		if strings.HasPrefix(d, p) {
			d = d[len(p):]
			break
		}
	}
	return d
}

// Normalize returns a copy with the DOI canonicalized and the abstract
// truncated to MaxAbstractRunes.
func (p Publication) Normalize() Publication {
	p.DOI = NormalizeDOI(p.DOI)
	p.Abstract = TruncateAbstract(p.Abstract)
	return p
}

// TruncateAbstract cuts an abstract at MaxAbstractRunes runes.
func TruncateAbstract(abstract string) string {
	runes := []rune(abstract)
	if len(runes) <= MaxAbstractRunes {
		return abstract
	}
	return string(runes[:MaxAbstractRunes])
}
