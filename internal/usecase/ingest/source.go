package ingest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iris-research/iris/internal/domain/researcher"
	"github.com/iris-research/iris/internal/fusion"
)

// Source is one upstream adapter output: a JSON array or JSONL file of
// partial researcher records produced by a scraper or API client.
type Source struct {
	// Name is the provenance identifier ("openalex", "orcid", ...).
	Name string
	// Path is the record file.
	Path string
}

// rawRecord is the wire shape of a partial record. Sources disagree on
// field presence; everything is optional and defaults are zero values.
type rawRecord struct {
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	Institution  string                   `json:"institution"`
	Affiliations []researcher.Affiliation `json:"affiliations"`

	Field    string `json:"field"`
	Subfield string `json:"subfield"`

	HIndex    int `json:"h_index"`
	I10Index  int `json:"i10_index"`
	Citations int `json:"citations"`

	Interests    []string                 `json:"interests"`
	Publications []researcher.Publication `json:"publications"`

	OpenAlexID string `json:"openalex_id"`
	ORCID      string `json:"orcid"`
}

// toRecord converts a raw partial record into the domain shape, running
// affiliation verification against the target institution keywords.
func (raw *rawRecord) toRecord(source string, keywords []string) researcher.Record {
	affs := raw.Affiliations
	if len(affs) == 0 && raw.Institution != "" {
		affs = []researcher.Affiliation{researcher.AffiliationFromString(raw.Institution)}
	}

	pubs := make([]researcher.Publication, 0, len(raw.Publications))
	for _, p := range raw.Publications {
		if p.Source == "" {
			p.Source = source
		}
		pubs = append(pubs, p.Normalize())
	}

	return researcher.Record{
		Name:                strings.TrimSpace(raw.Name),
		FirstName:           raw.FirstName,
		LastName:            raw.LastName,
		Institution:         raw.Institution,
		InstitutionKeywords: keywords,
		Field:               raw.Field,
		Subfield:            raw.Subfield,
		Metrics: researcher.Metrics{
			HIndex:         maxZero(raw.HIndex),
			I10Index:       maxZero(raw.I10Index),
			TotalCitations: maxZero(raw.Citations),
		},
		Interests:    raw.Interests,
		Publications: pubs,
		OpenAlexID:   raw.OpenAlexID,
		ORCID:        raw.ORCID,
		Provenance:   []string{source},
		Verified:     len(keywords) > 0 && fusion.VerifyAffiliation(affs, keywords),
	}
}

// ReadSource decodes a source file and yields one domain record per raw
// record. Supports a top-level JSON array or JSONL. Records without a
// name are dropped (nothing to merge on).
func ReadSource(src Source, keywords []string, yield func(researcher.Record)) error {
	data, err := os.ReadFile(filepath.Clean(src.Path))
	if err != nil {
		return fmt.Errorf("read source %s: %w", src.Name, err)
	}

	emit := func(raw *rawRecord) {
		if strings.TrimSpace(raw.Name) == "" {
			return
		}
		yield(raw.toRecord(src.Name, keywords))
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var raws []rawRecord
		if err := json.Unmarshal(data, &raws); err != nil {
			return fmt.Errorf("parse source %s: %w", src.Name, err)
		}
		for i := range raws {
			emit(&raws[i])
		}
		return nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var raw rawRecord
		if err := json.Unmarshal(text, &raw); err != nil {
			return fmt.Errorf("parse source %s line %d: %w", src.Name, line, err)
		}
		emit(&raw)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan source %s: %w", src.Name, err)
	}
	return nil
}

func maxZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
