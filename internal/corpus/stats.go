package corpus

import (
	"sort"
)

// TopInstitutions limits the institution leaderboard in Stats.
const TopInstitutions = 15

// InstitutionCount is one entry of the institution leaderboard.
type InstitutionCount struct {
	Institution string `json:"institution"`
	Count       int    `json:"count"`
}

// Stats summarizes a corpus generation.
type Stats struct {
	TotalResearchers int                `json:"total_researchers"`
	TotalCitations   int                `json:"total_citations"`
	AvgHIndex        float64            `json:"avg_h_index"`
	MaxHIndex        int                `json:"max_h_index"`
	HIndexPercentile map[string]int     `json:"h_index_percentiles"`
	TopInstitutions  []InstitutionCount `json:"top_institutions"`
	Meta             Meta               `json:"index_metadata"`
}

// Stats computes summary statistics over the snapshot.
func (s *Snapshot) Stats() Stats {
	st := Stats{
		TotalResearchers: len(s.records),
		HIndexPercentile: map[string]int{},
		Meta:             s.meta,
	}
	if len(s.records) == 0 {
		return st
	}

	hIndices := make([]int, 0, len(s.records))
	instCounts := make(map[string]int)
	var hSum int

	for i := range s.records {
		r := &s.records[i]
		h := r.Metrics.HIndex
		hIndices = append(hIndices, h)
		hSum += h
		st.TotalCitations += r.Metrics.TotalCitations
		if h > st.MaxHIndex {
			st.MaxHIndex = h
		}
		inst := r.Institution
		if inst == "" {
			inst = "Unknown"
		}
		instCounts[inst]++
	}

	st.AvgHIndex = float64(hSum) / float64(len(hIndices))

	sort.Ints(hIndices)
	for _, p := range []int{50, 75, 90, 99} {
		st.HIndexPercentile[percentileKey(p)] = percentile(hIndices, p)
	}

	top := make([]InstitutionCount, 0, len(instCounts))
	for inst, n := range instCounts {
		top = append(top, InstitutionCount{Institution: inst, Count: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Institution < top[j].Institution
	})
	if len(top) > TopInstitutions {
		top = top[:TopInstitutions]
	}
	st.TopInstitutions = top

	return st
}

// percentile returns the nearest-rank p-th percentile of sorted values.
func percentile(sorted []int, p int) int {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p*len(sorted) + 99) / 100
	if idx < 1 {
		idx = 1
	}
	if idx > len(sorted) {
		idx = len(sorted)
	}
	return sorted[idx-1]
}

func percentileKey(p int) string {
	switch p {
	case 50:
		return "50th"
	case 75:
		return "75th"
	case 90:
		return "90th"
	case 99:
		return "99th"
	default:
		return ""
	}
}
