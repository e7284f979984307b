package search

import "github.com/iris-research/iris/internal/domain/researcher"

// Result is a single ranked search hit: the record plus its raw semantic
// similarity and the blended weighted score.
type Result struct {
	Rank          int
	Record        *researcher.Record
	SemanticScore float64
	WeightedScore float64
}

// Response is a completed search: ranked results plus query metadata.
type Response struct {
	Query        string
	TotalIndexed int
	Results      []Result
	SearchTimeMs float64
}
