package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and ingestion pipeline metrics.
var (
	SearchCandidatesFetched = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "iris",
			Name:      "search_candidates_fetched",
			Help:      "Nearest-neighbor candidates returned by the vector index per query",
			Buckets:   []float64{0, 10, 25, 50, 100, 200, 350, 500},
		},
	)

	SearchCandidatesFiltered = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "iris",
			Name:      "search_candidates_filtered",
			Help:      "Candidates surviving the hard filters per query",
			Buckets:   []float64{0, 10, 25, 50, 100, 200, 350, 500},
		},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "iris",
			Name:      "search_duration_seconds",
			Help:      "Full search pipeline duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	IngestRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iris",
			Name:      "ingest_records_total",
			Help:      "Partial records read per source during ingestion",
		},
		[]string{"source"},
	)

	IngestDuplicatesCollapsed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "iris",
			Name:      "ingest_duplicates_collapsed_total",
			Help:      "Partial records merged into an existing identity",
		},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers search and ingest metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchCandidatesFetched)
	prometheus.MustRegister(SearchCandidatesFiltered)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(IngestRecordsTotal)
	prometheus.MustRegister(IngestDuplicatesCollapsed)
	pipelineMetricsRegistered = true
}
