package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	batchesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nouns_indexer_batches_total",
			Help: "Total number of block batches committed",
		},
		[]string{"event"},
	)

	recordsIndexed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nouns_indexer_records_total",
			Help: "Total number of records appended to the index",
		},
		[]string{"event", "path"},
	)

	queryRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nouns_indexer_query_retries_total",
			Help: "Total number of retried chain queries",
		},
		[]string{"event"},
	)

	runFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nouns_indexer_run_failures_total",
			Help: "Total number of failed index runs",
		},
		[]string{"event"},
	)

	lastIndexedBlock = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nouns_indexer_last_indexed_block",
			Help: "The last block number covered by the index",
		},
		[]string{"event"},
	)

	queryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nouns_indexer_query_duration_seconds",
			Help:    "Duration of chain log queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"event"},
	)
)

func BatchInc(event string) {
	batchesProcessed.WithLabelValues(event).Inc()
}

// RecordsAdd counts appended records; path is "backfill" or "live".
func RecordsAdd(event, path string, n int) {
	recordsIndexed.WithLabelValues(event, path).Add(float64(n))
}

func QueryRetryInc(event string) {
	queryRetries.WithLabelValues(event).Inc()
}

func RunFailureInc(event string) {
	runFailures.WithLabelValues(event).Inc()
}

func LastIndexedBlockSet(event string, block uint64) {
	lastIndexedBlock.WithLabelValues(event).Set(float64(block))
}

func QueryDurationObserve(event string, seconds float64) {
	queryDuration.WithLabelValues(event).Observe(seconds)
}
