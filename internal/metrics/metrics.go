package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	classificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sms_classifier_classifications_total",
			Help: "Total classified messages by predicted label",
		},
		[]string{"label"},
	)

	classificationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sms_classifier_classification_seconds",
			Help:    "Latency of the normalize-transform-score pipeline",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
	)

	artifactFetchSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sms_classifier_artifact_fetch_seconds",
			Help:    "Duration of remote artifact fetches by outcome",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		},
		[]string{"outcome"},
	)

	cacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sms_classifier_cache_hits_total",
			Help: "Classification result cache hits",
		},
	)

	cacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sms_classifier_cache_misses_total",
			Help: "Classification result cache misses",
		},
	)
)

// RecordClassification records one scored message
func RecordClassification(label string, d time.Duration) {
	classificationsTotal.WithLabelValues(label).Inc()
	classificationSeconds.Observe(d.Seconds())
}

// RecordFetch records one remote artifact fetch attempt chain
func RecordFetch(d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	artifactFetchSeconds.WithLabelValues(outcome).Observe(d.Seconds())
}

// RecordCacheHit increments the cache hit counter
func RecordCacheHit() {
	cacheHitsTotal.Inc()
}

// RecordCacheMiss increments the cache miss counter
func RecordCacheMiss() {
	cacheMissesTotal.Inc()
}
