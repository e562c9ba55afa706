// Package metrics holds the prometheus collectors for the recommendation service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FeedLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chef_feed_latency_seconds",
			Help:    "Latency of personalized feed generation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"cache"},
	)

	FeedRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chef_feed_requests_total",
			Help: "Personalized feed requests by cache result",
		},
		[]string{"cache"},
	)

	SkippedCandidates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chef_feed_skipped_candidates_total",
			Help: "Candidates dropped from a feed because they could not be scored",
		},
	)

	InteractionsTracked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_tracked_total",
			Help: "Interactions written to the ledger",
		},
		[]string{"content_type", "interaction_type"},
	)

	PreferenceUpdateFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "preference_update_failures_total",
			Help: "Preference learning steps that failed after the interaction was written",
		},
	)

	TrendingLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trending_latency_seconds",
			Help:    "Latency of trending calculation",
			Buckets: prometheus.DefBuckets,
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func cacheLabel(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func ObserveFeed(cacheHit bool, d time.Duration) {
	label := cacheLabel(cacheHit)
	FeedRequests.WithLabelValues(label).Inc()
	FeedLatency.WithLabelValues(label).Observe(d.Seconds())
}

func RecordSkippedCandidate() {
	SkippedCandidates.Inc()
}

func RecordInteraction(contentType, interactionType string) {
	InteractionsTracked.WithLabelValues(contentType, interactionType).Inc()
}

func RecordPreferenceUpdateFailure() {
	PreferenceUpdateFailures.Inc()
}

func ObserveTrending(d time.Duration) {
	TrendingLatency.Observe(d.Seconds())
}

func ObserveHTTPRequest(method, route, status string, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPLatency.WithLabelValues(method, route).Observe(d.Seconds())
}
