// Package observability exposes the Prometheus metrics shared across the API.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	activityRecordedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "neuromate",
		Subsystem: "persistence",
		Name:      "last_activity_recorded_timestamp_seconds",
		Help:      "Unix timestamp of the most recent wellness activity persisted to Postgres.",
	})
	activityRecordedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neuromate",
		Subsystem: "persistence",
		Name:      "activities_recorded_total",
		Help:      "Number of wellness activities persisted, labeled by category.",
	}, []string{"category"})

	calendarBuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "neuromate",
		Subsystem: "calendar",
		Name:      "build_duration_seconds",
		Help:      "Time spent fetching and aggregating a contribution calendar.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
	})
	calendarFetchFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neuromate",
		Subsystem: "calendar",
		Name:      "category_fetch_failures_total",
		Help:      "Number of category fetches that failed and contributed no activities.",
	}, []string{"category"})
	calendarSkippedRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neuromate",
		Subsystem: "calendar",
		Name:      "records_skipped_total",
		Help:      "Number of records dropped during normalization because their timestamp was missing.",
	}, []string{"category"})
	calendarCacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neuromate",
		Subsystem: "calendar",
		Name:      "cache_requests_total",
		Help:      "Calendar memo lookups, labeled by result.",
	}, []string{"result"})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neuromate",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, labeled by method, route and status code.",
	}, []string{"method", "route", "code"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "neuromate",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, labeled by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func init() {
	prometheus.MustRegister(
		activityRecordedGauge,
		activityRecordedCounter,
		calendarBuildDuration,
		calendarFetchFailures,
		calendarSkippedRecords,
		calendarCacheRequests,
		httpRequests,
		httpDuration,
	)
}

// RecordActivityPersisted updates the persistence watermark gauge.
func RecordActivityPersisted(category string, ts time.Time) {
	activityRecordedCounter.WithLabelValues(category).Inc()
	if ts.IsZero() {
		return
	}
	activityRecordedGauge.Set(float64(ts.Unix()))
}

// ObserveCalendarBuild records how long a calendar took to build.
func ObserveCalendarBuild(d time.Duration) {
	calendarBuildDuration.Observe(d.Seconds())
}

// RecordCategoryFetchFailure counts a category that degraded to an empty list.
func RecordCategoryFetchFailure(category string) {
	calendarFetchFailures.WithLabelValues(category).Inc()
}

// RecordSkippedRecords counts records dropped during normalization.
func RecordSkippedRecords(category string, n int) {
	if n <= 0 {
		return
	}
	calendarSkippedRecords.WithLabelValues(category).Add(float64(n))
}

// RecordCalendarCache counts a memo lookup.
func RecordCalendarCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	calendarCacheRequests.WithLabelValues(result).Inc()
}

// ObserveHTTPRequest records one served request. route must be low cardinality.
func ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
