// Package metrics defines Prometheus metrics for vinted-scanner.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vinted_scanner"

// Scan metrics.
var (
	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scan_duration_seconds",
		Help:      "Duration of scan passes in seconds.",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
	})

	ScanLastSuccessTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scan_last_completed_timestamp_seconds",
		Help:      "Unix timestamp of the last completed scan pass.",
	})

	QueriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queries_total",
		Help:      "Total number of catalog queries processed.",
	})

	QueryFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "query_failures_total",
		Help:      "Total number of catalog queries that returned no data.",
	})

	ListingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_total",
		Help:      "Total number of listings observed in search results.",
	})

	NovelListingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "novel_listings_total",
		Help:      "Total number of listings not present in the seen-set.",
	})
)

// Catalog API metrics.
var (
	CatalogRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_requests_total",
		Help:      "Total catalog HTTP requests by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	CatalogRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalog_request_duration_seconds",
		Help:      "Duration of catalog HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	CatalogCallsRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_calls_remaining",
		Help:      "Catalog calls left in the per-run budget at the end of the last scan, -1 when unlimited.",
	})

	EnrichmentFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrichment_failures_total",
		Help:      "Total number of listing detail fetches that failed.",
	})
)

// Seen-set metrics.
var (
	SeenSetSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "seen_set_size",
		Help:      "Number of tracked listing identifiers after the last scan.",
	})

	StoreErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_errors_total",
		Help:      "Total seen-set store failures by operation.",
	}, []string{"backend", "operation"})
)

// Notification metrics.
var (
	NotificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total notifications delivered by notifier and variant.",
	}, []string{"notifier", "variant"})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})

	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of notification sends in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)
