package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ExchangeMetrics holds every Prometheus collector exported by the service.
type ExchangeMetrics struct {
	// Reconciliation
	RateSyncRunsTotal       *prometheus.CounterVec
	RateSyncDuration        prometheus.Histogram
	RatesUpsertedTotal      prometheus.Counter
	FeedRecordsSkippedTotal *prometheus.CounterVec
	RateSyncLastSuccess     prometheus.Gauge

	// Conversions
	ConversionsTotal      *prometheus.CounterVec
	ConversionErrorsTotal *prometheus.CounterVec
	ConvertedAmountTotal  *prometheus.CounterVec

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewExchangeMetrics registers all collectors with reg.
// main passes the registry served on /metrics; tests pass a fresh one.
func NewExchangeMetrics(reg prometheus.Registerer) *ExchangeMetrics {
	factory := promauto.With(reg)

	return &ExchangeMetrics{
		RateSyncRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_sync_runs_total",
				Help: "Number of rate reconciliation runs by trigger and result",
			},
			[]string{"trigger", "result"},
		),
		RateSyncDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rate_sync_duration_seconds",
				Help:    "Duration of rate reconciliation runs",
				Buckets: prometheus.DefBuckets,
			},
		),
		RatesUpsertedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rates_upserted_total",
				Help: "Number of currency rates inserted or updated",
			},
		),
		FeedRecordsSkippedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_feed_records_skipped_total",
				Help: "Feed records dropped during parsing or validation",
			},
			[]string{"reason"},
		),
		RateSyncLastSuccess: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "rate_sync_last_success_timestamp_seconds",
				Help: "Unix time of the last successful reconciliation",
			},
		),
		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conversions_total",
				Help: "Number of recorded conversions by source currency",
			},
			[]string{"currency"},
		),
		ConversionErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conversion_errors_total",
				Help: "Number of failed conversion requests by reason",
			},
			[]string{"reason"},
		),
		ConvertedAmountTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "converted_amount_total",
				Help: "Sum of converted amounts in the reference currency",
			},
			[]string{"currency"},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// SkipReason labels used by FeedRecordsSkippedTotal.
const (
	SkipMissingField = "missing_field"
	SkipBadNumber    = "bad_number"
	SkipInvalidCode  = "invalid_code"
	SkipNonPositive  = "non_positive_rate"
)
