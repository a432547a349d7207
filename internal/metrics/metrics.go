package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Dice Metrics
var (
	RollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRollsTotal,
			Help: HelpTextRollsTotal,
		},
		[]string{LabelPlatform},
	)

	RollErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRollErrors,
			Help: HelpTextRollErrors,
		},
		[]string{LabelKind},
	)

	DiceSampled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDiceSampled,
			Help: HelpTextDiceSampled,
		},
	)

	Criticals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCriticals,
			Help: HelpTextCriticals,
		},
		[]string{LabelType},
	)

	RollDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameRollDuration,
			Help:    HelpTextRollDuration,
			Buckets: RollLatencyBuckets,
		},
	)

	ExpressionCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameExpressionCache,
			Help: HelpTextExpressionCache,
		},
		[]string{LabelOutcome},
	)
)

// Discord Metrics
var (
	DiscordCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDiscordCommands,
			Help: HelpTextDiscordCommands,
		},
		[]string{LabelCommand},
	)
)
