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

// Reward Metrics
var (
	PullsPerformed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePullsPerformed,
			Help: HelpTextPullsPerformed,
		},
		[]string{LabelKind},
	)

	CardsAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCardsAwarded,
			Help: HelpTextCardsAwarded,
		},
		[]string{LabelRarity},
	)

	DailiesClaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDailiesClaimed,
			Help: HelpTextDailiesClaimed,
		},
	)
)

// Drop Metrics
var (
	DropsSpawned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDropsSpawned,
			Help: HelpTextDropsSpawned,
		},
	)

	DropSlotsClaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDropSlotsClaimed,
			Help: HelpTextDropSlotsClaimed,
		},
	)

	DropClaimsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDropClaimsRejected,
			Help: HelpTextDropClaimsRejected,
		},
		[]string{LabelReason},
	)
)

// Market Metrics
var (
	ListingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameListingsCreated,
			Help: HelpTextListingsCreated,
		},
		[]string{LabelItem},
	)

	ListingsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameListingsBought,
			Help: HelpTextListingsBought,
		},
		[]string{LabelItem},
	)

	ListingsRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameListingsRemoved,
			Help: HelpTextListingsRemoved,
		},
	)

	CompensationsFired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCompensationsFired,
			Help: HelpTextCompensationsFired,
		},
		[]string{LabelKind},
	)
)

// Ledger Metrics
var (
	PatternsEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePatternsEarned,
			Help: HelpTextPatternsEarned,
		},
	)

	PatternsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePatternsSpent,
			Help: HelpTextPatternsSpent,
		},
	)

	CooldownsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCooldownsRejected,
			Help: HelpTextCooldownsRejected,
		},
		[]string{LabelAction},
	)
)
