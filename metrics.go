// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/core/pubnub_generate_uuid.c-adjacent
// instrumentation hooks are absent from the original (an embedded C
// library has no Prometheus equivalent); this file supplements spec.md's
// ambient stack per SPEC_FULL.md's DOMAIN STACK section, following the
// collector-struct convention used across the example pack's services.

package pubnub

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors [*Context] reports transaction
// outcomes to when [Config.Metrics] is non-nil. Nil-safe: every method is
// a no-op on a nil *Metrics, so wiring Metrics is opt-in.
type Metrics struct {
	transactions *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	retries      *prometheus.CounterVec
	breakerTrips *prometheus.CounterVec
}

// NewMetrics creates a [*Metrics] and registers its collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pubnub",
			Name:      "transactions_total",
			Help:      "Total transactions by kind and result.",
		}, []string{"kind", "result"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pubnub",
			Name:      "transaction_duration_seconds",
			Help:      "Transaction latency by kind.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pubnub",
			Name:      "retries_total",
			Help:      "Total retry attempts by endpoint group.",
		}, []string{"group"}),
		breakerTrips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pubnub",
			Name:      "circuit_breaker_trips_total",
			Help:      "Total circuit breaker state transitions to open, by endpoint group.",
		}, []string{"group"}),
	}
	reg.MustRegister(m.transactions, m.latency, m.retries, m.breakerTrips)
	return m
}

func (m *Metrics) observeOutcome(kind TransactionKind, result ResultKind, seconds float64) {
	if m == nil {
		return
	}
	m.transactions.WithLabelValues(transactionKindName(kind), result.String()).Inc()
	m.latency.WithLabelValues(transactionKindName(kind)).Observe(seconds)
}

func (m *Metrics) observeRetry(group EndpointGroup) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(endpointGroupName(group)).Inc()
}

func (m *Metrics) observeBreakerTrip(group EndpointGroup) {
	if m == nil {
		return
	}
	m.breakerTrips.WithLabelValues(endpointGroupName(group)).Inc()
}

func transactionKindName(kind TransactionKind) string {
	switch kind {
	case TransactionPublish:
		return "publish"
	case TransactionSubscribe:
		return "subscribe"
	case TransactionLeave:
		return "leave"
	case TransactionHereNow:
		return "here-now"
	case TransactionHeartbeat:
		return "heartbeat"
	case TransactionHistory:
		return "history"
	case TransactionSetState:
		return "set-state"
	case TransactionGetState:
		return "get-state"
	case TransactionObjects:
		return "objects"
	case TransactionActions:
		return "actions"
	case TransactionChannelGroup:
		return "channel-group"
	default:
		return "none"
	}
}
