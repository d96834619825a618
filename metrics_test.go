// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.observeOutcome(TransactionPublish, ResultOK, 0.1)
	m.observeRetry(EndpointGroupPublish)
	m.observeBreakerTrip(EndpointGroupPublish)
}

func TestMetricsRecordsTransactionOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.observeOutcome(TransactionPublish, ResultOK, 0.05)

	count := testutil.ToFloat64(m.transactions.WithLabelValues("publish", "ok"))
	if count != 1 {
		t.Fatalf("expected counter at 1, got %v", count)
	}
}
