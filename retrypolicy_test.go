// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import (
	"errors"
	"testing"
)

func TestRetryPolicyOnlyRetriesRetryableKinds(t *testing.T) {
	rp := NewRetryPolicy(RetryExponential)
	if _, ok := rp.ShouldRetry(EndpointGroupPublish, ResultTimeout, 0); !ok {
		t.Fatal("expected ResultTimeout to be retryable")
	}
	if _, ok := rp.ShouldRetry(EndpointGroupPublish, ResultInvalidChannel, 0); ok {
		t.Fatal("expected ResultInvalidChannel to never be retried")
	}
}

func TestRetryPolicyStopsAtMaxRetries(t *testing.T) {
	rp := NewRetryPolicy(RetryLinear)
	if _, ok := rp.ShouldRetry(EndpointGroupPublish, ResultTimeout, rp.MaxRetries); ok {
		t.Fatal("expected retries to stop at MaxRetries")
	}
}

func TestRetryPolicyBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	rp := NewRetryPolicy(RetryExponential)
	failing := errors.New("boom")
	for i := 0; i < 5; i++ {
		_ = rp.Attempt(EndpointGroupPublish, func() error { return failing })
	}
	if _, ok := rp.ShouldRetry(EndpointGroupPublish, ResultTimeout, 0); ok {
		t.Fatal("expected open breaker to refuse retry regardless of kind/attempt")
	}
}

func TestRetryPolicyBreakersAreIndependentPerGroup(t *testing.T) {
	rp := NewRetryPolicy(RetryExponential)
	failing := errors.New("boom")
	for i := 0; i < 5; i++ {
		_ = rp.Attempt(EndpointGroupPublish, func() error { return failing })
	}
	if _, ok := rp.ShouldRetry(EndpointGroupSubscribe, ResultTimeout, 0); !ok {
		t.Fatal("expected subscribe's breaker to be unaffected by publish failures")
	}
}
