// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: _examples/tomtom215-cartographus/internal/eventprocessor/circuitbreaker.go
// Grounded on: original_source/core/pubnub_retry_logic.c (linear/exponential
// backoff schedule, per-endpoint-group breaker).

package pubnub

import (
	"math"
	"math/rand"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// RetryStrategy selects the backoff growth the [RetryPolicy] applies
// between attempts (§4.C7).
type RetryStrategy int

const (
	RetryLinear RetryStrategy = iota
	RetryExponential
)

// EndpointGroup buckets operations that share one circuit breaker, so a
// run of publish failures does not trip subscribe's breaker and vice
// versa, matching the original library's per-group retry configuration.
type EndpointGroup int

const (
	EndpointGroupPublish EndpointGroup = iota
	EndpointGroupSubscribe
	EndpointGroupPresence
	EndpointGroupObjects
	EndpointGroupPAM
	EndpointGroupOther
	endpointGroupCount
)

// RetryPolicy decides whether and how long to wait before retrying a
// failed transaction, per §4.C7: "Only specific result kinds are
// retryable", backed by a [gobreaker.CircuitBreaker] per [EndpointGroup]
// so a persistently failing endpoint stops consuming attempts immediately
// instead of waiting out every backoff step.
type RetryPolicy struct {
	Strategy   RetryStrategy
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	MaxRetries int
	Jitter     float64

	mu       sync.Mutex
	breakers [endpointGroupCount]*gobreaker.CircuitBreaker[struct{}]
}

// NewRetryPolicy returns a [*RetryPolicy] using strategy with defaults
// matching the original library's retry schedule: a 2s base delay,
// 150s maximum delay, 6 maximum retries before giving up, and +/-50%
// jitter to avoid synchronized retry storms across clients.
func NewRetryPolicy(strategy RetryStrategy) *RetryPolicy {
	rp := &RetryPolicy{
		Strategy:   strategy,
		BaseDelay:  2 * time.Second,
		MaxDelay:   150 * time.Second,
		MaxRetries: 6,
		Jitter:     0.5,
	}
	for i := range rp.breakers {
		rp.breakers[i] = newEndpointBreaker(EndpointGroup(i))
	}
	return rp
}

func newEndpointBreaker(group EndpointGroup) *gobreaker.CircuitBreaker[struct{}] {
	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        endpointGroupName(group),
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

func endpointGroupName(group EndpointGroup) string {
	switch group {
	case EndpointGroupPublish:
		return "publish"
	case EndpointGroupSubscribe:
		return "subscribe"
	case EndpointGroupPresence:
		return "presence"
	case EndpointGroupObjects:
		return "objects"
	case EndpointGroupPAM:
		return "pam"
	default:
		return "other"
	}
}

// ShouldRetry reports whether attempt (0-indexed) should be retried for a
// failure classified as kind against group, and if so, how long to wait
// first. The breaker for group is consulted first: an open breaker always
// refuses, independent of kind or attempt count.
func (rp *RetryPolicy) ShouldRetry(group EndpointGroup, kind ResultKind, attempt int) (time.Duration, bool) {
	if !retryableResultKinds[kind] {
		return 0, false
	}
	if attempt >= rp.MaxRetries {
		return 0, false
	}
	if rp.breakerFor(group).State() == gobreaker.StateOpen {
		return 0, false
	}
	return rp.delay(attempt), true
}

// Attempt runs fn through the breaker for group and returns fn's error, or
// gobreaker's own error (such as gobreaker.ErrOpenState) unchanged when the
// breaker rejects the call without running fn.
func (rp *RetryPolicy) Attempt(group EndpointGroup, fn func() error) error {
	_, err := rp.breakerFor(group).Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

func (rp *RetryPolicy) breakerFor(group EndpointGroup) *gobreaker.CircuitBreaker[struct{}] {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	if group < 0 || group >= endpointGroupCount {
		group = EndpointGroupOther
	}
	return rp.breakers[group]
}

func (rp *RetryPolicy) delay(attempt int) time.Duration {
	var base time.Duration
	switch rp.Strategy {
	case RetryLinear:
		base = rp.BaseDelay * time.Duration(attempt+1)
	default:
		base = time.Duration(float64(rp.BaseDelay) * math.Pow(2, float64(attempt)))
	}
	if base > rp.MaxDelay {
		base = rp.MaxDelay
	}
	if rp.Jitter <= 0 {
		return base
	}
	jitterRange := float64(base) * rp.Jitter
	offset := (rand.Float64()*2 - 1) * jitterRange
	d := time.Duration(float64(base) + offset)
	if d < 0 {
		d = 0
	}
	return d
}
