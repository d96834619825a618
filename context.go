// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/core/pubnub_pubsubapi.c (init/free lifecycle,
// can_start_transaction guard) and original_source/core/pubnub_timetoken.c
// (reset to "0" on format error).

package pubnub

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// TransactionKind names the operation a [*Context] is currently running,
// attached to outcomes so a shared callback can tell publish from
// subscribe (§4.C10: "passing transaction kind, result, and user pointer").
type TransactionKind int

const (
	TransactionNone TransactionKind = iota
	TransactionPublish
	TransactionSubscribe
	TransactionLeave
	TransactionHereNow
	TransactionHeartbeat
	TransactionHistory
	TransactionSetState
	TransactionGetState
	TransactionObjects
	TransactionActions
	TransactionChannelGroup
)

// Outcome is the terminal result of one transaction, delivered to the
// sync caller via [Await] or to the callback backend's registered
// handler.
type Outcome struct {
	Kind       TransactionKind
	Result     ResultKind
	HTTPStatus int
	Body       []byte
	Err        error
}

// Context is a per-client transaction workspace (§3, §4.C11): one FSM,
// one in-flight transaction, one timetoken cursor for subscribe. A
// Context is not safe for concurrent API calls from multiple goroutines
// beyond what its own mutex serializes — exactly the "never entered from
// more than one thread concurrently" guarantee §5 requires of the FSM.
type Context struct {
	cfg       *Config
	transport Transport
	bus       *dispatchBus

	mu    sync.Mutex
	state FSMState
	group EndpointGroup

	channels  []string
	timetoken string
	region    int

	lastPublishResult []byte

	cancel context.CancelFunc

	heartbeatStop chan struct{}
}

// NewContext allocates and initializes a [*Context] (§4.C11's
// `init(ctx, pub_key, sub_key)`, folded into construction since Go has no
// separate static-pool allocation step to mirror).
func NewContext(cfg *Config) *Context {
	return &Context{
		cfg:       cfg,
		transport: NewTransport(cfg, cfg.Logger),
		bus:       newDispatchBus(),
		state:     StateIdle,
		timetoken: "0",
	}
}

// State reports the current FSM state, for diagnostics and tests.
func (c *Context) State() FSMState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastPublishResult returns the raw body of the most recent publish
// transaction's response, whether it succeeded or was rejected by the
// server; the reason text for a [ResultPublishFailed] outcome is found
// verbatim in this body's second array element.
func (c *Context) LastPublishResult() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPublishResult
}

// canStart implements §4.C11 step 2 under the context's own mutex.
func (c *Context) canStart() bool {
	return canStartTransaction(c.state)
}

// runTransaction drives one full request/response/outcome cycle
// synchronously: build -> send (via [Transport]) -> classify -> retry or
// finish. Both [Await] (direct call) and the callback backend
// (via a spawned goroutine) use this as their single FSM driver, matching
// §4.C9's requirement that sync and callback share one outcome routine.
func (c *Context) runTransaction(ctx context.Context, kind TransactionKind, group EndpointGroup, method, url string, body []byte) Outcome {
	c.mu.Lock()
	if !c.canStart() {
		c.mu.Unlock()
		return Outcome{Kind: kind, Result: ResultInProgress}
	}
	c.state, _ = fsmStep(c.state, EventStart)
	c.group = group
	timeout := c.cfg.TransactionTimeout
	if kind == TransactionSubscribe {
		timeout = 310 * time.Second
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	c.cancel = cancel
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.cancel = nil
		switch c.state {
		case StateWaitCancel, StateWaitCancelClose:
			c.state, _ = fsmStep(c.state, EventOutcome)
		default:
			c.state, _ = fsmStep(c.state, EventIOComplete)
			c.state, _ = fsmStep(c.state, EventParsed)
		}
		c.mu.Unlock()
	}()
	defer cancel()

	start := time.Now()
	attempt := 0
	for {
		status, respBody, retryAfter, err := c.attemptOnce(runCtx, group, method, url, body)
		phase := phaseSend
		if p, ok := errPhase(err); ok {
			phase = p
		}
		kind2 := classifyResult(phase, err)
		if err == nil {
			kind2 = classifyHTTPStatus(status)
		}
		if kind2 != ResultOK {
			if _, _, retry := requestRetry(c.cfg.Retry, group, kind2, attempt); retry {
				delay, _ := c.cfg.Retry.ShouldRetry(group, kind2, attempt)
				if status == 429 && retryAfter > 0 {
					delay = retryAfter
				}
				c.logLogger().Debug("transactionRetry", "attempt", attempt, "delay", delay, "result", kind2.String())
				c.cfg.Metrics.observeRetry(group)
				select {
				case <-time.After(delay):
				case <-runCtx.Done():
					c.cfg.Metrics.observeOutcome(kind, ResultCancelled, time.Since(start).Seconds())
					return Outcome{Kind: kind, Result: ResultCancelled, Err: runCtx.Err()}
				}
				attempt++
				continue
			}
		}
		c.cfg.Metrics.observeOutcome(kind, kind2, time.Since(start).Seconds())
		return Outcome{Kind: kind, Result: kind2, HTTPStatus: status, Body: respBody, Err: err}
	}
}

func (c *Context) attemptOnce(ctx context.Context, group EndpointGroup, method, url string, body []byte) (int, []byte, time.Duration, error) {
	var status int
	var respBody []byte
	var retryAfter time.Duration
	err := c.cfg.Retry.Attempt(group, func() error {
		var innerErr error
		status, respBody, retryAfter, innerErr = c.transport.RoundTrip(ctx, method, url, body)
		return innerErr
	})
	return status, respBody, retryAfter, err
}

func (c *Context) logLogger() SLogger {
	if c.cfg.Logger != nil {
		return c.cfg.Logger
	}
	return DefaultSLogger()
}

// classifyHTTPStatus maps a response status to a [ResultKind], per §4.C7's
// retry eligibility rule: only 429, >= 500, or 0 (no response) are
// [ResultHTTPError] (retryable); any other non-2xx status is
// [ResultServerError], which [retryableResultKinds] excludes so a plain
// 400/404 fails fast instead of burning through [RetryPolicy.MaxRetries].
func classifyHTTPStatus(status int) ResultKind {
	switch {
	case status == 0:
		return ResultHTTPError
	case status == 429:
		return ResultHTTPError
	case status >= 500:
		return ResultHTTPError
	case status >= 400:
		return ResultServerError
	default:
		return ResultOK
	}
}

// Cancel forces the context into WAIT_CANCEL[_CLOSE] per §4.C11 and §5:
// callable from any goroutine, takes effect on the FSM's next entry.
func (c *Context) Cancel() {
	c.mu.Lock()
	cancel := c.cancel
	c.state, _ = fsmStep(c.state, EventCancel)
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Free releases the context's resources. Refused (§3 invariant 3, §4.C11)
// if a transaction is still in flight; [Context.Cancel] must be called
// first.
func (c *Context) Free() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle {
		return fmt.Errorf("pubnub: cannot free context in state %s, cancel first", c.state)
	}
	if c.heartbeatStop != nil {
		close(c.heartbeatStop)
		c.heartbeatStop = nil
	}
	return c.bus.Close()
}
