// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/core/pubnub_ccore_pubsub.c and
// original_source/core/pbpal.h (the WAIT_DNS_SEND..IDLE state sequence and
// its WAIT_CANCEL/WAIT_RETRY branches).

package pubnub

import "fmt"

// FSMState is one state of the per-context transaction state machine
// (§4.C9). The granularity is coarser than the original's byte-level
// WAIT_RECV_LINE/WAIT_RECV_HDR_LINES/WAIT_RECV_BODY split: net/http
// already performs framing (status line, headers, chunked body) inside
// [Transport.RoundTrip], so those states collapse into one
// state_sending_and_receiving transition driven by a single goroutine,
// without losing the property the FSM exists to express — exactly one
// I/O operation in flight per context, observable and cancellable from
// outside that goroutine.
type FSMState int

const (
	StateNull FSMState = iota
	StateIdle
	StateSendingReceiving
	StateParse
	StateWaitRetry
	StateRetry
	StateWaitCancel
	StateWaitCancelClose
)

func (s FSMState) String() string {
	switch s {
	case StateNull:
		return "NULL"
	case StateIdle:
		return "IDLE"
	case StateSendingReceiving:
		return "SENDING_RECEIVING"
	case StateParse:
		return "PARSE"
	case StateWaitRetry:
		return "WAIT_RETRY"
	case StateRetry:
		return "RETRY"
	case StateWaitCancel:
		return "WAIT_CANCEL"
	case StateWaitCancelClose:
		return "WAIT_CANCEL_CLOSE"
	default:
		return fmt.Sprintf("FSMState(%d)", int(s))
	}
}

// FSMEvent is an edge-triggering input to the [fsmStep] function.
type FSMEvent int

const (
	EventInit FSMEvent = iota
	EventStart
	EventIOComplete
	EventParsed
	EventCancel
	EventRetryTimerFired
	EventOutcome
)

// FSMAction is what the runtime (sync loop or callback watcher) must do in
// response to a transition. The step function only ever returns data; it
// never performs I/O itself, so it is usable unchanged from either
// runtime (the Open Question §REDESIGN FLAGS decision this module makes).
type FSMAction int

const (
	ActionNone FSMAction = iota
	ActionStartIO
	ActionParseReply
	ActionArmRetryTimer
	ActionCloseSocket
	ActionInvokeOutcome
)

// fsmStep is the pure (state, event) -> (state, action) function spec.md
// §REDESIGN FLAGS requires: it must not know which runtime hosts it.
func fsmStep(state FSMState, event FSMEvent) (FSMState, FSMAction) {
	switch state {
	case StateNull:
		if event == EventInit {
			return StateIdle, ActionNone
		}
	case StateIdle:
		if event == EventStart {
			return StateSendingReceiving, ActionStartIO
		}
	case StateSendingReceiving:
		switch event {
		case EventIOComplete:
			return StateParse, ActionParseReply
		case EventCancel:
			return StateWaitCancelClose, ActionCloseSocket
		}
	case StateParse:
		if event == EventParsed {
			return StateIdle, ActionInvokeOutcome
		}
	case StateWaitRetry:
		if event == EventRetryTimerFired {
			return StateRetry, ActionNone
		}
		if event == EventCancel {
			return StateWaitCancel, ActionInvokeOutcome
		}
	case StateRetry:
		if event == EventStart {
			return StateSendingReceiving, ActionStartIO
		}
	case StateWaitCancel:
		if event == EventOutcome {
			return StateIdle, ActionInvokeOutcome
		}
	case StateWaitCancelClose:
		if event == EventOutcome {
			return StateIdle, ActionInvokeOutcome
		}
	}
	return state, ActionNone
}

// requestRetry transitions a just-finished attempt into WAIT_RETRY when
// outcome's kind is retryable and attempt is still under the policy's cap;
// it is a helper around fsmStep rather than a state of its own because
// "should we retry" depends on data (the retry policy and attempt count)
// the pure step function does not carry.
func requestRetry(rp *RetryPolicy, group EndpointGroup, kind ResultKind, attempt int) (FSMState, FSMAction, bool) {
	if _, ok := rp.ShouldRetry(group, kind, attempt); ok {
		return StateWaitRetry, ActionArmRetryTimer, true
	}
	return StateIdle, ActionInvokeOutcome, false
}

// canStartTransaction implements §4.C11 step 2: the context must be idle
// and have no I/O pending.
func canStartTransaction(state FSMState) bool {
	return state == StateIdle
}
