// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import "testing"

func TestFSMStepHappyPath(t *testing.T) {
	state := StateNull
	var action FSMAction

	state, action = fsmStep(state, EventInit)
	if state != StateIdle || action != ActionNone {
		t.Fatalf("init: got %v/%v", state, action)
	}

	state, action = fsmStep(state, EventStart)
	if state != StateSendingReceiving || action != ActionStartIO {
		t.Fatalf("start: got %v/%v", state, action)
	}

	state, action = fsmStep(state, EventIOComplete)
	if state != StateParse || action != ActionParseReply {
		t.Fatalf("io complete: got %v/%v", state, action)
	}

	state, action = fsmStep(state, EventParsed)
	if state != StateIdle || action != ActionInvokeOutcome {
		t.Fatalf("parsed: got %v/%v", state, action)
	}
}

func TestFSMStepCancelMidIO(t *testing.T) {
	state, action := fsmStep(StateSendingReceiving, EventCancel)
	if state != StateWaitCancelClose || action != ActionCloseSocket {
		t.Fatalf("got %v/%v", state, action)
	}
	state, action = fsmStep(state, EventOutcome)
	if state != StateIdle || action != ActionInvokeOutcome {
		t.Fatalf("got %v/%v", state, action)
	}
}

func TestFSMStepUnknownEventIsNoop(t *testing.T) {
	state, action := fsmStep(StateIdle, EventParsed)
	if state != StateIdle || action != ActionNone {
		t.Fatalf("expected no-op, got %v/%v", state, action)
	}
}

func TestCanStartTransactionOnlyWhenIdle(t *testing.T) {
	if !canStartTransaction(StateIdle) {
		t.Fatal("expected IDLE to allow starting a transaction")
	}
	if canStartTransaction(StateSendingReceiving) {
		t.Fatal("expected an in-flight transaction to refuse a new one")
	}
}

func TestRequestRetryRespectsRetryPolicy(t *testing.T) {
	rp := NewRetryPolicy(RetryLinear)
	state, action, retried := requestRetry(rp, EndpointGroupPublish, ResultTimeout, 0)
	if !retried || state != StateWaitRetry || action != ActionArmRetryTimer {
		t.Fatalf("got %v/%v/%v", state, action, retried)
	}

	state, action, retried = requestRetry(rp, EndpointGroupPublish, ResultInvalidChannel, 0)
	if retried || state != StateIdle || action != ActionInvokeOutcome {
		t.Fatalf("got %v/%v/%v", state, action, retried)
	}
}
