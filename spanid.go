package pubnub

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// NewTransactionID returns a UUIDv7 identifying one transaction.
//
// A transaction is a single operation driven by [*Context]'s finite-state
// machine from idle to outcome (publish, subscribe, presence, ...). Attach
// the transaction ID to the logger with [SLogger] fields so that every log
// entry emitted while driving the FSM can be correlated.
//
// The "span" terminology the teacher borrows from OTel is narrowed here to
// "transaction" to match spec.md's vocabulary (§4.C9, §6 Outcome).
//
// This function panics if the system random number generator fails, which
// should only happen under extraordinary circumstances.
func NewTransactionID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}
