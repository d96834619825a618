// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: original_source/freertos/pubnub_assert_freertos.c
// Adapted from: original_source/contiki/pubnub_assert_contiki.c
//

package pubnub

import (
	"fmt"
	"os"

	"github.com/bassosimone/runtimex"
)

// AssertHandler reacts to a fatal internal-invariant violation (§7).
//
// The library never continues past a broken invariant silently: it always
// calls the configured handler first. Hosts choose the behavior appropriate
// to their runtime, mirroring the original's three pluggable back-ends
// (pubnub_assert_handler_set in the FreeRTOS/Contiki ports).
type AssertHandler func(expr string, file string, line int)

// AssertAbort terminates the process immediately, via [runtimex.Assert].
//
// This is the default handler and matches the original's default behavior
// on POSIX/Windows ports.
func AssertAbort(expr string, file string, line int) {
	runtimex.Assert(false, fmt.Sprintf("%s:%d: assertion failed: %s", file, line, expr))
}

// AssertLoop busy-spins forever, to give a debugger time to attach.
//
// This matches the original's FreeRTOS/Contiki back-ends, which loop with
// interrupts disabled rather than calling abort() on constrained targets
// where a debugger attach is the only recovery path.
func AssertLoop(expr string, file string, line int) {
	for {
		// deliberately never returns
	}
}

// AssertPrintfAndContinue logs the violated invariant to stderr and returns,
// letting the caller continue in an already-inconsistent state.
//
// This is useful only for diagnosing an assertion that is believed to be
// overly strict; it is never the right choice for production use.
func AssertPrintfAndContinue(expr string, file string, line int) {
	fmt.Fprintf(os.Stderr, "%s:%d: assertion failed (continuing): %s\n", file, line, expr)
}

// checkInvariant invokes cfg's [AssertHandler] when cond is false.
func checkInvariant(cfg *Config, cond bool, expr string) {
	if cond {
		return
	}
	handler := cfg.Assert
	if handler == nil {
		handler = AssertAbort
	}
	handler(expr, "pubnub", 0)
}
