// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: errclass/unix.go, errclass/windows.go (errno constant tables)
//

package pubnub

import (
	"context"
	"crypto/x509"
	"errors"
	"net"
	"strings"
	"syscall"
)

// ResultKind is the terminal outcome of a transaction (§6 Result taxonomy).
//
// ResultKind values are compared by callers to decide whether to retry,
// re-subscribe from time zero, or present the server's error body to the user.
type ResultKind int

const (
	ResultStarted ResultKind = iota
	ResultInProgress
	ResultOK
	ResultAddressResolutionFailed
	ResultWaitConnectTimeout
	ResultConnectFailed
	ResultConnectionTimeout
	ResultTimeout
	ResultAborted
	ResultCancelled
	ResultIOError
	ResultHTTPError
	ResultFormatError
	ResultSubscribeTimetokenFormatError
	ResultNoTimetoken
	ResultNoRegion
	ResultTxBufferTooSmall
	ResultRxBufferNotEmpty
	ResultReplyTooBig
	ResultPublishFailed
	ResultAccessDenied
	ResultPresenceAPIError
	ResultServerError
	ResultChannelRegistryError
	ResultObjectsAPIError
	ResultActionsAPIError
	ResultGrantTokenError
	ResultRevokeTokenError
	ResultFetchHistoryError
	ResultInvalidChannel
	ResultInvalidParameters
	ResultOutOfMemory
	ResultCryptoNotSupported
	ResultBadCompressionFormat
	ResultAuthenticationFailed
	ResultGroupEmpty
	ResultGotAllActions
)

var resultKindNames = map[ResultKind]string{
	ResultStarted:                       "started",
	ResultInProgress:                    "in-progress",
	ResultOK:                            "ok",
	ResultAddressResolutionFailed:       "address-resolution-failed",
	ResultWaitConnectTimeout:            "wait-connect-timeout",
	ResultConnectFailed:                 "connect-failed",
	ResultConnectionTimeout:             "connection-timeout",
	ResultTimeout:                       "timeout",
	ResultAborted:                       "aborted",
	ResultCancelled:                     "cancelled",
	ResultIOError:                       "io-error",
	ResultHTTPError:                     "http-error",
	ResultFormatError:                   "format-error",
	ResultSubscribeTimetokenFormatError: "subscribe-timetoken-format-error",
	ResultNoTimetoken:                   "no-timetoken",
	ResultNoRegion:                      "no-region",
	ResultTxBufferTooSmall:              "tx-buffer-too-small",
	ResultRxBufferNotEmpty:              "rx-buffer-not-empty",
	ResultReplyTooBig:                   "reply-too-big",
	ResultPublishFailed:                 "publish-failed",
	ResultAccessDenied:                  "access-denied",
	ResultPresenceAPIError:              "presence-api-error",
	ResultServerError:                   "server-error",
	ResultChannelRegistryError:          "channel-registry-error",
	ResultObjectsAPIError:               "objects-api-error",
	ResultActionsAPIError:               "actions-api-error",
	ResultGrantTokenError:               "grant-token-error",
	ResultRevokeTokenError:              "revoke-token-error",
	ResultFetchHistoryError:             "fetch-history-error",
	ResultInvalidChannel:                "invalid-channel",
	ResultInvalidParameters:             "invalid-parameters",
	ResultOutOfMemory:                   "out-of-memory",
	ResultCryptoNotSupported:            "crypto-not-supported",
	ResultBadCompressionFormat:          "bad-compression-format",
	ResultAuthenticationFailed:          "authentication-failed",
	ResultGroupEmpty:                    "group-empty",
	ResultGotAllActions:                 "got-all-actions",
}

// String implements [fmt.Stringer].
func (k ResultKind) String() string {
	if s, ok := resultKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// retryableResultKinds lists the kinds C7's retry policy may retry, per
// spec.md §4.C7: "Only specific result kinds are retryable".
var retryableResultKinds = map[ResultKind]bool{
	ResultAddressResolutionFailed: true,
	ResultWaitConnectTimeout:      true,
	ResultConnectFailed:           true,
	ResultConnectionTimeout:       true,
	ResultTimeout:                 true,
	ResultAborted:                 true,
	ResultHTTPError:               true,
}

// NewErrorClassifier returns the default [ErrClassifier], mapping syscall
// errnos, context errors, and TLS/x509 errors to the short labels the
// teacher's errclass companion package sketches per platform (unix.go /
// windows.go enumerate ECONNREFUSED, ETIMEDOUT, ...); this single
// cross-platform implementation uses the portable names from [syscall] and
// [net] instead of per-OS build tags, since the underlying errno values are
// already normalized by the Go runtime.
func NewErrorClassifier() ErrClassifier {
	return ErrClassifierFunc(classifyError)
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "ETIMEDOUT"
	case errors.Is(err, context.Canceled):
		return "ECANCELED"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "ECONNREFUSED"
	case errors.Is(err, syscall.ECONNRESET):
		return "ECONNRESET"
	case errors.Is(err, syscall.ECONNABORTED):
		return "ECONNABORTED"
	case errors.Is(err, syscall.EHOSTUNREACH):
		return "EHOSTUNREACH"
	case errors.Is(err, syscall.ENETUNREACH):
		return "ENETUNREACH"
	case errors.Is(err, syscall.ENETDOWN):
		return "ENETDOWN"
	case errors.Is(err, syscall.ETIMEDOUT):
		return "ETIMEDOUT"
	case errors.Is(err, syscall.EADDRINUSE):
		return "EADDRINUSE"
	case errors.Is(err, syscall.EADDRNOTAVAIL):
		return "EADDRNOTAVAIL"
	case errors.Is(err, syscall.EINVAL):
		return "EINVAL"
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return "EDNSTIMEDOUT"
		}
		if dnsErr.IsNotFound {
			return "EDNSNOTFOUND"
		}
		return "EDNSERROR"
	}
	var hostnameErr x509.HostnameError
	if errors.As(err, &hostnameErr) {
		return "ESSLINVALIDHOSTNAME"
	}
	var unknownAuthErr x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthErr) {
		return "ESSLUNKNOWNAUTHORITY"
	}
	var certInvalidErr x509.CertificateInvalidError
	if errors.As(err, &certInvalidErr) {
		return "ESSLCERTINVALID"
	}
	if strings.Contains(err.Error(), "use of closed network connection") {
		return "ECONNCLOSED"
	}
	return "EUNKNOWN"
}

// classifyResult maps a low-level error plus phase information into the
// taxonomy's [ResultKind], following §7's policy that errors are tagged by
// kind, not by origin.
func classifyResult(phase transactionPhase, err error) ResultKind {
	if err == nil {
		return ResultOK
	}
	if errors.Is(err, context.Canceled) {
		return ResultCancelled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		if phase == phaseConnect {
			return ResultWaitConnectTimeout
		}
		return ResultTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ResultAddressResolutionFailed
	}
	switch phase {
	case phaseConnect:
		return ResultConnectFailed
	case phaseTLS:
		return ResultConnectFailed
	default:
		return ResultIOError
	}
}
