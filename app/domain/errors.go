package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by identity-provider drivers. Handlers and the
// role gate branch on these to pick the HTTP status; anything else from a
// driver is treated as unexpected and surfaces as a 500.
var (
	// ErrProviderRejected marks a business rejection reported by the
	// provider (bad credentials, duplicate account, stale refresh token).
	ErrProviderRejected = errors.New("identity provider rejected the request")

	// ErrInvalidToken marks an access token the provider does not
	// recognize, or one bound to an inactive session.
	ErrInvalidToken = errors.New("invalid token or user not found")

	// ErrProviderUnavailable marks a transport-level failure talking to
	// the provider.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// RejectedError wraps ErrProviderRejected while keeping the provider's own
// message for the response body.
func RejectedError(message string) error {
	return fmt.Errorf("%w: %s", ErrProviderRejected, message)
}

// RejectionMessage strips the ErrProviderRejected prefix so the provider's
// message can be surfaced verbatim.
func RejectionMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := ErrProviderRejected.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
