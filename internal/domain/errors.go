package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingCredentials means api_id/api_hash are configured neither
	// remotely nor in the environment. No network I/O is attempted.
	ErrMissingCredentials = errors.New("telegram api credentials are not configured")

	// ErrInvalidCode: the code was wrong but the challenge is still open;
	// the caller may retry with the same PendingLogin.
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrCodeExpired: the challenge is gone, the caller must start over
	// from BeginLogin.
	ErrCodeExpired = errors.New("verification code expired")

	// ErrSessionNotFound: no stored session for the requested phone.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNotAuthorized: a stored credential is no longer accepted by
	// Telegram (revoked or expired out-of-band).
	ErrNotAuthorized = errors.New("stored session is no longer authorized")

	// ErrConfigNotFound: no value for the requested remote-config key.
	ErrConfigNotFound = errors.New("config key not found")

	// ErrDealNotFound: no recorded deal with the requested id.
	ErrDealNotFound = errors.New("deal not found")
)

// RateLimitedError is Telegram's FLOOD_WAIT surfaced verbatim. Retry policy
// belongs to the caller; nothing in this package sleeps or retries.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited by telegram, retry after %s", e.RetryAfter)
}

// TransportError covers network and protocol failures, including timeouts
// and submissions with unknown or corrupted transient state.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("telegram transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StoreError means the persistence layer failed. When it happens after a
// successful platform-side login the login is still reported as failed:
// the credential can only be re-derived by authenticating again.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("session store: %v", e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
