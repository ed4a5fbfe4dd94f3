package tg

import (
	"github.com/gotd/td/tgerr"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
)

// mapError translates Telegram RPC errors into the domain taxonomy so
// callers can tell retriable, restart-required and revoked cases apart
// without matching on error text.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if wait, ok := tgerr.AsFloodWait(err); ok {
		return &domain.RateLimitedError{RetryAfter: wait}
	}
	switch {
	case tgerr.Is(err, "PHONE_CODE_INVALID"):
		return domain.ErrInvalidCode
	case tgerr.Is(err, "PHONE_CODE_EXPIRED", "PHONE_CODE_HASH_EMPTY"):
		return domain.ErrCodeExpired
	case tgerr.Is(err, "AUTH_KEY_UNREGISTERED", "SESSION_REVOKED", "SESSION_EXPIRED", "USER_DEACTIVATED"):
		return domain.ErrNotAuthorized
	}
	return &domain.TransportError{Op: op, Err: err}
}
