package tg

import (
	"errors"
	"testing"
	"time"

	"github.com/gotd/td/tgerr"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
)

func TestMapErrorNil(t *testing.T) {
	if err := mapError("sendCode", nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}

func TestMapErrorFloodWait(t *testing.T) {
	err := mapError("sendCode", tgerr.New(420, "FLOOD_WAIT_42"))
	var rl *domain.RateLimitedError
	if !errors.As(err, &rl) {
		t.Fatalf("want RateLimitedError, got %T: %v", err, err)
	}
	if rl.RetryAfter != 42*time.Second {
		t.Fatalf("want 42s retry-after, got %v", rl.RetryAfter)
	}
}

func TestMapErrorCodes(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"invalid code", tgerr.New(400, "PHONE_CODE_INVALID"), domain.ErrInvalidCode},
		{"expired code", tgerr.New(400, "PHONE_CODE_EXPIRED"), domain.ErrCodeExpired},
		{"empty hash", tgerr.New(400, "PHONE_CODE_HASH_EMPTY"), domain.ErrCodeExpired},
		{"revoked key", tgerr.New(401, "AUTH_KEY_UNREGISTERED"), domain.ErrNotAuthorized},
		{"revoked session", tgerr.New(401, "SESSION_REVOKED"), domain.ErrNotAuthorized},
		{"deactivated", tgerr.New(401, "USER_DEACTIVATED"), domain.ErrNotAuthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapError("signIn", tc.in); !errors.Is(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMapErrorUnknownWrapsTransport(t *testing.T) {
	cause := errors.New("connection reset")
	err := mapError("connect", cause)
	var te *domain.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("want TransportError, got %T: %v", err, err)
	}
	if te.Op != "connect" {
		t.Fatalf("op lost: %q", te.Op)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause not wrapped: %v", err)
	}
}
