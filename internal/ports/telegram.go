package ports

import (
	"context"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
)

// AuthTransport is the Telegram login surface. Every call opens an ephemeral
// connection (from empty state or from the supplied bytes), performs one
// step, and closes it before returning. Implemented by adapters/tg.
type AuthTransport interface {
	// SendCode asks Telegram to send a verification code to phone and
	// returns the transient state + challenge token pair the caller must
	// round-trip into SignIn.
	SendCode(ctx context.Context, phone string) (*domain.PendingLogin, error)

	// SignIn redeems the code against the challenge from SendCode.
	SignIn(ctx context.Context, pending *domain.PendingLogin, phone, code string) (*domain.SignInResult, error)

	// CheckPassword completes a 2FA login using the state returned by a
	// PasswordNeeded SignInResult.
	CheckPassword(ctx context.Context, state []byte, password string) (*domain.SignInResult, error)

	// Connect replays a stored credential and returns a live handle, or
	// domain.ErrNotAuthorized if Telegram no longer accepts it.
	Connect(ctx context.Context, credential []byte) (AuthorizedHandle, error)
}

// AuthorizedHandle is a live, authorized connection. The caller owns it and
// must Close it; it is never held across an API call boundary.
type AuthorizedHandle interface {
	Identity(ctx context.Context) (*domain.Identity, error)
	CreateSupergroup(ctx context.Context, title, about string) (*Group, error)
	ExportInviteLink(ctx context.Context, g *Group) (string, error)
	InviteUser(ctx context.Context, g *Group, username string) error
	Close() error
}

// Group identifies a created supergroup on the wire.
type Group struct {
	ID         int64
	AccessHash int64
	Title      string
}
