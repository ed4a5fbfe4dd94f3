package useCases

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
	"github.com/Devashishswamii/tgescrowbot/internal/ports"
)

const defaultLoginTimeout = 30 * time.Second

// LoginFlow drives a phone number through Telegram's login challenge:
// code request, code verification, optional second factor. It keeps no
// state between calls — the caller round-trips the PendingLogin / state
// bytes — and never writes to storage.
type LoginFlow struct {
	creds     ports.CredentialProvider
	transport ports.AuthTransport
	timeout   time.Duration
	log       *slog.Logger
}

func NewLoginFlow(creds ports.CredentialProvider, transport ports.AuthTransport, timeout time.Duration, log *slog.Logger) *LoginFlow {
	if timeout <= 0 {
		timeout = defaultLoginTimeout
	}
	return &LoginFlow{creds: creds, transport: transport, timeout: timeout, log: log}
}

// BeginLogin requests a verification code for phone. The returned
// PendingLogin must be passed back unchanged into SubmitCode.
func (f *LoginFlow) BeginLogin(ctx context.Context, phone string) (*domain.PendingLogin, error) {
	if err := f.checkCredentials(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := f.bound(ctx)
	defer cancel()

	pending, err := f.transport.SendCode(ctx, phone)
	if err != nil {
		f.log.Error("send code failed", "phone", phone, "error", err)
		return nil, err
	}
	return pending, nil
}

// SubmitCode redeems the code. ErrInvalidCode leaves the challenge open for
// another attempt with the same pending pair; ErrCodeExpired means the
// caller must start over from BeginLogin.
func (f *LoginFlow) SubmitCode(ctx context.Context, pending *domain.PendingLogin, phone, code string) (*domain.SignInResult, error) {
	if pending == nil || len(pending.State) == 0 || pending.CodeHash == "" {
		return nil, &domain.TransportError{Op: "sign in", Err: errors.New("missing pending login state")}
	}
	if err := f.checkCredentials(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := f.bound(ctx)
	defer cancel()

	res, err := f.transport.SignIn(ctx, pending, phone, code)
	if err != nil {
		f.log.Warn("sign in failed", "phone", phone, "error", err)
		return nil, err
	}
	return res, nil
}

// SubmitPassword completes a 2FA login from the state a PasswordNeeded
// result carried. A lost or foreign state fails on the platform side and
// surfaces as a TransportError; nothing is cached here to recover it.
func (f *LoginFlow) SubmitPassword(ctx context.Context, state []byte, password string) (*domain.SignInResult, error) {
	if len(state) == 0 {
		return nil, &domain.TransportError{Op: "check password", Err: errors.New("missing transient state")}
	}
	if err := f.checkCredentials(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := f.bound(ctx)
	defer cancel()

	res, err := f.transport.CheckPassword(ctx, state, password)
	if err != nil {
		f.log.Warn("password check failed", "error", err)
		return nil, err
	}
	return res, nil
}

// checkCredentials short-circuits every operation before any network I/O
// when api_id/api_hash are not configured.
func (f *LoginFlow) checkCredentials(ctx context.Context) error {
	_, err := f.creds.Get(ctx)
	return err
}

func (f *LoginFlow) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, f.timeout)
}
