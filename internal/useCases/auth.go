package useCases

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
	"github.com/Devashishswamii/tgescrowbot/internal/ports"
)

// AuthService is the caller-facing auth surface: the login flow plus
// session persistence. A session row exists if and only if a call reported
// a completed login.
type AuthService struct {
	flow      *LoginFlow
	sessions  ports.SessionStore
	transport ports.AuthTransport
	timeout   time.Duration
	log       *slog.Logger
}

func NewAuthService(flow *LoginFlow, sessions ports.SessionStore, transport ports.AuthTransport, timeout time.Duration, log *slog.Logger) *AuthService {
	if timeout <= 0 {
		timeout = defaultLoginTimeout
	}
	return &AuthService{flow: flow, sessions: sessions, transport: transport, timeout: timeout, log: log}
}

func (s *AuthService) BeginLogin(ctx context.Context, phone string) (*domain.PendingLogin, error) {
	return s.flow.BeginLogin(ctx, phone)
}

// SubmitCode verifies the code. When the account has no second factor the
// session is saved before success is reported; a store failure masks the
// platform-side success because the credential cannot be recovered later
// without re-authenticating.
func (s *AuthService) SubmitCode(ctx context.Context, pending *domain.PendingLogin, phone, code string) (*domain.SignInResult, error) {
	res, err := s.flow.SubmitCode(ctx, pending, phone, code)
	if err != nil {
		return nil, err
	}
	if res.PasswordNeeded {
		return res, nil
	}
	if err := s.persist(ctx, phone, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *AuthService) SubmitPassword(ctx context.Context, state []byte, password string) (*domain.SignInResult, error) {
	res, err := s.flow.SubmitPassword(ctx, state, password)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, normalizePhone(res.Identity.Phone), res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetHandleForPhone replays the stored credential into a live handle the
// caller must close. Empty phone means "the most recently used session",
// which bootstraps the single operator account. Establishing the connection
// is bounded by the login timeout; the handle itself outlives it.
func (s *AuthService) GetHandleForPhone(ctx context.Context, phone string) (ports.AuthorizedHandle, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		sess *domain.Session
		err  error
	)
	if phone == "" {
		sess, err = s.sessions.Latest(ctx)
	} else {
		sess, err = s.sessions.Get(ctx, phone)
	}
	if err != nil {
		return nil, err
	}

	handle, err := s.transport.Connect(ctx, sess.Credential)
	if err != nil {
		s.log.Warn("stored session rejected", "phone", sess.Phone, "error", err)
		return nil, err
	}
	return handle, nil
}

// Logout revokes a stored session. Deleting an unknown phone is a no-op.
func (s *AuthService) Logout(ctx context.Context, phone string) error {
	return s.sessions.Delete(ctx, phone)
}

func (s *AuthService) persist(ctx context.Context, phone string, res *domain.SignInResult) error {
	sess := &domain.Session{
		Phone:      phone,
		Credential: res.Credential,
		AccountID:  res.Identity.AccountID,
		Username:   res.Identity.Username,
		FirstName:  res.Identity.FirstName,
		LastName:   res.Identity.LastName,
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.log.Error("session save failed after login", "phone", phone, "error", err)
		return err
	}
	s.log.Info("session saved", "phone", phone, "account_id", sess.AccountID)
	return nil
}

// Telegram reports the account phone without the leading plus.
func normalizePhone(phone string) string {
	if phone == "" || strings.HasPrefix(phone, "+") {
		return phone
	}
	return "+" + phone
}
