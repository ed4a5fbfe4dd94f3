package tg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
	"github.com/Devashishswamii/tgescrowbot/internal/ports"
)

// DeviceInfo is what Telegram shows in the account's active-sessions list.
type DeviceInfo struct {
	Model         string
	SystemVersion string
	AppVersion    string
}

func (d DeviceInfo) withDefaults() DeviceInfo {
	if d.Model == "" {
		d.Model = "Desktop"
	}
	if d.SystemVersion == "" {
		d.SystemVersion = "Windows 10"
	}
	if d.AppVersion == "" {
		d.AppVersion = "2.0"
	}
	return d
}

// Client implements ports.AuthTransport over gotd. Each method builds a
// fresh MTProto client from the supplied state, performs one step inside
// the client's run scope, and lets the connection close before returning.
type Client struct {
	creds  ports.CredentialProvider
	device DeviceInfo
	log    *slog.Logger
}

func New(creds ports.CredentialProvider, device DeviceInfo, log *slog.Logger) *Client {
	return &Client{
		creds:  creds,
		device: device.withDefaults(),
		log:    log,
	}
}

func (c *Client) newClient(ctx context.Context, store *memorySession) (*telegram.Client, error) {
	creds, err := c.creds.Get(ctx)
	if err != nil {
		return nil, err
	}
	return telegram.NewClient(creds.AppID, creds.AppHash, telegram.Options{
		SessionStorage: store,
		Device: telegram.DeviceConfig{
			DeviceModel:   c.device.Model,
			SystemVersion: c.device.SystemVersion,
			AppVersion:    c.device.AppVersion,
		},
	}), nil
}

func (c *Client) SendCode(ctx context.Context, phone string) (*domain.PendingLogin, error) {
	store := newMemorySession(nil)
	client, err := c.newClient(ctx, store)
	if err != nil {
		return nil, err
	}

	var codeHash string
	err = client.Run(ctx, func(ctx context.Context) error {
		sent, err := client.Auth().SendCode(ctx, phone, auth.SendCodeOptions{})
		if err != nil {
			return err
		}
		code, ok := sent.(*tg.AuthSentCode)
		if !ok {
			return fmt.Errorf("unexpected sent code response %T", sent)
		}
		codeHash = code.PhoneCodeHash
		return nil
	})
	if err != nil {
		return nil, mapError("send code", err)
	}

	c.log.Info("verification code sent", "phone", phone)
	return &domain.PendingLogin{State: store.Bytes(), CodeHash: codeHash}, nil
}

func (c *Client) SignIn(ctx context.Context, pending *domain.PendingLogin, phone, code string) (*domain.SignInResult, error) {
	store := newMemorySession(pending.State)
	client, err := c.newClient(ctx, store)
	if err != nil {
		return nil, err
	}

	var (
		passwordNeeded bool
		identity       *domain.Identity
	)
	err = client.Run(ctx, func(ctx context.Context) error {
		_, err := client.Auth().SignIn(ctx, phone, code, pending.CodeHash)
		if errors.Is(err, auth.ErrPasswordAuthNeeded) {
			passwordNeeded = true
			return nil
		}
		if err != nil {
			return err
		}
		identity, err = self(ctx, client)
		return err
	})
	if err != nil {
		return nil, mapError("sign in", err)
	}

	if passwordNeeded {
		c.log.Info("second factor required", "phone", phone)
		return &domain.SignInResult{PasswordNeeded: true, State: store.Bytes()}, nil
	}
	c.log.Info("signed in", "phone", phone, "account_id", identity.AccountID)
	return &domain.SignInResult{Credential: store.Bytes(), Identity: *identity}, nil
}

func (c *Client) CheckPassword(ctx context.Context, state []byte, password string) (*domain.SignInResult, error) {
	store := newMemorySession(state)
	client, err := c.newClient(ctx, store)
	if err != nil {
		return nil, err
	}

	var identity *domain.Identity
	err = client.Run(ctx, func(ctx context.Context) error {
		if _, err := client.Auth().Password(ctx, password); err != nil {
			return err
		}
		identity, err = self(ctx, client)
		return err
	})
	if err != nil {
		return nil, mapError("check password", err)
	}

	c.log.Info("signed in with second factor", "account_id", identity.AccountID)
	return &domain.SignInResult{Credential: store.Bytes(), Identity: *identity}, nil
}

// Connect replays a stored credential and keeps the client running in the
// background until the returned handle is closed.
func (c *Client) Connect(ctx context.Context, credential []byte) (ports.AuthorizedHandle, error) {
	store := newMemorySession(credential)
	client, err := c.newClient(ctx, store)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- client.Run(runCtx, func(ctx context.Context) error {
			close(ready)
			<-ctx.Done()
			return ctx.Err()
		})
	}()

	select {
	case err := <-done:
		cancel()
		return nil, mapError("connect", err)
	case <-ctx.Done():
		cancel()
		<-done
		return nil, &domain.TransportError{Op: "connect", Err: ctx.Err()}
	case <-ready:
	}

	h := &Handle{client: client, api: client.API(), cancel: cancel, done: done}

	status, err := client.Auth().Status(ctx)
	if err != nil {
		_ = h.Close()
		return nil, mapError("auth status", err)
	}
	if !status.Authorized {
		_ = h.Close()
		return nil, domain.ErrNotAuthorized
	}
	return h, nil
}

func self(ctx context.Context, client *telegram.Client) (*domain.Identity, error) {
	me, err := client.Self(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Identity{
		AccountID: me.ID,
		Username:  me.Username,
		FirstName: me.FirstName,
		LastName:  me.LastName,
		Phone:     me.Phone,
	}, nil
}
