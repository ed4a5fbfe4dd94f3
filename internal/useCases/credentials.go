package useCases

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
	"github.com/Devashishswamii/tgescrowbot/internal/ports"
)

// Remote config keys written by the admin panel.
const (
	ConfigKeyAPIID   = "telegram_api_id"
	ConfigKeyAPIHash = "telegram_api_hash"
)

// CredentialProvider resolves api_id/api_hash remote-config-first with an
// env-supplied fallback, and caches the pair until Invalidate.
type CredentialProvider struct {
	remote   ports.ConfigRepo
	fallback domain.AppCredentials
	log      *slog.Logger

	mu     sync.RWMutex
	cached *domain.AppCredentials
}

func NewCredentialProvider(remote ports.ConfigRepo, fallback domain.AppCredentials, log *slog.Logger) *CredentialProvider {
	return &CredentialProvider{remote: remote, fallback: fallback, log: log}
}

func (p *CredentialProvider) Get(ctx context.Context) (domain.AppCredentials, error) {
	p.mu.RLock()
	if p.cached != nil {
		creds := *p.cached
		p.mu.RUnlock()
		return creds, nil
	}
	p.mu.RUnlock()

	creds := p.fallback
	if id, ok := p.remoteValue(ctx, ConfigKeyAPIID); ok {
		if n, err := strconv.Atoi(id); err == nil {
			creds.AppID = n
		} else {
			p.log.Warn("remote api_id is not a number", "value", id)
		}
	}
	if hash, ok := p.remoteValue(ctx, ConfigKeyAPIHash); ok {
		creds.AppHash = hash
	}

	if creds.AppID == 0 || creds.AppHash == "" {
		return domain.AppCredentials{}, domain.ErrMissingCredentials
	}

	p.mu.Lock()
	p.cached = &creds
	p.mu.Unlock()
	return creds, nil
}

// Invalidate drops the cache. Call after the admin panel saves new values;
// remote storage is untouched.
func (p *CredentialProvider) Invalidate() {
	p.mu.Lock()
	p.cached = nil
	p.mu.Unlock()
}

func (p *CredentialProvider) remoteValue(ctx context.Context, key string) (string, bool) {
	if p.remote == nil {
		return "", false
	}
	v, err := p.remote.Get(ctx, key)
	if errors.Is(err, domain.ErrConfigNotFound) {
		return "", false
	}
	if err != nil {
		p.log.Warn("remote config unavailable, using fallback", "key", key, "error", err)
		return "", false
	}
	if v == "" {
		return "", false
	}
	return v, true
}
