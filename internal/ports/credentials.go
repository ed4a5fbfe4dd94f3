package ports

import (
	"context"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
)

// CredentialProvider resolves the api_id/api_hash pair, caching it until
// Invalidate is called (e.g. after the admin panel updates the values).
type CredentialProvider interface {
	Get(ctx context.Context) (domain.AppCredentials, error)
	Invalidate()
}

// ConfigRepo is the remote key/value config source backing the provider and
// the admin panel settings.
type ConfigRepo interface {
	// Get returns domain.ErrConfigNotFound for absent keys.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
