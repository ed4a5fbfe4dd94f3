package ports

import (
	"context"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
)

// SessionStore persists completed logins keyed by phone.
type SessionStore interface {
	// Save upserts: an existing row for s.Phone is updated in place with a
	// refreshed UpdatedAt, otherwise a new row is inserted.
	Save(ctx context.Context, s *domain.Session) error

	// Get returns domain.ErrSessionNotFound when no row exists for phone.
	Get(ctx context.Context, phone string) (*domain.Session, error)

	// Latest returns the row with the most recent UpdatedAt across all
	// phones. Used to bootstrap the single operator session.
	Latest(ctx context.Context) (*domain.Session, error)

	// Delete is idempotent: deleting an absent phone is not an error.
	Delete(ctx context.Context, phone string) error
}
