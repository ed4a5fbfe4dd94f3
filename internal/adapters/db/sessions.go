package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
)

type sessionRow struct {
	bun.BaseModel `bun:"table:telegram_sessions"`

	Phone      string `bun:"phone,pk"`
	Credential []byte `bun:"credential_blob"`
	AccountID  int64  `bun:"account_id"`
	Username   string `bun:"username"`
	FirstName  string `bun:"first_name"`
	LastName   string `bun:"last_name"`

	CreatedAt time.Time `bun:"created_at"`
	UpdatedAt time.Time `bun:"updated_at"`
}

func (r *sessionRow) toDomain() *domain.Session {
	return &domain.Session{
		Phone:      r.Phone,
		Credential: r.Credential,
		AccountID:  r.AccountID,
		Username:   r.Username,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// SessionStore persists completed logins, one row per phone.
type SessionStore struct {
	db *bun.DB
}

func NewSessionStore(db *bun.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Save upserts by phone. The row-level conflict clause serializes
// concurrent completions for the same phone: the store ends up with one of
// the writes intact, never a merge.
func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	now := time.Now().UTC()
	row := &sessionRow{
		Phone:      sess.Phone,
		Credential: sess.Credential,
		AccountID:  sess.AccountID,
		Username:   sess.Username,
		FirstName:  sess.FirstName,
		LastName:   sess.LastName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	_, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (phone) DO UPDATE").
		Set("credential_blob = EXCLUDED.credential_blob").
		Set("account_id = EXCLUDED.account_id").
		Set("username = EXCLUDED.username").
		Set("first_name = EXCLUDED.first_name").
		Set("last_name = EXCLUDED.last_name").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return &domain.StoreError{Err: err}
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, phone string) (*domain.Session, error) {
	row := new(sessionRow)
	err := s.db.NewSelect().
		Model(row).
		Where("phone = ?", phone).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, &domain.StoreError{Err: err}
	}
	return row.toDomain(), nil
}

func (s *SessionStore) Latest(ctx context.Context) (*domain.Session, error) {
	row := new(sessionRow)
	err := s.db.NewSelect().
		Model(row).
		Order("updated_at DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, &domain.StoreError{Err: err}
	}
	return row.toDomain(), nil
}

func (s *SessionStore) Delete(ctx context.Context, phone string) error {
	_, err := s.db.NewDelete().
		Model((*sessionRow)(nil)).
		Where("phone = ?", phone).
		Exec(ctx)
	if err != nil {
		return &domain.StoreError{Err: err}
	}
	return nil
}
