package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
)

type dealRow struct {
	bun.BaseModel `bun:"table:deals"`

	ID         string    `bun:"id,pk"`
	GroupID    int64     `bun:"group_id"`
	InviteLink string    `bun:"invite_link"`
	CreatedAt  time.Time `bun:"created_at"`
}

// DealStore keeps one row per created escrow group.
type DealStore struct {
	db *bun.DB
}

func NewDealStore(db *bun.DB) *DealStore {
	return &DealStore{db: db}
}

func (s *DealStore) Save(ctx context.Context, deal *domain.Deal) error {
	row := &dealRow{
		ID:         deal.ID,
		GroupID:    deal.GroupID,
		InviteLink: deal.InviteLink,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return &domain.StoreError{Err: err}
	}
	return nil
}

func (s *DealStore) Get(ctx context.Context, id string) (*domain.Deal, error) {
	row := new(dealRow)
	err := s.db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDealNotFound
	}
	if err != nil {
		return nil, &domain.StoreError{Err: err}
	}
	return &domain.Deal{
		ID:         row.ID,
		GroupID:    row.GroupID,
		InviteLink: row.InviteLink,
		CreatedAt:  row.CreatedAt,
	}, nil
}
