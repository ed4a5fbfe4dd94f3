package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
)

type configRow struct {
	bun.BaseModel `bun:"table:config"`

	Key   string `bun:"key,pk"`
	Value string `bun:"value"`
}

// ConfigRepo is the key/value config table the admin panel writes and the
// credential provider reads.
type ConfigRepo struct {
	db *bun.DB
}

func NewConfigRepo(db *bun.DB) *ConfigRepo {
	return &ConfigRepo{db: db}
}

func (r *ConfigRepo) Get(ctx context.Context, key string) (string, error) {
	row := new(configRow)
	err := r.db.NewSelect().
		Model(row).
		Where("key = ?", key).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrConfigNotFound
	}
	if err != nil {
		return "", &domain.StoreError{Err: err}
	}
	return row.Value, nil
}

func (r *ConfigRepo) Set(ctx context.Context, key, value string) error {
	row := &configRow{Key: key, Value: value}
	_, err := r.db.NewInsert().
		Model(row).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	if err != nil {
		return &domain.StoreError{Err: err}
	}
	return nil
}
