package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Open connects to the configured database. sqlite3 is the default driver;
// postgres is what production runs on.
func Open(driver, dsn string) (*bun.DB, error) {
	switch driver {
	case "postgres":
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	case "sqlite3", "":
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// sqlite serializes writes itself; a single connection avoids
		// table-lock errors under concurrent upserts.
		sqldb.SetMaxOpenConns(1)
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

// Init creates the tables this service owns.
func Init(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*sessionRow)(nil),
		(*configRow)(nil),
		(*dealRow)(nil),
	}
	for _, m := range models {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}
