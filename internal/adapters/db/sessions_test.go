package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
)

func setupDB(t *testing.T) *bun.DB {
	t.Helper()
	database, err := Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := Init(context.Background(), database); err != nil {
		t.Fatalf("init: %v", err)
	}
	return database
}

func sampleSession(phone string) *domain.Session {
	return &domain.Session{
		Phone:      phone,
		Credential: []byte("blob-" + phone),
		AccountID:  1000,
		Username:   "operator",
		FirstName:  "Op",
		LastName:   "Erator",
	}
}

func TestSessionSaveGetRoundtrip(t *testing.T) {
	store := NewSessionStore(setupDB(t))
	ctx := context.Background()

	if err := store.Save(ctx, sampleSession("+15551230001")); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "+15551230001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "operator" || string(got.Credential) != "blob-+15551230001" {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", got)
	}
}

func TestSessionUpsertLastWriteWins(t *testing.T) {
	store := NewSessionStore(setupDB(t))
	ctx := context.Background()
	phone := "+15551230001"

	first := sampleSession(phone)
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	created, err := store.Get(ctx, phone)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	second := sampleSession(phone)
	second.Credential = []byte("rotated-blob")
	second.Username = "renamed"
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := store.Get(ctx, phone)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got.Credential) != "rotated-blob" || got.Username != "renamed" {
		t.Fatalf("last write lost: %+v", got)
	}
	if !got.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updated_at not refreshed: %v vs %v", got.UpdatedAt, created.UpdatedAt)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at rewritten on update: %v vs %v", got.CreatedAt, created.CreatedAt)
	}
}

func TestSessionsIsolatedByPhone(t *testing.T) {
	store := NewSessionStore(setupDB(t))
	ctx := context.Background()

	a := sampleSession("+15551230001")
	b := sampleSession("+15551230002")
	b.Username = "second"
	if err := store.Save(ctx, a); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if err := store.Save(ctx, b); err != nil {
		t.Fatalf("save b: %v", err)
	}

	gotA, err := store.Get(ctx, a.Phone)
	if err != nil {
		t.Fatalf("get a: %v", err)
	}
	gotB, err := store.Get(ctx, b.Phone)
	if err != nil {
		t.Fatalf("get b: %v", err)
	}
	if gotA.Username != "operator" || gotB.Username != "second" {
		t.Fatalf("cross-phone interference: %+v / %+v", gotA, gotB)
	}
}

func TestSessionDelete(t *testing.T) {
	store := NewSessionStore(setupDB(t))
	ctx := context.Background()
	phone := "+15551230001"

	if err := store.Save(ctx, sampleSession(phone)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, phone); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, phone); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound after delete, got %v", err)
	}
	// deleting an absent phone is not an error
	if err := store.Delete(ctx, phone); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestSessionLatest(t *testing.T) {
	store := NewSessionStore(setupDB(t))
	ctx := context.Background()

	if _, err := store.Latest(ctx); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound on empty store, got %v", err)
	}

	if err := store.Save(ctx, sampleSession("+15551230001")); err != nil {
		t.Fatalf("save: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if err := store.Save(ctx, sampleSession("+15551230002")); err != nil {
		t.Fatalf("save: %v", err)
	}

	latest, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Phone != "+15551230002" {
		t.Fatalf("want most recently updated row, got %s", latest.Phone)
	}

	// refreshing the older phone makes it the latest again
	time.Sleep(20 * time.Millisecond)
	if err := store.Save(ctx, sampleSession("+15551230001")); err != nil {
		t.Fatalf("save: %v", err)
	}
	latest, err = store.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Phone != "+15551230001" {
		t.Fatalf("upsert did not refresh recency, got %s", latest.Phone)
	}
}

func TestConfigRepo(t *testing.T) {
	repo := NewConfigRepo(setupDB(t))
	ctx := context.Background()

	if _, err := repo.Get(ctx, "telegram_api_id"); !errors.Is(err, domain.ErrConfigNotFound) {
		t.Fatalf("want ErrConfigNotFound, got %v", err)
	}

	if err := repo.Set(ctx, "telegram_api_id", "12345"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := repo.Get(ctx, "telegram_api_id")
	if err != nil || v != "12345" {
		t.Fatalf("get: %v %q", err, v)
	}

	// overwrite
	if err := repo.Set(ctx, "telegram_api_id", "67890"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, err = repo.Get(ctx, "telegram_api_id")
	if err != nil || v != "67890" {
		t.Fatalf("get after overwrite: %v %q", err, v)
	}
}
