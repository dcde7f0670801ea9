// Package dbtest provides a migrated postgres pool for integration tests.
package dbtest

import (
	"context"
	"os"
	"testing"

	"artisanhub/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool connects to TEST_DB_DSN, applies migrations and empties every table.
// The test is skipped when TEST_DB_DSN is unset.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE products, store_settings, artists, user_profiles, user_roles CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
	if _, err := pool.Exec(ctx, `UPDATE platform_settings SET commission_rate = 10, payment_secret_sealed = NULL, allowed_countries = '{}', payout_account_id = NULL`); err != nil {
		t.Fatalf("reset platform settings: %v", err)
	}
	return pool
}

// InsertArtist adds a minimal active artist row.
func InsertArtist(t *testing.T, pool *pgxpool.Pool, id string) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO artists (id, name, email) VALUES ($1, $2, $3)`, id, "Artist "+id, id+"@example.com")
	if err != nil {
		t.Fatalf("insert artist: %v", err)
	}
}
