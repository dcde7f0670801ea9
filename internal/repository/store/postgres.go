package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"artisanhub/internal/domain"
	"artisanhub/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const storeColumns = `artist_id, store_name, store_bio, banner_image, social_links, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger).Named("store_repo")}
}

func (r *postgresRepo) Get(ctx context.Context, artistID string) (*domain.StoreSettings, error) {
	s, err := scanStore(r.pool.QueryRow(ctx, `SELECT `+storeColumns+` FROM store_settings WHERE artist_id = $1`, artistID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("get store settings", zap.String("artist_id", artistID), zap.Error(err))
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, s domain.StoreSettings) (*domain.StoreSettings, error) {
	links, err := json.Marshal(s.SocialLinks)
	if err != nil {
		return nil, fmt.Errorf("marshal social links: %w", err)
	}
	q := `
INSERT INTO store_settings (artist_id, store_name, store_bio, banner_image, social_links)
VALUES ($1, $2, $3, $4, $5::jsonb)
ON CONFLICT (artist_id) DO UPDATE SET
    store_name = EXCLUDED.store_name,
    store_bio = EXCLUDED.store_bio,
    banner_image = EXCLUDED.banner_image,
    social_links = EXCLUDED.social_links,
    updated_at = now()
RETURNING ` + storeColumns
	saved, err := scanStore(r.pool.QueryRow(ctx, q, s.ArtistID, s.StoreName, s.StoreBio, s.BannerImage, string(links)))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, fmt.Errorf("artist: %w", domain.ErrNotFound)
		}
		r.logger.Error("upsert store settings", zap.String("artist_id", s.ArtistID), zap.Error(err))
		return nil, err
	}
	r.logger.Info("saved store settings", zap.String("artist_id", s.ArtistID))
	return saved, nil
}

func scanStore(row pgx.Row) (*domain.StoreSettings, error) {
	var (
		s     domain.StoreSettings
		links []byte
	)
	if err := row.Scan(&s.ArtistID, &s.StoreName, &s.StoreBio, &s.BannerImage, &links, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if len(links) > 0 {
		if err := json.Unmarshal(links, &s.SocialLinks); err != nil {
			return nil, fmt.Errorf("decode social links: %w", err)
		}
	}
	return &s, nil
}
