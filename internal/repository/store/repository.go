package store

import (
	"context"

	"artisanhub/internal/domain"
)

// Repository persists per-artist storefront settings.
type Repository interface {
	Get(ctx context.Context, artistID string) (*domain.StoreSettings, error)
	Upsert(ctx context.Context, s domain.StoreSettings) (*domain.StoreSettings, error)
}
