package artist

import (
	"context"

	"artisanhub/internal/domain"
)

// Repository persists artist profiles.
type Repository interface {
	Create(ctx context.Context, a domain.ArtistProfile) (*domain.ArtistProfile, error)
	GetByID(ctx context.Context, id string) (*domain.ArtistProfile, error)
	List(ctx context.Context) ([]domain.ArtistProfile, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.ArtistProfile, error)
	SetPaymentAccount(ctx context.Context, id, accountID string) (*domain.ArtistProfile, error)
}
