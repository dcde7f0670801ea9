package product

import (
	"context"

	"artisanhub/internal/domain"
)

// Repository persists and fetches products.
type Repository interface {
	ListAll(ctx context.Context) ([]domain.Product, error)
	ListByArtist(ctx context.Context, artistID string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	CreateBulk(ctx context.Context, ps []domain.Product) ([]domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
