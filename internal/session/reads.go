package session

import (
	"context"

	"artisanhub/internal/domain"
	"artisanhub/internal/querycache"
)

func (s *Session) Products(ctx context.Context) ([]domain.Product, error) {
	return querycache.Get(ctx, s.cache, querycache.KeyProducts, s.api.ListProducts)
}

func (s *Session) ArtistProducts(ctx context.Context, artistID string) ([]domain.Product, error) {
	return querycache.Get(ctx, s.cache, querycache.ArtistProducts(artistID), func(ctx context.Context) ([]domain.Product, error) {
		return s.api.ListProductsByArtist(ctx, artistID)
	})
}

func (s *Session) Product(ctx context.Context, id string) (*domain.Product, error) {
	return querycache.Get(ctx, s.cache, querycache.Product(id), func(ctx context.Context) (*domain.Product, error) {
		return s.api.GetProduct(ctx, id)
	})
}

func (s *Session) Artists(ctx context.Context) ([]domain.ArtistProfile, error) {
	return querycache.Get(ctx, s.cache, querycache.KeyArtists, s.api.ListArtists)
}

func (s *Session) Artist(ctx context.Context, id string) (*domain.ArtistProfile, error) {
	return querycache.Get(ctx, s.cache, querycache.Artist(id), func(ctx context.Context) (*domain.ArtistProfile, error) {
		return s.api.GetArtist(ctx, id)
	})
}

func (s *Session) StoreSettings(ctx context.Context, artistID string) (*domain.StoreSettings, error) {
	return querycache.Get(ctx, s.cache, querycache.StoreSettings(artistID), func(ctx context.Context) (*domain.StoreSettings, error) {
		return s.api.GetStoreSettings(ctx, artistID)
	})
}

func (s *Session) CallerProfile(ctx context.Context) (*domain.UserProfile, error) {
	return querycache.Get(ctx, s.cache, querycache.KeyCallerProfile, s.api.GetCallerProfile)
}

func (s *Session) CallerRole(ctx context.Context) (domain.Role, error) {
	return querycache.Get(ctx, s.cache, querycache.KeyCallerRole, s.api.GetCallerRole)
}

func (s *Session) CommissionRate(ctx context.Context) (int, error) {
	return querycache.Get(ctx, s.cache, querycache.KeyCommissionRate, s.api.GetCommissionRate)
}

func (s *Session) PaymentConfigured(ctx context.Context) (bool, error) {
	return querycache.Get(ctx, s.cache, querycache.KeyPaymentConfigured, s.api.IsPaymentConfigured)
}

func (s *Session) AdminPaymentAccount(ctx context.Context) (*string, error) {
	return querycache.Get(ctx, s.cache, querycache.KeyAdminAccount, s.api.GetAdminPaymentAccount)
}
