// Package session is the per-login facade the CLI pages run on. It owns the
// query cache: reads go through it, and every mutation invalidates the keys it
// affects once the remote call succeeded.
package session

import (
	"context"
	"io"

	"artisanhub/internal/client"
	"artisanhub/internal/domain"
	"artisanhub/internal/logging"
	"artisanhub/internal/querycache"
	"go.uber.org/zap"
)

// API is the remote contract. *client.Client implements it.
type API interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListProductsByArtist(ctx context.Context, artistID string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, in client.ProductInput) (*domain.Product, error)
	CreateProductsBulk(ctx context.Context, in []client.ProductInput) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in client.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListArtists(ctx context.Context) ([]domain.ArtistProfile, error)
	GetArtist(ctx context.Context, id string) (*domain.ArtistProfile, error)
	RegisterArtist(ctx context.Context, name, email string) (*domain.ArtistProfile, error)
	SetArtistActive(ctx context.Context, id string, active bool) (*domain.ArtistProfile, error)
	SetArtistPaymentAccount(ctx context.Context, id, accountID string) (*domain.ArtistProfile, error)
	GetStoreSettings(ctx context.Context, artistID string) (*domain.StoreSettings, error)
	UpdateStoreSettings(ctx context.Context, s domain.StoreSettings) (*domain.StoreSettings, error)

	GetCallerProfile(ctx context.Context) (*domain.UserProfile, error)
	SaveCallerProfile(ctx context.Context, p domain.UserProfile) error
	GetCallerRole(ctx context.Context) (domain.Role, error)
	AssignRole(ctx context.Context, principal string, role domain.Role) error

	GetCommissionRate(ctx context.Context) (int, error)
	SetCommissionRate(ctx context.Context, rate int) error
	IsPaymentConfigured(ctx context.Context) (bool, error)
	SetPaymentConfiguration(ctx context.Context, cfg domain.PaymentConfiguration) error
	GetAdminPaymentAccount(ctx context.Context) (*string, error)
	SetAdminPaymentAccount(ctx context.Context, accountID string) error
	GetRevenue(ctx context.Context, amountCents int64) (*domain.Breakdown, error)

	CreateCheckoutSession(ctx context.Context, items []domain.ShoppingItem) (*domain.CheckoutSession, error)
	GetSessionStatus(ctx context.Context, sessionID string) (*domain.SessionStatus, error)

	UploadBlob(ctx context.Context, filename, contentType string, r io.Reader) (*domain.MediaReference, error)
}

type Session struct {
	api    API
	cache  *querycache.Cache
	logger *zap.Logger
}

// New starts a session with an empty cache.
func New(api API, logger *zap.Logger) *Session {
	logger = logging.OrNop(logger).Named("session")
	return &Session{
		api:    api,
		cache:  querycache.New(logger),
		logger: logger,
	}
}

// Close ends the session and drops every cached read.
func (s *Session) Close() {
	s.cache.Close()
}

// API exposes the uncached remote contract.
func (s *Session) API() API { return s.api }

// mutate runs call and invalidates keys only when it succeeded.
func (s *Session) mutate(ctx context.Context, call func(context.Context) error, keys ...querycache.Key) error {
	if err := call(ctx); err != nil {
		return err
	}
	s.cache.Invalidate(keys...)
	return nil
}
