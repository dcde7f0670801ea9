package httpserver

import (
	"context"
	"errors"
	"io"
	"time"

	"artisanhub/internal/domain"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options configures the router.
type Options struct {
	Addr           string
	AllowedOrigins []string
	MaxUploadBytes int64
	JWTSecret      []byte
	// Registry receives the HTTP metrics and backs /metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListByArtist(ctx context.Context, artistID string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, caller domain.Caller, p domain.Product) (*domain.Product, error)
	CreateBulk(ctx context.Context, caller domain.Caller, ps []domain.Product) ([]domain.Product, error)
	Update(ctx context.Context, caller domain.Caller, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, caller domain.Caller, id string) error
}

type ArtistService interface {
	Register(ctx context.Context, caller domain.Caller, name, email string) (*domain.ArtistProfile, error)
	Get(ctx context.Context, id string) (*domain.ArtistProfile, error)
	List(ctx context.Context) ([]domain.ArtistProfile, error)
	SetActive(ctx context.Context, caller domain.Caller, id string, active bool) (*domain.ArtistProfile, error)
	SetPaymentAccount(ctx context.Context, caller domain.Caller, id, accountID string) (*domain.ArtistProfile, error)
}

type ProfileService interface {
	Get(ctx context.Context, caller domain.Caller) (*domain.UserProfile, error)
	Save(ctx context.Context, caller domain.Caller, p domain.UserProfile) error
	Role(ctx context.Context, principal string) (domain.Role, error)
	AssignRole(ctx context.Context, caller domain.Caller, principal string, role domain.Role) error
}

type StoreService interface {
	Get(ctx context.Context, artistID string) (*domain.StoreSettings, error)
	Update(ctx context.Context, caller domain.Caller, s domain.StoreSettings) (*domain.StoreSettings, error)
}

type PlatformService interface {
	CommissionRate(ctx context.Context) (int, error)
	SetCommissionRate(ctx context.Context, caller domain.Caller, rate int) error
	IsPaymentConfigured(ctx context.Context) (bool, error)
	SetPaymentConfiguration(ctx context.Context, caller domain.Caller, cfg domain.PaymentConfiguration) error
	PayoutAccount(ctx context.Context, caller domain.Caller) (*string, error)
	SetPayoutAccount(ctx context.Context, caller domain.Caller, accountID string) error
	Revenue(ctx context.Context, amountCents int64) (domain.Breakdown, error)
}

type CheckoutService interface {
	CreateSession(ctx context.Context, caller domain.Caller, items []domain.ShoppingItem) (*domain.CheckoutSession, error)
	SessionStatus(ctx context.Context, sessionID string) (*domain.SessionStatus, error)
}

type BlobStore interface {
	Put(ctx context.Context, owner, filename string, r io.Reader) (*domain.MediaReference, error)
}

// Deps are the services behind the routes.
type Deps struct {
	Products ProductService
	Artists  ArtistService
	Profiles ProfileService
	Stores   StoreService
	Platform PlatformService
	Checkout CheckoutService
	Blobs    BlobStore
}

func (d Deps) validate() error {
	if d.Products == nil || d.Artists == nil || d.Profiles == nil || d.Stores == nil ||
		d.Platform == nil || d.Checkout == nil || d.Blobs == nil {
		return errors.New("httpserver: all dependencies are required")
	}
	return nil
}

type handlers struct {
	deps           Deps
	logger         *zap.Logger
	maxUploadBytes int64
}

// buildRouter wires routes for the API.
func buildRouter(opts Options, logger *zap.Logger, db Pinger, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if len(opts.JWTSecret) == 0 {
		return nil, errors.New("httpserver: jwt secret is required")
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics, err := newHTTPMetrics(reg)
	if err != nil {
		return nil, err
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 50 << 20
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestID(), accessLog(logger), gin.Recovery(), metrics.middleware())
	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  opts.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Authorization", "Content-Type", requestIDHeader},
			ExposeHeaders: []string{requestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	h := &handlers{deps: deps, logger: logger, maxUploadBytes: opts.MaxUploadBytes}
	api := router.Group("/api/v1", principal(opts.JWTSecret, deps.Profiles, logger))
	authed := requireAuth()
	admin := requireAdmin()

	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)
	api.POST("/products", authed, h.createProduct)
	api.POST("/products/bulk", authed, h.createProductsBulk)
	api.PUT("/products/:id", authed, h.updateProduct)
	api.DELETE("/products/:id", authed, h.deleteProduct)

	api.GET("/artists", h.listArtists)
	api.POST("/artists", authed, h.registerArtist)
	api.GET("/artists/:id", h.getArtist)
	api.PUT("/artists/:id/active", authed, admin, h.setArtistActive)
	api.PUT("/artists/:id/payment-account", authed, h.setArtistPaymentAccount)
	api.GET("/artists/:id/products", h.listArtistProducts)
	api.GET("/artists/:id/store", h.getStoreSettings)
	api.PUT("/artists/:id/store", authed, h.updateStoreSettings)

	api.GET("/me/profile", authed, h.getProfile)
	api.PUT("/me/profile", authed, h.saveProfile)
	api.GET("/me/role", h.getRole)
	api.PUT("/roles/:principal", authed, admin, h.assignRole)

	api.GET("/platform/commission", h.getCommission)
	api.PUT("/platform/commission", authed, admin, h.setCommission)
	api.GET("/platform/payment", h.getPaymentConfigured)
	api.PUT("/platform/payment", authed, admin, h.setPaymentConfiguration)
	api.GET("/platform/payout-account", authed, admin, h.getPayoutAccount)
	api.PUT("/platform/payout-account", authed, admin, h.setPayoutAccount)
	api.GET("/platform/revenue", authed, admin, h.getRevenue)

	api.POST("/checkout/sessions", h.createCheckoutSession)
	api.GET("/checkout/sessions/:id", h.getCheckoutSession)

	api.POST("/blobs", authed, h.uploadBlob)

	return router, nil
}
