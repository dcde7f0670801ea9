package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"artisanhub/internal/domain"
	"artisanhub/internal/money"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type stubProductService struct {
	products  map[string]domain.Product
	lastOwner domain.Caller
	createErr error
}

func (s *stubProductService) List(context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubProductService) ListByArtist(_ context.Context, artistID string) ([]domain.Product, error) {
	return []domain.Product{}, nil
}

func (s *stubProductService) Get(_ context.Context, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *stubProductService) Create(_ context.Context, caller domain.Caller, p domain.Product) (*domain.Product, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.lastOwner = caller
	p.ID = "p-new"
	p.ArtistID = caller.Principal
	return &p, nil
}

func (s *stubProductService) CreateBulk(_ context.Context, _ domain.Caller, ps []domain.Product) ([]domain.Product, error) {
	return ps, nil
}

func (s *stubProductService) Update(_ context.Context, _ domain.Caller, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func (s *stubProductService) Delete(context.Context, domain.Caller, string) error { return nil }

type stubArtistService struct{}

func (stubArtistService) Register(_ context.Context, caller domain.Caller, name, email string) (*domain.ArtistProfile, error) {
	return &domain.ArtistProfile{ID: caller.Principal, Name: name, Email: email, IsActive: true}, nil
}

func (stubArtistService) Get(context.Context, string) (*domain.ArtistProfile, error) {
	return nil, domain.ErrNotFound
}

func (stubArtistService) List(context.Context) ([]domain.ArtistProfile, error) {
	return []domain.ArtistProfile{}, nil
}

func (stubArtistService) SetActive(_ context.Context, _ domain.Caller, id string, active bool) (*domain.ArtistProfile, error) {
	return &domain.ArtistProfile{ID: id, IsActive: active}, nil
}

func (stubArtistService) SetPaymentAccount(_ context.Context, _ domain.Caller, id, accountID string) (*domain.ArtistProfile, error) {
	return &domain.ArtistProfile{ID: id, PaymentAccountID: &accountID}, nil
}

type stubProfileService struct {
	roles   map[string]domain.Role
	profile *domain.UserProfile
}

func (s *stubProfileService) Get(context.Context, domain.Caller) (*domain.UserProfile, error) {
	if s.profile == nil {
		return nil, domain.ErrNotFound
	}
	return s.profile, nil
}

func (s *stubProfileService) Save(_ context.Context, _ domain.Caller, p domain.UserProfile) error {
	if !p.HasConsented() {
		return domain.ErrConsentRequired
	}
	s.profile = &p
	return nil
}

func (s *stubProfileService) Role(_ context.Context, principal string) (domain.Role, error) {
	if r, ok := s.roles[principal]; ok {
		return r, nil
	}
	return domain.RoleUser, nil
}

func (s *stubProfileService) AssignRole(context.Context, domain.Caller, string, domain.Role) error {
	return nil
}

type stubStoreService struct{}

func (stubStoreService) Get(context.Context, string) (*domain.StoreSettings, error) {
	return nil, domain.ErrNotFound
}

func (stubStoreService) Update(_ context.Context, _ domain.Caller, s domain.StoreSettings) (*domain.StoreSettings, error) {
	return &s, nil
}

type stubPlatformService struct {
	rate int
}

func (s *stubPlatformService) CommissionRate(context.Context) (int, error) { return s.rate, nil }

func (s *stubPlatformService) SetCommissionRate(_ context.Context, _ domain.Caller, rate int) error {
	s.rate = rate
	return nil
}

func (s *stubPlatformService) IsPaymentConfigured(context.Context) (bool, error) { return false, nil }

func (s *stubPlatformService) SetPaymentConfiguration(context.Context, domain.Caller, domain.PaymentConfiguration) error {
	return nil
}

func (s *stubPlatformService) PayoutAccount(context.Context, domain.Caller) (*string, error) {
	return nil, nil
}

func (s *stubPlatformService) SetPayoutAccount(context.Context, domain.Caller, string) error {
	return nil
}

func (s *stubPlatformService) Revenue(_ context.Context, amount int64) (domain.Breakdown, error) {
	return money.Revenue(amount, s.rate), nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) CreateSession(_ context.Context, _ domain.Caller, items []domain.ShoppingItem) (*domain.CheckoutSession, error) {
	if err := domain.ValidateItems(items); err != nil {
		return nil, err
	}
	return nil, domain.ErrPaymentNotConfigured
}

func (stubCheckoutService) SessionStatus(context.Context, string) (*domain.SessionStatus, error) {
	return nil, domain.ErrPaymentNotConfigured
}

type stubBlobStore struct {
	lastOwner string
	lastName  string
	lastBody  string
}

func (s *stubBlobStore) Put(_ context.Context, owner, filename string, r io.Reader) (*domain.MediaReference, error) {
	b, _ := io.ReadAll(r)
	s.lastOwner, s.lastName, s.lastBody = owner, filename, string(b)
	return &domain.MediaReference{Path: owner + "/x.png", DirectURL: "https://cdn.example.com/" + owner + "/x.png", Size: int64(len(b))}, nil
}

type testEnv struct {
	router   *gin.Engine
	products *stubProductService
	platform *stubPlatformService
	blobs    *stubBlobStore
	profiles *stubProfileService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	env := &testEnv{
		products: &stubProductService{products: map[string]domain.Product{"p1": {ID: "p1", Name: "Vase", PriceCents: 1250}}},
		platform: &stubPlatformService{rate: 10},
		blobs:    &stubBlobStore{},
		profiles: &stubProfileService{roles: map[string]domain.Role{"root": domain.RoleAdmin}},
	}
	router, err := buildRouter(Options{JWTSecret: testSecret, AllowedOrigins: []string{"http://localhost:5173"}}, zapNop(), nil, Deps{
		Products: env.products,
		Artists:  stubArtistService{},
		Profiles: env.profiles,
		Stores:   stubStoreService{},
		Platform: env.platform,
		Checkout: stubCheckoutService{},
		Blobs:    env.blobs,
	})
	require.NoError(t, err)
	env.router = router
	return env
}

func token(t *testing.T, sub string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func (e *testEnv) do(method, path, principal, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if principal != "" {
		req.Header.Set("Authorization", "Bearer "+principal)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/readyz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPublicReads(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/v1/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":1250`)

	rec = env.do(http.MethodGet, "/api/v1/products/missing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())

	rec = env.do(http.MethodGet, "/api/v1/artists/ana/store", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", rec.Body.String())

	rec = env.do(http.MethodGet, "/api/v1/me/role", "", "")
	assert.JSONEq(t, `{"role":"guest"}`, rec.Body.String())

	rec = env.do(http.MethodGet, "/api/v1/platform/payment", "", "")
	assert.JSONEq(t, `{"configured":false}`, rec.Body.String())
}

func TestAuthentication(t *testing.T) {
	env := newTestEnv(t)
	body := `{"name":"Vase","description":"blue","categoryName":"Home","price":1250}`

	rec := env.do(http.MethodPost, "/api/v1/products", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/products", "not-a-jwt", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ana", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	rec = env.do(http.MethodPost, "/api/v1/products", forged, body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/products", token(t, "ana"), body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "ana", env.products.lastOwner.Principal)
	assert.Equal(t, domain.RoleUser, env.products.lastOwner.Role)

	var p domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, domain.ProductTypeProduct, p.Type)
	assert.Equal(t, int64(1250), p.PriceCents)
}

func TestAdminRoutes(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPut, "/api/v1/platform/commission", token(t, "ana"), `{"rate":15}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 10, env.platform.rate)

	rec = env.do(http.MethodPut, "/api/v1/artists/ana/active", token(t, "ana"), `{"isActive":false}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodPut, "/api/v1/platform/commission", token(t, "root"), `{"rate":15}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 15, env.platform.rate)

	rec = env.do(http.MethodPut, "/api/v1/platform/commission", token(t, "root"), `{"rate":150}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/platform/revenue?amount=1250", token(t, "root"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"amount":1250,"commissionRate":15,"platformShare":187,"artistShare":1063}`, rec.Body.String())

	rec = env.do(http.MethodGet, "/api/v1/platform/payout-account", token(t, "root"), "")
	assert.JSONEq(t, `{"accountId":null}`, rec.Body.String())
}

func TestValidationErrors(t *testing.T) {
	env := newTestEnv(t)
	ana := token(t, "ana")

	rec := env.do(http.MethodPost, "/api/v1/products", ana, `{"name":"Vase","description":"d","categoryName":"c","price":-5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/products", ana, `{"name":"Vase","description":"d","categoryName":"c"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/products", ana, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/products/bulk", ana, `{"products":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPut, "/api/v1/me/profile", ana, `{"name":"Ana","email":"a@example.com","termsAccepted":true}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	env.products.createErr = domain.ErrConsentRequired
	rec = env.do(http.MethodPost, "/api/v1/products", ana, `{"name":"Vase","description":"d","categoryName":"c","price":1}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCheckout(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/v1/checkout/sessions", "", `{"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/checkout/sessions", "", `{"items":[{"productName":"Vase","priceInCents":1250,"quantity":1,"currency":"usd"}]}`)
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
}

func TestProfile(t *testing.T) {
	env := newTestEnv(t)
	ana := token(t, "ana")

	rec := env.do(http.MethodGet, "/api/v1/me/profile", ana, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", rec.Body.String())

	rec = env.do(http.MethodPut, "/api/v1/me/profile", ana, `{"name":"Ana","email":"a@example.com","termsAccepted":true,"privacyPolicyAccepted":true}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/me/profile", ana, "")
	assert.Contains(t, rec.Body.String(), `"name":"Ana"`)
}

func TestUploadBlob(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "vase.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("png-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/blobs", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token(t, "ana"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "ana", env.blobs.lastOwner)
	assert.Equal(t, "vase.png", env.blobs.lastName)
	assert.Equal(t, "png-bytes", env.blobs.lastBody)
	assert.Contains(t, rec.Body.String(), `"directUrl":"https://cdn.example.com/ana/x.png"`)

	rec = env.do(http.MethodPost, "/api/v1/blobs", token(t, "ana"), `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(http.MethodGet, "/api/v1/products", "", "")

	rec := env.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `artisanhub_http_requests_total{code="200",method="GET",path="/api/v1/products"} 1`)
}

func TestRequestIDEchoed(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(requestIDHeader))
}
