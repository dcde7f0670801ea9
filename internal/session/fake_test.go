package session

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"artisanhub/internal/client"
	"artisanhub/internal/domain"
	"artisanhub/internal/money"
)

// fakeAPI is an in-memory marketplace counting remote reads.
type fakeAPI struct {
	mu         sync.Mutex
	products   []domain.Product
	artists    map[string]domain.ArtistProfile
	stores     map[string]domain.StoreSettings
	profile    *domain.UserProfile
	role       domain.Role
	rate       int
	configured bool
	payout     *string
	calls      map[string]int
	failUpload map[string]bool
	sessions   [][]domain.ShoppingItem
	bulkErr    error

	// profileRole resolves the role like the server: guest until a profile exists.
	profileRole bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		artists:    map[string]domain.ArtistProfile{},
		stores:     map[string]domain.StoreSettings{},
		role:       domain.RoleUser,
		rate:       10,
		calls:      map[string]int{},
		failUpload: map[string]bool{},
	}
}

func (f *fakeAPI) count(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAPI) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) ListProducts(context.Context) ([]domain.Product, error) {
	f.count("ListProducts")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Product(nil), f.products...), nil
}

func (f *fakeAPI) ListProductsByArtist(_ context.Context, artistID string) ([]domain.Product, error) {
	f.count("ListProductsByArtist")
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Product
	for _, p := range f.products {
		if p.ArtistID == artistID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeAPI) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeAPI) add(in client.ProductInput) domain.Product {
	p := domain.Product{
		ID:           in.Name,
		ArtistID:     in.ArtistID,
		Name:         in.Name,
		Description:  in.Description,
		CategoryName: in.CategoryName,
		PriceCents:   in.PriceCents,
		Type:         in.Type,
		ImageURLs:    in.ImageURLs,
	}
	f.products = append(f.products, p)
	return p
}

func (f *fakeAPI) CreateProduct(_ context.Context, in client.ProductInput) (*domain.Product, error) {
	f.count("CreateProduct")
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.add(in)
	return &p, nil
}

func (f *fakeAPI) CreateProductsBulk(_ context.Context, in []client.ProductInput) ([]domain.Product, error) {
	f.count("CreateProductsBulk")
	if f.bulkErr != nil {
		return nil, f.bulkErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Product, len(in))
	for i, p := range in {
		out[i] = f.add(p)
	}
	return out, nil
}

func (f *fakeAPI) UpdateProduct(_ context.Context, id string, in client.ProductInput) (*domain.Product, error) {
	f.count("UpdateProduct")
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].Name = in.Name
			f.products[i].PriceCents = in.PriceCents
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, &client.APIError{Status: 404, Message: "not found"}
}

func (f *fakeAPI) DeleteProduct(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return &client.APIError{Status: 404, Message: "not found"}
}

func (f *fakeAPI) ListArtists(context.Context) ([]domain.ArtistProfile, error) {
	f.count("ListArtists")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.ArtistProfile{}
	for _, a := range f.artists {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAPI) GetArtist(_ context.Context, id string) (*domain.ArtistProfile, error) {
	f.count("GetArtist")
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.artists[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeAPI) RegisterArtist(_ context.Context, name, email string) (*domain.ArtistProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := domain.ArtistProfile{ID: "me", Name: name, Email: email, IsActive: true}
	f.artists[a.ID] = a
	return &a, nil
}

func (f *fakeAPI) SetArtistActive(_ context.Context, id string, active bool) (*domain.ArtistProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.artists[id]
	a.IsActive = active
	f.artists[id] = a
	return &a, nil
}

func (f *fakeAPI) SetArtistPaymentAccount(_ context.Context, id, accountID string) (*domain.ArtistProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.artists[id]
	a.PaymentAccountID = &accountID
	f.artists[id] = a
	return &a, nil
}

func (f *fakeAPI) GetStoreSettings(_ context.Context, artistID string) (*domain.StoreSettings, error) {
	f.count("GetStoreSettings")
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stores[artistID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeAPI) UpdateStoreSettings(_ context.Context, s domain.StoreSettings) (*domain.StoreSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stores[s.ArtistID] = s
	return &s, nil
}

func (f *fakeAPI) GetCallerProfile(context.Context) (*domain.UserProfile, error) {
	f.count("GetCallerProfile")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile, nil
}

func (f *fakeAPI) SaveCallerProfile(_ context.Context, p domain.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile = &p
	return nil
}

func (f *fakeAPI) GetCallerRole(context.Context) (domain.Role, error) {
	f.count("GetCallerRole")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profileRole {
		if f.profile == nil {
			return domain.RoleGuest, nil
		}
		return domain.RoleUser, nil
	}
	return f.role, nil
}

func (f *fakeAPI) AssignRole(_ context.Context, _ string, role domain.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.role = role
	return nil
}

func (f *fakeAPI) GetCommissionRate(context.Context) (int, error) {
	f.count("GetCommissionRate")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rate, nil
}

func (f *fakeAPI) SetCommissionRate(_ context.Context, rate int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rate = rate
	return nil
}

func (f *fakeAPI) IsPaymentConfigured(context.Context) (bool, error) {
	f.count("IsPaymentConfigured")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.configured, nil
}

func (f *fakeAPI) SetPaymentConfiguration(context.Context, domain.PaymentConfiguration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.configured = true
	return nil
}

func (f *fakeAPI) GetAdminPaymentAccount(context.Context) (*string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payout, nil
}

func (f *fakeAPI) SetAdminPaymentAccount(_ context.Context, accountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payout = &accountID
	return nil
}

func (f *fakeAPI) GetRevenue(_ context.Context, amountCents int64) (*domain.Breakdown, error) {
	f.mu.Lock()
	rate := f.rate
	f.mu.Unlock()
	b := money.Revenue(amountCents, rate)
	return &b, nil
}

func (f *fakeAPI) CreateCheckoutSession(_ context.Context, items []domain.ShoppingItem) (*domain.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = append(f.sessions, items)
	return &domain.CheckoutSession{ID: "cs_1", URL: "https://pay.example/cs_1"}, nil
}

func (f *fakeAPI) GetSessionStatus(_ context.Context, id string) (*domain.SessionStatus, error) {
	return &domain.SessionStatus{Kind: domain.SessionCompleted, Response: id}, nil
}

func (f *fakeAPI) UploadBlob(_ context.Context, filename, contentType string, r io.Reader) (*domain.MediaReference, error) {
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	fail := f.failUpload[filename]
	f.mu.Unlock()
	if fail {
		return nil, errors.New("storage unavailable")
	}
	return &domain.MediaReference{
		Path:        "me/" + filename,
		DirectURL:   "https://cdn.example/me/" + strings.ReplaceAll(filename, " ", "%20"),
		ContentType: contentType,
		Size:        n,
	}, nil
}
