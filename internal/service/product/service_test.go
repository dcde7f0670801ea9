package product

import (
	"context"
	"testing"

	"artisanhub/internal/domain"
	"artisanhub/internal/events"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	products map[string]domain.Product
	bulk     [][]domain.Product
	nextID   int
}

func newStubRepo() *stubRepo { return &stubRepo{products: map[string]domain.Product{}} }

func (s *stubRepo) ListAll(context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubRepo) ListByArtist(_ context.Context, artistID string) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range s.products {
		if p.ArtistID == artistID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *stubRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.nextID++
	p.ID = "p" + string(rune('0'+s.nextID))
	s.products[p.ID] = p
	return &p, nil
}

func (s *stubRepo) CreateBulk(ctx context.Context, ps []domain.Product) ([]domain.Product, error) {
	s.bulk = append(s.bulk, ps)
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		created, _ := s.Create(ctx, p)
		out = append(out, *created)
	}
	return out, nil
}

func (s *stubRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	if _, ok := s.products[p.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	s.products[p.ID] = p
	return &p, nil
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	if _, ok := s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

type artistStub map[string]domain.ArtistProfile

func (a artistStub) Create(context.Context, domain.ArtistProfile) (*domain.ArtistProfile, error) {
	return nil, nil
}

func (a artistStub) GetByID(_ context.Context, id string) (*domain.ArtistProfile, error) {
	v, ok := a[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func (a artistStub) List(context.Context) ([]domain.ArtistProfile, error) { return nil, nil }

func (a artistStub) SetActive(context.Context, string, bool) (*domain.ArtistProfile, error) {
	return nil, nil
}

func (a artistStub) SetPaymentAccount(context.Context, string, string) (*domain.ArtistProfile, error) {
	return nil, nil
}

type consentStub map[string]bool

func (c consentStub) RequireConsent(_ context.Context, principal string) error {
	if !c[principal] {
		return domain.ErrConsentRequired
	}
	return nil
}

var (
	ana   = domain.Caller{Principal: "ana", Role: domain.RoleUser}
	bob   = domain.Caller{Principal: "bob", Role: domain.RoleUser}
	admin = domain.Caller{Principal: "root", Role: domain.RoleAdmin}
)

func newService(repo *stubRepo) *Service {
	artists := artistStub{
		"ana": {ID: "ana", IsActive: true},
		"bob": {ID: "bob", IsActive: true},
		"zed": {ID: "zed", IsActive: false},
	}
	return New(repo, artists, consentStub{"ana": true, "bob": true, "zed": true}, events.Noop{}, nil)
}

func vase() domain.Product {
	return domain.Product{Name: "Vase", Description: "blue", CategoryName: "Home", PriceCents: 1250, Type: domain.ProductTypeProduct}
}

func TestCreate_ForcesOwner(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, ana, vase())
	require.NoError(t, err)
	assert.Equal(t, "ana", p.ArtistID)
	assert.Equal(t, int64(1250), p.PriceCents)
	assert.Equal(t, []string{}, p.ImageURLs)

	other := vase()
	other.ArtistID = "bob"
	_, err = svc.Create(ctx, ana, other)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	p, err = svc.Create(ctx, admin, other)
	require.NoError(t, err)
	assert.Equal(t, "bob", p.ArtistID)

	_, err = svc.Create(ctx, domain.Caller{Principal: "zed", Role: domain.RoleUser}, vase())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Create(ctx, domain.Caller{Principal: "nobody", Role: domain.RoleUser}, vase())
	assert.ErrorIs(t, err, domain.ErrConsentRequired)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*domain.Product){
		"blank name":        func(p *domain.Product) { p.Name = "  " },
		"blank description": func(p *domain.Product) { p.Description = "" },
		"blank category":    func(p *domain.Product) { p.CategoryName = "" },
		"negative price":    func(p *domain.Product) { p.PriceCents = -1 },
		"unknown type":      func(p *domain.Product) { p.Type = "gift" },
		"relative image":    func(p *domain.Product) { p.ImageURLs = []string{"/a.png"} },
		"donation floor": func(p *domain.Product) {
			p.Type = domain.ProductTypeDonation
			p.PriceCents = 99
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := vase()
			mutate(&p)
			assert.True(t, domain.IsValidation(Validate(&p)))
		})
	}

	p := vase()
	empty := ""
	p.VideoURL = &empty
	require.NoError(t, Validate(&p))
	assert.Nil(t, p.VideoURL)
}

func TestUpdate_PreservesTypeAndOwner(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)
	ctx := context.Background()

	donation := domain.Product{Name: "Tip", Description: "thanks", CategoryName: "Support", PriceCents: 500, Type: domain.ProductTypeDonation}
	created, err := svc.Create(ctx, ana, donation)
	require.NoError(t, err)

	edit := *created
	edit.Type = domain.ProductTypeProduct
	edit.ArtistID = "bob"
	edit.PriceCents = 700
	updated, err := svc.Update(ctx, ana, edit)
	require.NoError(t, err)

	want := *created
	want.PriceCents = 700
	if diff := cmp.Diff(want, *updated); diff != "" {
		t.Fatalf("updated product mismatch (-want +got):\n%s", diff)
	}

	_, err = svc.Update(ctx, bob, edit)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Update(ctx, ana, domain.Product{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_OwnerOrAdmin(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, ana, vase())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, bob, p.ID), domain.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, domain.Caller{}, p.ID), domain.ErrUnauthenticated)
	require.NoError(t, svc.Delete(ctx, admin, p.ID))
	assert.ErrorIs(t, svc.Delete(ctx, ana, p.ID), domain.ErrNotFound)
}

func TestCreateBulk(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)
	ctx := context.Background()

	_, err := svc.CreateBulk(ctx, ana, nil)
	assert.True(t, domain.IsValidation(err))

	bad := vase()
	bad.Name = ""
	_, err = svc.CreateBulk(ctx, ana, []domain.Product{vase(), bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "products[1].name")
	assert.Empty(t, repo.bulk, "nothing is submitted when one entry is invalid")

	created, err := svc.CreateBulk(ctx, ana, []domain.Product{vase(), vase()})
	require.NoError(t, err)
	assert.Len(t, created, 2)
	require.Len(t, repo.bulk, 1)
	for _, p := range repo.bulk[0] {
		assert.Equal(t, "ana", p.ArtistID)
	}
}
