package artist

import (
	"context"
	"testing"

	"artisanhub/internal/domain"
	"artisanhub/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	artists map[string]domain.ArtistProfile
}

func (s *stubRepo) Create(_ context.Context, a domain.ArtistProfile) (*domain.ArtistProfile, error) {
	if _, ok := s.artists[a.ID]; ok {
		return nil, domain.ErrAlreadyExists
	}
	a.IsActive = true
	s.artists[a.ID] = a
	return &a, nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*domain.ArtistProfile, error) {
	a, ok := s.artists[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (s *stubRepo) List(context.Context) ([]domain.ArtistProfile, error) {
	out := []domain.ArtistProfile{}
	for _, a := range s.artists {
		out = append(out, a)
	}
	return out, nil
}

func (s *stubRepo) SetActive(_ context.Context, id string, active bool) (*domain.ArtistProfile, error) {
	a, ok := s.artists[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.IsActive = active
	s.artists[id] = a
	return &a, nil
}

func (s *stubRepo) SetPaymentAccount(_ context.Context, id, accountID string) (*domain.ArtistProfile, error) {
	a, ok := s.artists[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.PaymentAccountID = &accountID
	s.artists[id] = a
	return &a, nil
}

type consentStub map[string]bool

func (c consentStub) RequireConsent(_ context.Context, principal string) error {
	if !c[principal] {
		return domain.ErrConsentRequired
	}
	return nil
}

type recorder struct{ events []events.Event }

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) Close() error { return nil }

func TestRegister(t *testing.T) {
	repo := &stubRepo{artists: map[string]domain.ArtistProfile{}}
	rec := &recorder{}
	svc := New(repo, consentStub{"ana": true}, rec, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.Caller{Principal: "bob"}, "Bob", "bob@example.com")
	assert.ErrorIs(t, err, domain.ErrConsentRequired)

	_, err = svc.Register(ctx, domain.Caller{}, "Bob", "bob@example.com")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.Register(ctx, domain.Caller{Principal: "ana"}, "Ana", "Ana <ana@example.com>")
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, repo.artists)

	a, err := svc.Register(ctx, domain.Caller{Principal: "ana"}, " Ana ", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ana", a.ID)
	assert.Equal(t, "Ana", a.Name)
	require.Len(t, rec.events, 1)
	assert.Equal(t, events.ArtistRegistered, rec.events[0].Type)

	_, err = svc.Register(ctx, domain.Caller{Principal: "ana"}, "Ana", "ana@example.com")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestSetActive_AdminOnly(t *testing.T) {
	repo := &stubRepo{artists: map[string]domain.ArtistProfile{"ana": {ID: "ana", IsActive: true}}}
	svc := New(repo, consentStub{}, events.Noop{}, nil)
	ctx := context.Background()

	_, err := svc.SetActive(ctx, domain.Caller{Principal: "ana", Role: domain.RoleUser}, "ana", false)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	a, err := svc.SetActive(ctx, domain.Caller{Principal: "root", Role: domain.RoleAdmin}, "ana", false)
	require.NoError(t, err)
	assert.False(t, a.IsActive)
}

func TestSetPaymentAccount(t *testing.T) {
	repo := &stubRepo{artists: map[string]domain.ArtistProfile{"ana": {ID: "ana"}}}
	svc := New(repo, consentStub{}, nil, nil)
	ctx := context.Background()
	ana := domain.Caller{Principal: "ana", Role: domain.RoleUser}

	_, err := svc.SetPaymentAccount(ctx, domain.Caller{Principal: "bob", Role: domain.RoleUser}, "ana", "acct_1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.SetPaymentAccount(ctx, ana, "ana", "ba_1")
	assert.True(t, domain.IsValidation(err))

	a, err := svc.SetPaymentAccount(ctx, ana, "ana", " acct_1 ")
	require.NoError(t, err)
	assert.Equal(t, "acct_1", *a.PaymentAccountID)
}
