package session

import (
	"context"
	"errors"
	"fmt"

	"artisanhub/internal/access"
	"artisanhub/internal/compose"
	"artisanhub/internal/domain"
)

// ErrCheckoutDisabled is returned when payment readiness is not met.
var ErrCheckoutDisabled = errors.New("checkout disabled")

// AdminGate resolves a gate for an admin-only page from the caller's role.
func (s *Session) AdminGate(ctx context.Context) (*access.Gate, error) {
	g := access.NewGate()
	role, err := s.CallerRole(ctx)
	if err != nil {
		return g, err
	}
	g.Resolve(role)
	return g, nil
}

// AdminOverview is the admin dashboard content.
type AdminOverview struct {
	CommissionRate    int
	PaymentConfigured bool
	PayoutAccount     *string
	Artists           []domain.ArtistProfile
}

// AdminDashboard loads the dashboard, or returns the redirect target for non-admins.
func (s *Session) AdminDashboard(ctx context.Context) (*AdminOverview, string, error) {
	g, err := s.AdminGate(ctx)
	if err != nil {
		return nil, "", err
	}
	if target, ok := g.Redirect(); ok {
		return nil, target, nil
	}

	var out AdminOverview
	if out.CommissionRate, err = s.CommissionRate(ctx); err != nil {
		return nil, "", err
	}
	if out.PaymentConfigured, err = s.PaymentConfigured(ctx); err != nil {
		return nil, "", err
	}
	if out.PayoutAccount, err = s.AdminPaymentAccount(ctx); err != nil {
		return nil, "", err
	}
	if out.Artists, err = s.Artists(ctx); err != nil {
		return nil, "", err
	}
	return &out, "", nil
}

// Revenue is the admin revenue page for a sale amount.
func (s *Session) Revenue(ctx context.Context, amountCents int64) (*domain.Breakdown, string, error) {
	g, err := s.AdminGate(ctx)
	if err != nil {
		return nil, "", err
	}
	if target, ok := g.Redirect(); ok {
		return nil, target, nil
	}
	b, err := s.api.GetRevenue(ctx, amountCents)
	return b, "", err
}

// StorefrontReadiness is the buyer-side predicate for an artist's listings.
func (s *Session) StorefrontReadiness(ctx context.Context, artistID string) (access.Readiness, error) {
	var r access.Readiness
	configured, err := s.PaymentConfigured(ctx)
	if err != nil {
		return r, err
	}
	r.PlatformConfigured = configured

	artist, err := s.Artist(ctx, artistID)
	if err != nil {
		return r, err
	}
	r.ArtistAccountID = artist != nil && artist.HasPaymentAccount()
	return r, nil
}

// DashboardReadiness is the predicate shown to the artist, who may also rely
// on the API key stored in their own profile.
func (s *Session) DashboardReadiness(ctx context.Context, artistID string) (access.Readiness, error) {
	r, err := s.StorefrontReadiness(ctx, artistID)
	if err != nil {
		return r, err
	}
	profile, err := s.CallerProfile(ctx)
	if err != nil {
		return r, err
	}
	r.ArtistAPIKey = profile != nil && profile.HasPaymentAPIKey()
	return r, nil
}

// Checkout starts a payment session for items sold by artistID.
func (s *Session) Checkout(ctx context.Context, artistID string, items []domain.ShoppingItem) (*domain.CheckoutSession, error) {
	if err := domain.ValidateItems(items); err != nil {
		return nil, err
	}
	r, err := s.StorefrontReadiness(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if !r.Ready() {
		return nil, fmt.Errorf("%w: %s", ErrCheckoutDisabled, r.Reason())
	}
	return s.api.CreateCheckoutSession(ctx, items)
}

// BuyItem is the line item for quantity units of p.
func BuyItem(p domain.Product, quantity int64) domain.ShoppingItem {
	return domain.ShoppingItem{
		ProductName:        p.Name,
		ProductDescription: p.Description,
		PriceCents:         p.PriceCents,
		Quantity:           quantity,
		Currency:           domain.DefaultCurrency,
	}
}

// Donate checks out a donation product. An empty amount uses the suggested one.
func (s *Session) Donate(ctx context.Context, p domain.Product, amount string) (*domain.CheckoutSession, error) {
	if !p.IsDonation() {
		return nil, domain.Invalid("productType", "not a donation")
	}
	item := BuyItem(p, 1)
	if amount != "" {
		cents, err := compose.DonationAmount(amount)
		if err != nil {
			return nil, err
		}
		item.PriceCents = cents
	}
	return s.Checkout(ctx, p.ArtistID, []domain.ShoppingItem{item})
}

// SessionStatus reads the outcome for the payment-success page.
func (s *Session) SessionStatus(ctx context.Context, sessionID string) (*domain.SessionStatus, error) {
	return s.api.GetSessionStatus(ctx, sessionID)
}
