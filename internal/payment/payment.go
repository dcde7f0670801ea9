// Package payment creates and reads hosted checkout sessions.
package payment

import (
	"context"
	"fmt"
	"strings"

	"artisanhub/internal/domain"
	"artisanhub/internal/logging"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// SessionRequest describes a checkout session. SuccessURL may contain the provider's
// {CHECKOUT_SESSION_ID} placeholder.
type SessionRequest struct {
	Items            []domain.ShoppingItem
	SuccessURL       string
	CancelURL        string
	AllowedCountries []string
	ClientReference  string
}

// Gateway talks to the payment provider with the platform secret key configured at runtime.
type Gateway interface {
	CreateSession(ctx context.Context, secretKey string, req SessionRequest) (*domain.CheckoutSession, error)
	SessionStatus(ctx context.Context, secretKey, sessionID string) (*domain.SessionStatus, error)
}

// Stripe is a Gateway backed by Stripe Checkout.
type Stripe struct {
	backends *stripe.Backends
	logger   *zap.Logger
}

func NewStripe(logger *zap.Logger) *Stripe {
	return &Stripe{logger: logging.OrNop(logger).Named("stripe")}
}

// NewStripeWithBackends points the gateway at custom API backends.
func NewStripeWithBackends(backends *stripe.Backends, logger *zap.Logger) *Stripe {
	s := NewStripe(logger)
	s.backends = backends
	return s
}

func (s *Stripe) CreateSession(ctx context.Context, secretKey string, req SessionRequest) (*domain.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems:  lineItems(req.Items),
	}
	params.Context = ctx
	if req.ClientReference != "" {
		params.ClientReferenceID = stripe.String(req.ClientReference)
	}
	if len(req.AllowedCountries) > 0 {
		params.ShippingAddressCollection = &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(req.AllowedCountries),
		}
	}

	sess, err := client.New(secretKey, s.backends).CheckoutSessions.New(params)
	if err != nil {
		s.logger.Error("create checkout session", zap.Int("items", len(req.Items)), zap.Error(err))
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	s.logger.Info("created checkout session", zap.String("session_id", sess.ID))
	return &domain.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (s *Stripe) SessionStatus(ctx context.Context, secretKey, sessionID string) (*domain.SessionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := client.New(secretKey, s.backends).CheckoutSessions.Get(sessionID, params)
	if err != nil {
		s.logger.Warn("get checkout session", zap.String("session_id", sessionID), zap.Error(err))
		return nil, fmt.Errorf("get checkout session: %w", err)
	}
	st := statusOf(sess)
	return &st, nil
}

func lineItems(items []domain.ShoppingItem) []*stripe.CheckoutSessionLineItemParams {
	out := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, it := range items {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(it.ProductName),
		}
		// Stripe rejects empty descriptions.
		if d := strings.TrimSpace(it.ProductDescription); d != "" {
			product.Description = stripe.String(d)
		}
		out = append(out, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(strings.ToLower(it.Currency)),
				UnitAmount:  stripe.Int64(it.PriceCents),
				ProductData: product,
			},
			Quantity: stripe.Int64(it.Quantity),
		})
	}
	return out
}

func statusOf(sess *stripe.CheckoutSession) domain.SessionStatus {
	paid := sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid ||
		sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusNoPaymentRequired
	if sess.Status == stripe.CheckoutSessionStatusComplete && paid {
		st := domain.SessionStatus{Kind: domain.SessionCompleted, Response: string(sess.PaymentStatus)}
		if sess.ClientReferenceID != "" {
			ref := sess.ClientReferenceID
			st.UserPrincipal = &ref
		}
		return st
	}
	return domain.SessionStatus{
		Kind:  domain.SessionFailed,
		Error: fmt.Sprintf("session %s, payment %s", sess.Status, sess.PaymentStatus),
	}
}

// Disabled refuses every call. Used when no payment provider is configured.
type Disabled struct{}

func (Disabled) CreateSession(context.Context, string, SessionRequest) (*domain.CheckoutSession, error) {
	return nil, domain.ErrPaymentNotConfigured
}

func (Disabled) SessionStatus(context.Context, string, string) (*domain.SessionStatus, error) {
	return nil, domain.ErrPaymentNotConfigured
}
