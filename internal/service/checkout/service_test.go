package checkout

import (
	"context"
	"testing"

	"artisanhub/internal/domain"
	"artisanhub/internal/events"
	"artisanhub/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settingsStub struct {
	cfg *domain.PaymentConfiguration
}

func (s settingsStub) PaymentConfiguration(context.Context) (*domain.PaymentConfiguration, error) {
	if s.cfg == nil {
		return nil, domain.ErrPaymentNotConfigured
	}
	return s.cfg, nil
}

type gatewayStub struct {
	calls   int
	lastKey string
	lastReq payment.SessionRequest
}

func (g *gatewayStub) CreateSession(_ context.Context, key string, req payment.SessionRequest) (*domain.CheckoutSession, error) {
	g.calls++
	g.lastKey = key
	g.lastReq = req
	return &domain.CheckoutSession{ID: "cs_1", URL: "https://pay.example/cs_1"}, nil
}

func (g *gatewayStub) SessionStatus(_ context.Context, _, id string) (*domain.SessionStatus, error) {
	return &domain.SessionStatus{Kind: domain.SessionCompleted, Response: "paid"}, nil
}

type recorder struct{ events []events.Event }

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) Close() error { return nil }

var item = domain.ShoppingItem{ProductName: "Vase", PriceCents: 1250, Quantity: 2, Currency: "usd"}

func TestCreateSession(t *testing.T) {
	gw := &gatewayStub{}
	rec := &recorder{}
	cfg := &domain.PaymentConfiguration{SecretKey: "sk_test", AllowedCountries: []string{"US"}}
	svc := New(settingsStub{cfg: cfg}, gw, rec, "https://shop.example/", nil)

	sess, err := svc.CreateSession(context.Background(), domain.Caller{Principal: "buyer"}, []domain.ShoppingItem{item})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/cs_1", sess.URL)

	assert.Equal(t, "sk_test", gw.lastKey)
	assert.Equal(t, "https://shop.example/payment-success?session_id={CHECKOUT_SESSION_ID}", gw.lastReq.SuccessURL)
	assert.Equal(t, "https://shop.example/payment-failure", gw.lastReq.CancelURL)
	assert.Equal(t, "buyer", gw.lastReq.ClientReference)
	assert.Equal(t, []string{"US"}, gw.lastReq.AllowedCountries)

	require.Len(t, rec.events, 1)
	assert.Equal(t, events.CheckoutSessionCreated, rec.events[0].Type)
	assert.Equal(t, "cs_1", rec.events[0].Key)
}

func TestCreateSession_Rejections(t *testing.T) {
	gw := &gatewayStub{}
	ctx := context.Background()

	svc := New(settingsStub{}, gw, nil, "https://shop.example", nil)
	_, err := svc.CreateSession(ctx, domain.Caller{}, []domain.ShoppingItem{item})
	assert.ErrorIs(t, err, domain.ErrPaymentNotConfigured)

	svc = New(settingsStub{cfg: &domain.PaymentConfiguration{SecretKey: "sk"}}, gw, nil, "https://shop.example", nil)
	_, err = svc.CreateSession(ctx, domain.Caller{}, nil)
	assert.True(t, domain.IsValidation(err))

	zero := item
	zero.Quantity = 0
	_, err = svc.CreateSession(ctx, domain.Caller{}, []domain.ShoppingItem{zero})
	assert.True(t, domain.IsValidation(err))

	assert.Zero(t, gw.calls, "gateway must not be called for rejected requests")
}

func TestSessionStatus(t *testing.T) {
	svc := New(settingsStub{cfg: &domain.PaymentConfiguration{SecretKey: "sk"}}, &gatewayStub{}, nil, "https://shop.example", nil)

	st, err := svc.SessionStatus(context.Background(), "cs_1")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, st.Kind)

	_, err = svc.SessionStatus(context.Background(), " ")
	assert.True(t, domain.IsValidation(err))
}
