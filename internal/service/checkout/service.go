package checkout

import (
	"context"
	"strings"

	"artisanhub/internal/domain"
	"artisanhub/internal/events"
	"artisanhub/internal/logging"
	"artisanhub/internal/payment"
	"go.uber.org/zap"
)

// PaymentSettings exposes the platform payment configuration.
type PaymentSettings interface {
	PaymentConfiguration(ctx context.Context) (*domain.PaymentConfiguration, error)
}

type Service struct {
	settings  PaymentSettings
	gateway   payment.Gateway
	publisher events.Publisher
	baseURL   string
	logger    *zap.Logger
}

// New builds the service. baseURL is the public UI origin the provider redirects back to.
func New(settings PaymentSettings, gateway payment.Gateway, publisher events.Publisher, baseURL string, logger *zap.Logger) *Service {
	return &Service{
		settings:  settings,
		gateway:   gateway,
		publisher: publisher,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logging.OrNop(logger).Named("checkout_service"),
	}
}

// SuccessURL is where the provider sends the buyer after paying.
func (s *Service) SuccessURL() string {
	return s.baseURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}"
}

// CancelURL is where the provider sends the buyer after abandoning payment.
func (s *Service) CancelURL() string {
	return s.baseURL + "/payment-failure"
}

func (s *Service) CreateSession(ctx context.Context, caller domain.Caller, items []domain.ShoppingItem) (*domain.CheckoutSession, error) {
	if err := domain.ValidateItems(items); err != nil {
		return nil, err
	}
	cfg, err := s.settings.PaymentConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	sess, err := s.gateway.CreateSession(ctx, cfg.SecretKey, payment.SessionRequest{
		Items:            items,
		SuccessURL:       s.SuccessURL(),
		CancelURL:        s.CancelURL(),
		AllowedCountries: cfg.AllowedCountries,
		ClientReference:  caller.Principal,
	})
	if err != nil {
		return nil, err
	}

	var total int64
	for _, it := range items {
		total += it.PriceCents * it.Quantity
	}
	s.logger.Info("checkout session created", zap.String("session_id", sess.ID), zap.Int64("total_cents", total))
	events.Emit(ctx, s.publisher, s.logger, events.New(events.CheckoutSessionCreated, sess.ID, map[string]any{
		"items":      items,
		"totalCents": total,
		"principal":  caller.Principal,
	}))
	return sess, nil
}

func (s *Service) SessionStatus(ctx context.Context, sessionID string) (*domain.SessionStatus, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, domain.Invalid("sessionId", "required")
	}
	cfg, err := s.settings.PaymentConfiguration(ctx)
	if err != nil {
		return nil, err
	}
	return s.gateway.SessionStatus(ctx, cfg.SecretKey, sessionID)
}
