package platform

import (
	"context"
	"regexp"
	"strings"

	"artisanhub/internal/domain"
	"artisanhub/internal/events"
	"artisanhub/internal/logging"
	"artisanhub/internal/money"
	platformrepo "artisanhub/internal/repository/platform"
	"go.uber.org/zap"
)

var countryCode = regexp.MustCompile(`^[A-Z]{2}$`)

type Service struct {
	repo      platformrepo.Repository
	publisher events.Publisher
	logger    *zap.Logger
}

func New(repo platformrepo.Repository, publisher events.Publisher, logger *zap.Logger) *Service {
	return &Service{repo: repo, publisher: publisher, logger: logging.OrNop(logger).Named("platform_service")}
}

func (s *Service) CommissionRate(ctx context.Context) (int, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return 0, err
	}
	return settings.CommissionRate, nil
}

func (s *Service) SetCommissionRate(ctx context.Context, caller domain.Caller, rate int) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := domain.ValidateCommissionRate(rate); err != nil {
		return err
	}
	if err := s.repo.SetCommission(ctx, rate); err != nil {
		return err
	}
	events.Emit(ctx, s.publisher, s.logger, events.New(events.CommissionChanged, "platform", map[string]int{"rate": rate}))
	return nil
}

func (s *Service) IsPaymentConfigured(ctx context.Context) (bool, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return false, err
	}
	return settings.Payment != nil && settings.Payment.SecretKey != "", nil
}

// PaymentConfiguration returns the stored configuration or domain.ErrPaymentNotConfigured.
func (s *Service) PaymentConfiguration(ctx context.Context) (*domain.PaymentConfiguration, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings.Payment == nil || settings.Payment.SecretKey == "" {
		return nil, domain.ErrPaymentNotConfigured
	}
	return settings.Payment, nil
}

func (s *Service) SetPaymentConfiguration(ctx context.Context, caller domain.Caller, cfg domain.PaymentConfiguration) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	cfg.SecretKey = strings.TrimSpace(cfg.SecretKey)
	if cfg.SecretKey == "" {
		return domain.Invalid("secretKey", "required")
	}
	countries := make([]string, 0, len(cfg.AllowedCountries))
	seen := map[string]bool{}
	for _, c := range cfg.AllowedCountries {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		if !countryCode.MatchString(c) {
			return domain.Invalid("allowedCountries", "country codes must be two letters, got "+c)
		}
		seen[c] = true
		countries = append(countries, c)
	}
	cfg.AllowedCountries = countries
	if err := s.repo.SetPayment(ctx, cfg); err != nil {
		return err
	}
	s.logger.Info("payment configuration updated", zap.String("by", caller.Principal), zap.Int("countries", len(countries)))
	return nil
}

// PayoutAccount returns the admin payout account id; nil when unset.
func (s *Service) PayoutAccount(ctx context.Context, caller domain.Caller) (*string, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return settings.PayoutAccountID, nil
}

func (s *Service) SetPayoutAccount(ctx context.Context, caller domain.Caller, accountID string) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := domain.ValidatePaymentAccountID(accountID); err != nil {
		return err
	}
	return s.repo.SetPayoutAccount(ctx, strings.TrimSpace(accountID))
}

// Revenue splits amountCents at the current commission rate.
func (s *Service) Revenue(ctx context.Context, amountCents int64) (domain.Breakdown, error) {
	if amountCents < 0 {
		return domain.Breakdown{}, domain.Invalid("amount", "must not be negative")
	}
	rate, err := s.CommissionRate(ctx)
	if err != nil {
		return domain.Breakdown{}, err
	}
	return money.Revenue(amountCents, rate), nil
}
