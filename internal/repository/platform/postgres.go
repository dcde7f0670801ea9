package platform

import (
	"context"
	"fmt"

	"artisanhub/internal/domain"
	"artisanhub/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	cipher Cipher
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, cipher Cipher, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, cipher: cipher, logger: logging.OrNop(logger).Named("platform_repo")}
}

func (r *postgresRepo) Get(ctx context.Context) (*Settings, error) {
	var (
		s         Settings
		sealed    []byte
		countries []string
	)
	q := `SELECT commission_rate, payment_secret_sealed, allowed_countries, payout_account_id FROM platform_settings WHERE id = 1`
	if err := r.pool.QueryRow(ctx, q).Scan(&s.CommissionRate, &sealed, &countries, &s.PayoutAccountID); err != nil {
		r.logger.Error("get platform settings", zap.Error(err))
		return nil, err
	}
	if len(sealed) > 0 {
		plain, err := r.cipher.Open(sealed)
		if err != nil {
			return nil, fmt.Errorf("open payment secret: %w", err)
		}
		if countries == nil {
			countries = []string{}
		}
		s.Payment = &domain.PaymentConfiguration{SecretKey: string(plain), AllowedCountries: countries}
	}
	return &s, nil
}

func (r *postgresRepo) SetCommission(ctx context.Context, rate int) error {
	if _, err := r.pool.Exec(ctx, `UPDATE platform_settings SET commission_rate = $1, updated_at = now() WHERE id = 1`, rate); err != nil {
		r.logger.Error("set commission", zap.Int("rate", rate), zap.Error(err))
		return err
	}
	r.logger.Info("set commission", zap.Int("rate", rate))
	return nil
}

func (r *postgresRepo) SetPayment(ctx context.Context, cfg domain.PaymentConfiguration) error {
	sealed, err := r.cipher.Seal([]byte(cfg.SecretKey))
	if err != nil {
		return fmt.Errorf("seal payment secret: %w", err)
	}
	countries := cfg.AllowedCountries
	if countries == nil {
		countries = []string{}
	}
	q := `UPDATE platform_settings SET payment_secret_sealed = $1, allowed_countries = $2, updated_at = now() WHERE id = 1`
	if _, err := r.pool.Exec(ctx, q, sealed, countries); err != nil {
		r.logger.Error("set payment configuration", zap.Error(err))
		return err
	}
	r.logger.Info("set payment configuration", zap.Strings("allowed_countries", countries))
	return nil
}

func (r *postgresRepo) SetPayoutAccount(ctx context.Context, accountID string) error {
	if _, err := r.pool.Exec(ctx, `UPDATE platform_settings SET payout_account_id = $1, updated_at = now() WHERE id = 1`, accountID); err != nil {
		r.logger.Error("set payout account", zap.Error(err))
		return err
	}
	r.logger.Info("set payout account")
	return nil
}
