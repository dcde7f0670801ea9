package profile

import (
	"context"
	"errors"
	"fmt"

	"artisanhub/internal/domain"
	"artisanhub/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	cipher Cipher
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, cipher Cipher, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, cipher: cipher, logger: logging.OrNop(logger).Named("profile_repo")}
}

func (r *postgresRepo) Get(ctx context.Context, principal string) (*domain.UserProfile, error) {
	q := `
SELECT name, email, bio, payment_api_key_sealed, terms_accepted, privacy_policy_accepted
FROM user_profiles WHERE principal = $1`
	var (
		p      domain.UserProfile
		sealed []byte
	)
	err := r.pool.QueryRow(ctx, q, principal).Scan(&p.Name, &p.Email, &p.Bio, &sealed, &p.TermsAccepted, &p.PrivacyPolicyAccepted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("get profile", zap.String("principal", principal), zap.Error(err))
		return nil, err
	}
	if len(sealed) > 0 {
		plain, err := r.cipher.Open(sealed)
		if err != nil {
			r.logger.Error("open payment api key", zap.String("principal", principal), zap.Error(err))
			return nil, fmt.Errorf("open payment api key: %w", err)
		}
		key := string(plain)
		p.PaymentAPIKey = &key
	}
	return &p, nil
}

func (r *postgresRepo) Save(ctx context.Context, principal string, p domain.UserProfile) error {
	var sealed []byte
	if p.HasPaymentAPIKey() {
		var err error
		sealed, err = r.cipher.Seal([]byte(*p.PaymentAPIKey))
		if err != nil {
			return fmt.Errorf("seal payment api key: %w", err)
		}
	}
	q := `
INSERT INTO user_profiles (principal, name, email, bio, payment_api_key_sealed, terms_accepted, privacy_policy_accepted)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (principal) DO UPDATE SET
    name = EXCLUDED.name,
    email = EXCLUDED.email,
    bio = EXCLUDED.bio,
    payment_api_key_sealed = EXCLUDED.payment_api_key_sealed,
    terms_accepted = EXCLUDED.terms_accepted,
    privacy_policy_accepted = EXCLUDED.privacy_policy_accepted,
    updated_at = now()`
	if _, err := r.pool.Exec(ctx, q, principal, p.Name, p.Email, p.Bio, sealed, p.TermsAccepted, p.PrivacyPolicyAccepted); err != nil {
		r.logger.Error("save profile", zap.String("principal", principal), zap.Error(err))
		return err
	}
	r.logger.Info("saved profile", zap.String("principal", principal))
	return nil
}

func (r *postgresRepo) GetRole(ctx context.Context, principal string) (domain.Role, bool, error) {
	var role string
	err := r.pool.QueryRow(ctx, `SELECT role FROM user_roles WHERE principal = $1`, principal).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		r.logger.Error("get role", zap.String("principal", principal), zap.Error(err))
		return "", false, err
	}
	return domain.Role(role), true, nil
}

func (r *postgresRepo) SetRole(ctx context.Context, principal string, role domain.Role) error {
	q := `
INSERT INTO user_roles (principal, role) VALUES ($1, $2)
ON CONFLICT (principal) DO UPDATE SET role = EXCLUDED.role`
	if _, err := r.pool.Exec(ctx, q, principal, string(role)); err != nil {
		r.logger.Error("set role", zap.String("principal", principal), zap.Error(err))
		return err
	}
	r.logger.Info("assigned role", zap.String("principal", principal), zap.String("role", string(role)))
	return nil
}
