package artist

import (
	"context"
	"errors"

	"artisanhub/internal/domain"
	"artisanhub/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const artistColumns = `id, name, email, is_active, payment_account_id, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger).Named("artist_repo")}
}

func (r *postgresRepo) Create(ctx context.Context, a domain.ArtistProfile) (*domain.ArtistProfile, error) {
	q := `
INSERT INTO artists (id, name, email, is_active)
VALUES ($1, $2, $3, TRUE)
RETURNING ` + artistColumns
	created, err := scanArtist(r.pool.QueryRow(ctx, q, a.ID, a.Name, a.Email))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Error("create artist", zap.String("artist_id", a.ID), zap.Error(err))
		return nil, err
	}
	r.logger.Info("registered artist", zap.String("artist_id", created.ID))
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.ArtistProfile, error) {
	a, err := scanArtist(r.pool.QueryRow(ctx, `SELECT `+artistColumns+` FROM artists WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("get artist", zap.String("artist_id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.ArtistProfile, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+artistColumns+` FROM artists ORDER BY created_at, id`)
	if err != nil {
		r.logger.Error("list artists", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.ArtistProfile{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}

func (r *postgresRepo) SetActive(ctx context.Context, id string, active bool) (*domain.ArtistProfile, error) {
	q := `UPDATE artists SET is_active = $2 WHERE id = $1 RETURNING ` + artistColumns
	return r.update(ctx, "set artist active", id, q, id, active)
}

func (r *postgresRepo) SetPaymentAccount(ctx context.Context, id, accountID string) (*domain.ArtistProfile, error) {
	q := `UPDATE artists SET payment_account_id = $2 WHERE id = $1 RETURNING ` + artistColumns
	return r.update(ctx, "set artist payment account", id, q, id, accountID)
}

func (r *postgresRepo) update(ctx context.Context, op, id, q string, args ...any) (*domain.ArtistProfile, error) {
	a, err := scanArtist(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error(op, zap.String("artist_id", id), zap.Error(err))
		return nil, err
	}
	r.logger.Info(op, zap.String("artist_id", id))
	return a, nil
}

func scanArtist(row pgx.Row) (*domain.ArtistProfile, error) {
	var a domain.ArtistProfile
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.IsActive, &a.PaymentAccountID, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
