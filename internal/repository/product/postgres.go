package product

import (
	"context"
	"errors"
	"fmt"

	"artisanhub/internal/db"
	"artisanhub/internal/domain"
	"artisanhub/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const productColumns = `id, artist_id, name, description, category_name, price_cents, product_type, image_urls, video_url, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger).Named("product_repo")}
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *postgresRepo) ListByArtist(ctx context.Context, artistID string) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE artist_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, artistID)
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...any) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("list products rows", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("listed products", zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("get product", zap.String("product_id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	created, err := insertProduct(ctx, r.pool, p)
	if err != nil {
		r.logger.Warn("create product", zap.String("artist_id", p.ArtistID), zap.Error(err))
		return nil, err
	}
	r.logger.Info("created product", zap.String("product_id", created.ID), zap.String("artist_id", created.ArtistID))
	return created, nil
}

// CreateBulk inserts all products in one transaction; any failure leaves nothing persisted.
func (r *postgresRepo) CreateBulk(ctx context.Context, ps []domain.Product) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(ps))
	err := db.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		for i, p := range ps {
			created, err := insertProduct(ctx, tx, p)
			if err != nil {
				return fmt.Errorf("product %d: %w", i, err)
			}
			out = append(out, *created)
		}
		return nil
	})
	if err != nil {
		r.logger.Warn("bulk create products", zap.Int("count", len(ps)), zap.Error(err))
		return nil, err
	}
	r.logger.Info("bulk created products", zap.Int("count", len(out)))
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	q := `
UPDATE products SET
    name = $2,
    description = $3,
    category_name = $4,
    price_cents = $5,
    image_urls = $6,
    video_url = $7,
    updated_at = now()
WHERE id = $1
RETURNING ` + productColumns
	updated, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.ID, p.Name, p.Description, p.CategoryName, p.PriceCents, nonNil(p.ImageURLs), p.VideoURL,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("update product", zap.String("product_id", p.ID), zap.Error(err))
		return nil, err
	}
	r.logger.Info("updated product", zap.String("product_id", p.ID))
	return updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("delete product", zap.String("product_id", id), zap.Error(err))
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Info("deleted product", zap.String("product_id", id))
	return nil
}

func insertProduct(ctx context.Context, q queryRower, p domain.Product) (*domain.Product, error) {
	sql := `
INSERT INTO products (id, artist_id, name, description, category_name, price_cents, product_type, image_urls, video_url)
VALUES (COALESCE(NULLIF($1, ''), gen_random_uuid()::text), $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + productColumns
	created, err := scanProduct(q.QueryRow(ctx, sql,
		p.ID, p.ArtistID, p.Name, p.Description, p.CategoryName, p.PriceCents, string(p.Type), nonNil(p.ImageURLs), p.VideoURL,
	))
	if err != nil {
		return nil, mapPgError(err)
	}
	return created, nil
}

func scanProduct(row scanner) (*domain.Product, error) {
	var (
		p        domain.Product
		typ      string
		videoURL *string
	)
	if err := row.Scan(&p.ID, &p.ArtistID, &p.Name, &p.Description, &p.CategoryName, &p.PriceCents, &typ, &p.ImageURLs, &videoURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Type = domain.ProductType(typ)
	p.VideoURL = videoURL
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
	return &p, nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return domain.ErrAlreadyExists
		case "23503":
			return fmt.Errorf("artist: %w", domain.ErrNotFound)
		}
	}
	return err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
