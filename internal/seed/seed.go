package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"

	"artisanhub/internal/db"
	"artisanhub/internal/domain"
	"artisanhub/internal/money"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures is the seed file layout.
type Fixtures struct {
	CommissionRate *int              `yaml:"commissionRate"`
	Roles          map[string]string `yaml:"roles"`
	Artists        []ArtistFixture   `yaml:"artists"`
}

type ArtistFixture struct {
	ID               string           `yaml:"id"`
	Name             string           `yaml:"name"`
	Email            string           `yaml:"email"`
	PaymentAccountID string           `yaml:"paymentAccountId"`
	Store            *StoreFixture    `yaml:"store"`
	Products         []ProductFixture `yaml:"products"`
}

type StoreFixture struct {
	StoreName   string            `yaml:"storeName"`
	StoreBio    string            `yaml:"storeBio"`
	BannerImage string            `yaml:"bannerImage"`
	SocialLinks map[string]string `yaml:"socialLinks"`
}

type ProductFixture struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Price       string   `yaml:"price"`
	Type        string   `yaml:"type"`
	Images      []string `yaml:"images"`
}

// Default returns the embedded demo fixtures.
func Default() (*Fixtures, error) {
	return Parse(bytes.NewReader(defaultFixtures))
}

// Parse decodes and checks a fixture document.
func Parse(r io.Reader) (*Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fixtures) validate() error {
	if f.CommissionRate != nil {
		if err := domain.ValidateCommissionRate(*f.CommissionRate); err != nil {
			return err
		}
	}
	for principal, role := range f.Roles {
		if !domain.Role(role).Valid() {
			return fmt.Errorf("role of %s: unknown role %q", principal, role)
		}
	}
	seen := map[string]bool{}
	for _, a := range f.Artists {
		if a.ID == "" || a.Name == "" {
			return fmt.Errorf("artist fixture needs id and name")
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate artist %s", a.ID)
		}
		seen[a.ID] = true
		if a.PaymentAccountID != "" {
			if err := domain.ValidatePaymentAccountID(a.PaymentAccountID); err != nil {
				return fmt.Errorf("artist %s: %w", a.ID, err)
			}
		}
		for i := range a.Products {
			if _, err := a.Products[i].toDomain(a.ID, i); err != nil {
				return fmt.Errorf("artist %s product %d: %w", a.ID, i, err)
			}
		}
	}
	return nil
}

// toDomain builds the product with a stable id so reseeding updates in place.
func (p ProductFixture) toDomain(artistID string, idx int) (domain.Product, error) {
	typ := domain.ProductType(p.Type)
	if typ == "" {
		typ = domain.ProductTypeProduct
	}
	if !typ.Valid() {
		return domain.Product{}, fmt.Errorf("unknown type %q", p.Type)
	}
	parse := money.ParsePrice
	if typ == domain.ProductTypeDonation {
		parse = money.ParseDonation
	}
	cents, err := parse(p.Price)
	if err != nil {
		return domain.Product{}, err
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return domain.Product{
		ID:           fmt.Sprintf("seed-%s-%d", artistID, idx),
		ArtistID:     artistID,
		Name:         p.Name,
		Description:  p.Description,
		CategoryName: p.Category,
		PriceCents:   cents,
		Type:         typ,
		ImageURLs:    images,
	}, nil
}

// Apply writes the fixtures in one transaction. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool, f *Fixtures) error {
	return db.InTx(ctx, pool, func(tx pgx.Tx) error {
		if f.CommissionRate != nil {
			if _, err := tx.Exec(ctx, `UPDATE platform_settings SET commission_rate = $1 WHERE id = 1`, *f.CommissionRate); err != nil {
				return fmt.Errorf("set commission: %w", err)
			}
		}
		for principal, role := range f.Roles {
			const q = `INSERT INTO user_roles (principal, role) VALUES ($1, $2) ON CONFLICT (principal) DO UPDATE SET role = EXCLUDED.role`
			if _, err := tx.Exec(ctx, q, principal, role); err != nil {
				return fmt.Errorf("role %s: %w", principal, err)
			}
		}
		for _, a := range f.Artists {
			if err := upsertArtist(ctx, tx, a); err != nil {
				return fmt.Errorf("artist %s: %w", a.ID, err)
			}
		}
		return nil
	})
}

func upsertArtist(ctx context.Context, tx pgx.Tx, a ArtistFixture) error {
	var account *string
	if a.PaymentAccountID != "" {
		account = &a.PaymentAccountID
	}
	const q = `
INSERT INTO artists (id, name, email, payment_account_id)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    email = EXCLUDED.email,
    payment_account_id = EXCLUDED.payment_account_id
`
	if _, err := tx.Exec(ctx, q, a.ID, a.Name, a.Email, account); err != nil {
		return err
	}

	if a.Store != nil {
		if err := upsertStore(ctx, tx, a.ID, *a.Store); err != nil {
			return fmt.Errorf("store: %w", err)
		}
	}

	for i, pf := range a.Products {
		p, err := pf.toDomain(a.ID, i)
		if err != nil {
			return err
		}
		const pq = `
INSERT INTO products (id, artist_id, name, description, category_name, price_cents, product_type, image_urls)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    category_name = EXCLUDED.category_name,
    price_cents = EXCLUDED.price_cents,
    image_urls = EXCLUDED.image_urls,
    updated_at = now()
`
		if _, err := tx.Exec(ctx, pq, p.ID, p.ArtistID, p.Name, p.Description, p.CategoryName, p.PriceCents, string(p.Type), p.ImageURLs); err != nil {
			return fmt.Errorf("product %s: %w", p.ID, err)
		}
	}
	return nil
}

func upsertStore(ctx context.Context, tx pgx.Tx, artistID string, s StoreFixture) error {
	links, err := socialLinksJSON(s.SocialLinks)
	if err != nil {
		return err
	}
	var banner *string
	if s.BannerImage != "" {
		banner = &s.BannerImage
	}
	const q = `
INSERT INTO store_settings (artist_id, store_name, store_bio, banner_image, social_links)
VALUES ($1, $2, $3, $4, $5::jsonb)
ON CONFLICT (artist_id) DO UPDATE
SET store_name = EXCLUDED.store_name,
    store_bio = EXCLUDED.store_bio,
    banner_image = EXCLUDED.banner_image,
    social_links = EXCLUDED.social_links,
    updated_at = now()
`
	_, err = tx.Exec(ctx, q, artistID, s.StoreName, s.StoreBio, banner, links)
	return err
}
