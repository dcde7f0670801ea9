package product

import (
	"context"
	"errors"
	"testing"

	"artisanhub/internal/db/dbtest"
	"artisanhub/internal/domain"
)

func TestPostgres_CreateListGet(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	dbtest.InsertArtist(t, pool, "artist-1")

	repo := NewPostgres(pool, nil)

	p, err := repo.Create(ctx, domain.Product{
		ArtistID:     "artist-1",
		Name:         "Vase",
		Description:  "blue",
		CategoryName: "Ceramics",
		PriceCents:   1250,
		Type:         domain.ProductTypeProduct,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected generated id")
	}
	if p.ImageURLs == nil {
		t.Fatalf("expected empty image list, got nil")
	}

	list, err := repo.ListByArtist(ctx, "artist-1")
	if err != nil {
		t.Fatalf("ListByArtist: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 product, got %d", len(list))
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Vase" || got.PriceCents != 1250 || got.Type != domain.ProductTypeProduct {
		t.Fatalf("unexpected product %+v", got)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_UpdateKeepsType(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	dbtest.InsertArtist(t, pool, "artist-1")
	repo := NewPostgres(pool, nil)

	p, err := repo.Create(ctx, domain.Product{
		ArtistID: "artist-1", Name: "Tip jar", PriceCents: 500, Type: domain.ProductTypeDonation, CategoryName: "Support",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	p.Name = "Tip jar 2"
	p.PriceCents = 700
	p.Type = domain.ProductTypeProduct
	p.ImageURLs = []string{"https://cdn.example.com/a.png"}
	updated, err := repo.Update(ctx, *p)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Type != domain.ProductTypeDonation {
		t.Fatalf("type must not change on update, got %s", updated.Type)
	}
	if updated.Name != "Tip jar 2" || updated.PriceCents != 700 || len(updated.ImageURLs) != 1 {
		t.Fatalf("unexpected updated product %+v", updated)
	}

	if _, err := repo.Update(ctx, domain.Product{ID: "missing"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_CreateBulkIsAtomic(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	dbtest.InsertArtist(t, pool, "artist-1")
	repo := NewPostgres(pool, nil)

	_, err := repo.CreateBulk(ctx, []domain.Product{
		{ArtistID: "artist-1", Name: "a", PriceCents: 1000, Type: domain.ProductTypeProduct},
		{ArtistID: "nobody", Name: "b", PriceCents: 1000, Type: domain.ProductTypeProduct},
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown artist, got %v", err)
	}
	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected rollback, found %d products", len(all))
	}

	created, err := repo.CreateBulk(ctx, []domain.Product{
		{ArtistID: "artist-1", Name: "a", PriceCents: 1000, Type: domain.ProductTypeProduct},
		{ArtistID: "artist-1", Name: "b", PriceCents: 1000, Type: domain.ProductTypeProduct},
	})
	if err != nil {
		t.Fatalf("CreateBulk: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 created, got %d", len(created))
	}

	if err := repo.Delete(ctx, created[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, created[0].ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
