package artist

import (
	"context"
	"errors"
	"testing"

	"artisanhub/internal/db/dbtest"
	"artisanhub/internal/domain"
)

func TestPostgres_Lifecycle(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	repo := NewPostgres(pool, nil)

	a, err := repo.Create(ctx, domain.ArtistProfile{ID: "p-1", Name: "Ana", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !a.IsActive || a.HasPaymentAccount() {
		t.Fatalf("new artist should be active without payment account: %+v", a)
	}

	if _, err := repo.Create(ctx, domain.ArtistProfile{ID: "p-1", Name: "Ana"}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	a, err = repo.SetActive(ctx, "p-1", false)
	if err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if a.IsActive {
		t.Fatalf("expected inactive")
	}

	a, err = repo.SetPaymentAccount(ctx, "p-1", "acct_1")
	if err != nil {
		t.Fatalf("SetPaymentAccount: %v", err)
	}
	if !a.HasPaymentAccount() || *a.PaymentAccountID != "acct_1" {
		t.Fatalf("unexpected account %+v", a)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 artist, got %d", len(list))
	}

	if _, err := repo.SetActive(ctx, "missing", true); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
