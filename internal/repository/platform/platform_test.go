package platform

import (
	"bytes"
	"context"
	"testing"

	"artisanhub/internal/db/dbtest"
	"artisanhub/internal/domain"
	"artisanhub/internal/secret"
)

func TestPostgres_Settings(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	sealer, err := secret.New(bytes.Repeat([]byte{2}, 32))
	if err != nil {
		t.Fatalf("sealer: %v", err)
	}
	repo := NewPostgres(pool, sealer, nil)

	s, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.CommissionRate != domain.DefaultCommissionRate || s.Payment != nil || s.PayoutAccountID != nil {
		t.Fatalf("unexpected defaults %+v", s)
	}

	if err := repo.SetCommission(ctx, 15); err != nil {
		t.Fatalf("SetCommission: %v", err)
	}
	if err := repo.SetPayment(ctx, domain.PaymentConfiguration{SecretKey: "sk_live_x", AllowedCountries: []string{"US", "CA"}}); err != nil {
		t.Fatalf("SetPayment: %v", err)
	}
	if err := repo.SetPayoutAccount(ctx, "acct_9"); err != nil {
		t.Fatalf("SetPayoutAccount: %v", err)
	}

	s, err = repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.CommissionRate != 15 {
		t.Fatalf("commission = %d", s.CommissionRate)
	}
	if s.Payment == nil || s.Payment.SecretKey != "sk_live_x" || len(s.Payment.AllowedCountries) != 2 {
		t.Fatalf("unexpected payment %+v", s.Payment)
	}
	if s.PayoutAccountID == nil || *s.PayoutAccountID != "acct_9" {
		t.Fatalf("unexpected payout account %v", s.PayoutAccountID)
	}
}
