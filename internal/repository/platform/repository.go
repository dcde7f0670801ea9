package platform

import (
	"context"

	"artisanhub/internal/domain"
)

// Settings is the single platform settings row.
type Settings struct {
	CommissionRate  int
	Payment         *domain.PaymentConfiguration
	PayoutAccountID *string
}

// Repository reads and writes platform-wide settings.
type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	SetCommission(ctx context.Context, rate int) error
	SetPayment(ctx context.Context, cfg domain.PaymentConfiguration) error
	SetPayoutAccount(ctx context.Context, accountID string) error
}

// Cipher seals the payment secret key at rest.
type Cipher interface {
	Seal(plain []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}
