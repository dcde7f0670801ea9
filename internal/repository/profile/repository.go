package profile

import (
	"context"

	"artisanhub/internal/domain"
)

// Repository persists caller profiles and roles.
type Repository interface {
	Get(ctx context.Context, principal string) (*domain.UserProfile, error)
	Save(ctx context.Context, principal string, p domain.UserProfile) error
	GetRole(ctx context.Context, principal string) (domain.Role, bool, error)
	SetRole(ctx context.Context, principal string, role domain.Role) error
}

// Cipher seals the payment API key at rest.
type Cipher interface {
	Seal(plain []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}
