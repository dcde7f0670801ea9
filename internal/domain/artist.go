package domain

import "time"

// ArtistProfile is a seller. ID equals the artist's authentication principal.
type ArtistProfile struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	IsActive         bool      `json:"isActive"`
	PaymentAccountID *string   `json:"stripeAccountId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// HasPaymentAccount reports whether a connected payment account is set.
func (a ArtistProfile) HasPaymentAccount() bool {
	return a.PaymentAccountID != nil && *a.PaymentAccountID != ""
}
