package domain

import "strings"

// DefaultCommissionRate is the platform share in percent until an admin changes it.
const DefaultCommissionRate = 10

// PaymentConfiguration is the platform-level payment provider setup.
type PaymentConfiguration struct {
	SecretKey        string   `json:"secretKey"`
	AllowedCountries []string `json:"allowedCountries"`
}

// PaymentAccountPrefix is the required prefix of connected payment account ids.
const PaymentAccountPrefix = "acct_"

// ValidatePaymentAccountID checks the connected account id format.
func ValidatePaymentAccountID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return Invalid("accountId", "account id required")
	}
	if !strings.HasPrefix(id, PaymentAccountPrefix) || len(id) <= len(PaymentAccountPrefix) {
		return Invalid("accountId", `must start with "acct_"`)
	}
	return nil
}

// ValidateCommissionRate checks that rate is a whole percentage.
func ValidateCommissionRate(rate int) error {
	if rate < 0 || rate > 100 {
		return Invalid("rate", "commission rate must be between 0 and 100")
	}
	return nil
}

// Breakdown is how one sale divides between platform and artist.
type Breakdown struct {
	AmountCents   int64 `json:"amount"`
	Rate          int   `json:"commissionRate"`
	PlatformCents int64 `json:"platformShare"`
	ArtistCents   int64 `json:"artistShare"`
}
