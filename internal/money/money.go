// Package money converts between user-entered decimal amounts and integer minor units.
package money

import (
	"strings"

	"artisanhub/internal/domain"
	"github.com/shopspring/decimal"
)

// MinDonationCents is the lowest accepted donation amount (1.00 in major units).
const MinDonationCents int64 = 100

var hundred = decimal.NewFromInt(100)

// ParsePrice converts a decimal string such as "12.50" or "$12.5" into minor units,
// rounding half-up on the third decimal.
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return 0, domain.Invalid("price", "price required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, domain.Invalid("price", "price must be a decimal number")
	}
	if d.IsNegative() {
		return 0, domain.Invalid("price", "price must not be negative")
	}
	// Round is half away from zero, which is half-up for non-negative values.
	cents := d.Mul(hundred).Round(0)
	if !cents.IsInteger() || cents.GreaterThan(decimal.NewFromInt(1<<53)) {
		return 0, domain.Invalid("price", "price out of range")
	}
	return cents.IntPart(), nil
}

// ParseDonation parses an amount and enforces the MinDonationCents floor.
func ParseDonation(s string) (int64, error) {
	cents, err := ParsePrice(s)
	if err != nil {
		return 0, err
	}
	if cents < MinDonationCents {
		return 0, domain.Invalid("amount", "minimum amount is $1.00")
	}
	return cents, nil
}

// Decimal renders minor units as a major-unit decimal string with two digits, e.g. "12.50".
func Decimal(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// Format renders minor units for display, e.g. "$12.50".
func Format(cents int64) string {
	if cents < 0 {
		return "-$" + Decimal(-cents)
	}
	return "$" + Decimal(cents)
}

// Split divides amountCents between platform and artist. The platform takes
// floor(amount*rate/100); the artist receives the remainder.
func Split(amountCents int64, ratePercent int) (platform, artist int64) {
	if ratePercent <= 0 {
		return 0, amountCents
	}
	if ratePercent >= 100 {
		return amountCents, 0
	}
	platform = amountCents * int64(ratePercent) / 100
	return platform, amountCents - platform
}

// Revenue is the Split of amountCents at rate percent.
func Revenue(amountCents int64, rate int) domain.Breakdown {
	p, a := Split(amountCents, rate)
	return domain.Breakdown{AmountCents: amountCents, Rate: rate, PlatformCents: p, ArtistCents: a}
}
