package domain

import (
	"fmt"
	"strings"
)

// ShoppingItem is one checkout line item. PriceCents is the unit price in minor units.
type ShoppingItem struct {
	ProductName        string `json:"productName"`
	ProductDescription string `json:"productDescription"`
	PriceCents         int64  `json:"priceInCents"`
	Quantity           int64  `json:"quantity"`
	Currency           string `json:"currency"`
}

// DefaultCurrency is used when composing line items from listings.
const DefaultCurrency = "usd"

// ValidateItems rejects empty lists and lines with a non-positive quantity,
// a negative price, or no currency.
func ValidateItems(items []ShoppingItem) error {
	if len(items) == 0 {
		return Invalid("items", "at least one line item required")
	}
	for i, it := range items {
		field := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(it.ProductName) == "" {
			return Invalid(field+".productName", "required")
		}
		if it.Quantity <= 0 {
			return Invalid(field+".quantity", "must be positive")
		}
		if it.PriceCents < 0 {
			return Invalid(field+".priceInCents", "must not be negative")
		}
		if strings.TrimSpace(it.Currency) == "" {
			return Invalid(field+".currency", "required")
		}
	}
	return nil
}

// CheckoutSession is a created payment session; URL is where the buyer is redirected.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// SessionStatusKind is the variant tag of SessionStatus.
type SessionStatusKind string

const (
	SessionCompleted SessionStatusKind = "completed"
	SessionFailed    SessionStatusKind = "failed"
)

// SessionStatus is the outcome of a checkout session. Response and UserPrincipal are set
// for completed sessions, Error for failed ones.
type SessionStatus struct {
	Kind          SessionStatusKind `json:"kind"`
	Response      string            `json:"response,omitempty"`
	UserPrincipal *string           `json:"userPrincipal,omitempty"`
	Error         string            `json:"error,omitempty"`
}
