package domain

import "github.com/go-playground/validator/v10"

var emailCheck = validator.New()

// ValidateEmail accepts a bare address such as "ann@example.com". Display-name
// forms like "Ann <ann@example.com>" are rejected.
func ValidateEmail(email string) error {
	if err := emailCheck.Var(email, "required,email"); err != nil {
		return Invalid("email", "must be a valid address")
	}
	return nil
}

// UserProfile belongs to a principal. Both consent flags gate all writes by that principal.
type UserProfile struct {
	Name                  string  `json:"name"`
	Email                 string  `json:"email"`
	Bio                   *string `json:"bio,omitempty"`
	PaymentAPIKey         *string `json:"stripeApiKey,omitempty"`
	TermsAccepted         bool    `json:"termsAccepted"`
	PrivacyPolicyAccepted bool    `json:"privacyPolicyAccepted"`
}

// HasConsented reports whether both terms and privacy policy were accepted.
func (p UserProfile) HasConsented() bool {
	return p.TermsAccepted && p.PrivacyPolicyAccepted
}

// HasPaymentAPIKey reports whether an artist-level payment API key is present.
func (p UserProfile) HasPaymentAPIKey() bool {
	return p.PaymentAPIKey != nil && *p.PaymentAPIKey != ""
}

// Role is the access level of a principal.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// Caller is the resolved identity behind a request. Principal is empty for anonymous callers.
type Caller struct {
	Principal string
	Role      Role
}

// Authenticated reports whether the caller presented a verified principal.
func (c Caller) Authenticated() bool { return c.Principal != "" }

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }

// Owns reports whether the caller may change a resource owned by principal.
func (c Caller) Owns(principal string) bool {
	return c.IsAdmin() || (c.Authenticated() && c.Principal == principal)
}
