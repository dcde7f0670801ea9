package access

// Readiness decides whether checkout actions for an artist are enabled.
type Readiness struct {
	PlatformConfigured bool
	ArtistAccountID    bool
	ArtistAPIKey       bool
}

// Ready requires the platform configuration and one artist-level credential.
func (r Readiness) Ready() bool {
	return r.PlatformConfigured && (r.ArtistAccountID || r.ArtistAPIKey)
}

// Reason explains a disabled state. It is empty when Ready.
func (r Readiness) Reason() string {
	switch {
	case !r.PlatformConfigured:
		return "payments are not configured for this marketplace yet"
	case !r.ArtistAccountID && !r.ArtistAPIKey:
		return "this artist has not connected a payment account yet"
	default:
		return ""
	}
}
