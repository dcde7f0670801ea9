package access

import (
	"testing"

	"artisanhub/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestGateNonAdminRedirectsWithoutRendering(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleUser, domain.RoleGuest, ""} {
		g := NewGate()
		rendered := false
		assert.False(t, g.Render(func() { rendered = true }), "loading must not render")

		assert.Equal(t, GateRedirecting, g.Resolve(role))
		assert.False(t, g.Render(func() { rendered = true }))
		assert.False(t, rendered)

		target, ok := g.Redirect()
		assert.True(t, ok)
		assert.Equal(t, "/products", target)
	}
}

func TestGateAdminRenders(t *testing.T) {
	g := NewGate()
	_, ok := g.Redirect()
	assert.False(t, ok)

	assert.Equal(t, GateAuthorized, g.Resolve(domain.RoleAdmin))
	assert.Equal(t, GateAuthorized, g.Resolve(domain.RoleGuest), "gate settles once")

	rendered := false
	assert.True(t, g.Render(func() { rendered = true }))
	assert.True(t, rendered)
}

func TestReadiness(t *testing.T) {
	cases := []struct {
		r     Readiness
		ready bool
	}{
		{Readiness{}, false},
		{Readiness{PlatformConfigured: true}, false},
		{Readiness{ArtistAccountID: true, ArtistAPIKey: true}, false},
		{Readiness{PlatformConfigured: true, ArtistAccountID: true}, true},
		{Readiness{PlatformConfigured: true, ArtistAPIKey: true}, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ready, tc.r.Ready(), "%+v", tc.r)
		assert.Equal(t, tc.ready, tc.r.Reason() == "", "%+v", tc.r)
	}
}
