package client

import (
	"context"
	"net/http"
	"net/url"

	"artisanhub/internal/domain"
)

// GetCallerProfile returns nil until the caller saved a profile.
func (c *Client) GetCallerProfile(ctx context.Context) (*domain.UserProfile, error) {
	return getOptional[domain.UserProfile](ctx, c, "/me/profile")
}

func (c *Client) SaveCallerProfile(ctx context.Context, p domain.UserProfile) error {
	return c.do(ctx, http.MethodPut, "/me/profile", p, nil)
}

// GetCallerRole answers guest for anonymous clients.
func (c *Client) GetCallerRole(ctx context.Context) (domain.Role, error) {
	var out struct {
		Role domain.Role `json:"role"`
	}
	if err := c.do(ctx, http.MethodGet, "/me/role", nil, &out); err != nil {
		return "", err
	}
	return out.Role, nil
}

func (c *Client) AssignRole(ctx context.Context, principal string, role domain.Role) error {
	body := map[string]domain.Role{"role": role}
	return c.do(ctx, http.MethodPut, "/roles/"+url.PathEscape(principal), body, nil)
}
