package client

import (
	"context"
	"net/http"
	"net/url"

	"artisanhub/internal/domain"
)

func (c *Client) ListArtists(ctx context.Context) ([]domain.ArtistProfile, error) {
	var out []domain.ArtistProfile
	if err := c.do(ctx, http.MethodGet, "/artists", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetArtist returns nil for unknown artists.
func (c *Client) GetArtist(ctx context.Context, id string) (*domain.ArtistProfile, error) {
	return getOptional[domain.ArtistProfile](ctx, c, "/artists/"+url.PathEscape(id))
}

// RegisterArtist registers the caller as an artist.
func (c *Client) RegisterArtist(ctx context.Context, name, email string) (*domain.ArtistProfile, error) {
	body := map[string]string{"name": name, "email": email}
	var out domain.ArtistProfile
	if err := c.do(ctx, http.MethodPost, "/artists", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetArtistActive(ctx context.Context, id string, active bool) (*domain.ArtistProfile, error) {
	body := map[string]bool{"isActive": active}
	var out domain.ArtistProfile
	if err := c.do(ctx, http.MethodPut, "/artists/"+url.PathEscape(id)+"/active", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetArtistPaymentAccount(ctx context.Context, id, accountID string) (*domain.ArtistProfile, error) {
	body := map[string]string{"accountId": accountID}
	var out domain.ArtistProfile
	if err := c.do(ctx, http.MethodPut, "/artists/"+url.PathEscape(id)+"/payment-account", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStoreSettings returns nil when the artist never saved settings.
func (c *Client) GetStoreSettings(ctx context.Context, artistID string) (*domain.StoreSettings, error) {
	return getOptional[domain.StoreSettings](ctx, c, "/artists/"+url.PathEscape(artistID)+"/store")
}

func (c *Client) UpdateStoreSettings(ctx context.Context, s domain.StoreSettings) (*domain.StoreSettings, error) {
	var out domain.StoreSettings
	if err := c.do(ctx, http.MethodPut, "/artists/"+url.PathEscape(s.ArtistID)+"/store", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
