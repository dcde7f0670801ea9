package client

import (
	"context"
	"net/http"
	"net/url"

	"artisanhub/internal/domain"
)

// CreateCheckoutSession validates items locally before calling the API.
func (c *Client) CreateCheckoutSession(ctx context.Context, items []domain.ShoppingItem) (*domain.CheckoutSession, error) {
	if err := domain.ValidateItems(items); err != nil {
		return nil, err
	}
	body := map[string][]domain.ShoppingItem{"items": items}
	var out domain.CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/checkout/sessions", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSessionStatus(ctx context.Context, sessionID string) (*domain.SessionStatus, error) {
	if sessionID == "" {
		return nil, domain.Invalid("sessionId", "required")
	}
	var out domain.SessionStatus
	if err := c.do(ctx, http.MethodGet, "/checkout/sessions/"+url.PathEscape(sessionID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
