package client

import (
	"context"
	"net/http"
	"strconv"

	"artisanhub/internal/domain"
)

func (c *Client) GetCommissionRate(ctx context.Context) (int, error) {
	var out struct {
		Rate int `json:"rate"`
	}
	if err := c.do(ctx, http.MethodGet, "/platform/commission", nil, &out); err != nil {
		return 0, err
	}
	return out.Rate, nil
}

func (c *Client) SetCommissionRate(ctx context.Context, rate int) error {
	return c.do(ctx, http.MethodPut, "/platform/commission", map[string]int{"rate": rate}, nil)
}

func (c *Client) IsPaymentConfigured(ctx context.Context) (bool, error) {
	var out struct {
		Configured bool `json:"configured"`
	}
	if err := c.do(ctx, http.MethodGet, "/platform/payment", nil, &out); err != nil {
		return false, err
	}
	return out.Configured, nil
}

func (c *Client) SetPaymentConfiguration(ctx context.Context, cfg domain.PaymentConfiguration) error {
	return c.do(ctx, http.MethodPut, "/platform/payment", cfg, nil)
}

// GetAdminPaymentAccount returns nil when no payout account is set.
func (c *Client) GetAdminPaymentAccount(ctx context.Context) (*string, error) {
	var out struct {
		AccountID *string `json:"accountId"`
	}
	if err := c.do(ctx, http.MethodGet, "/platform/payout-account", nil, &out); err != nil {
		return nil, err
	}
	return out.AccountID, nil
}

func (c *Client) SetAdminPaymentAccount(ctx context.Context, accountID string) error {
	return c.do(ctx, http.MethodPut, "/platform/payout-account", map[string]string{"accountId": accountID}, nil)
}

// GetRevenue splits amountCents at the current commission rate.
func (c *Client) GetRevenue(ctx context.Context, amountCents int64) (*domain.Breakdown, error) {
	var out domain.Breakdown
	path := "/platform/revenue?amount=" + strconv.FormatInt(amountCents, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
