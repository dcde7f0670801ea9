package client

import (
	"context"
	"net/http"
	"net/url"

	"artisanhub/internal/domain"
)

// ProductInput is the writable part of a product.
type ProductInput struct {
	ArtistID     string             `json:"artistId,omitempty"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	CategoryName string             `json:"categoryName"`
	PriceCents   int64              `json:"price"`
	Type         domain.ProductType `json:"productType"`
	ImageURLs    []string           `json:"imageUrls"`
	VideoURL     *string            `json:"videoUrl,omitempty"`
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListProductsByArtist(ctx context.Context, artistID string) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.do(ctx, http.MethodGet, "/artists/"+url.PathEscape(artistID)+"/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct returns nil when no product has that id.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return getOptional[domain.Product](ctx, c, "/products/"+url.PathEscape(id))
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPost, "/products", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProductsBulk persists all products or none.
func (c *Client) CreateProductsBulk(ctx context.Context, in []ProductInput) ([]domain.Product, error) {
	body := struct {
		Products []ProductInput `json:"products"`
	}{Products: in}
	var out []domain.Product
	if err := c.do(ctx, http.MethodPost, "/products/bulk", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}
