package domain

import "time"

// ProductType distinguishes fixed-price products from donations.
type ProductType string

const (
	ProductTypeProduct  ProductType = "product"
	ProductTypeDonation ProductType = "donation"
)

// Valid reports whether t is a known product type.
func (t ProductType) Valid() bool {
	return t == ProductTypeProduct || t == ProductTypeDonation
}

// Product is a listing owned by an artist. PriceCents is in minor currency units;
// for donations it is the suggested amount.
type Product struct {
	ID           string      `json:"id"`
	ArtistID     string      `json:"artistId"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	CategoryName string      `json:"categoryName"`
	PriceCents   int64       `json:"price"`
	Type         ProductType `json:"productType"`
	ImageURLs    []string    `json:"imageUrls"`
	VideoURL     *string     `json:"videoUrl,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// IsDonation reports whether the product is a donation option.
func (p Product) IsDonation() bool {
	return p.Type == ProductTypeDonation
}
