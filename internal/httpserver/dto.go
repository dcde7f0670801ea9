package httpserver

import "artisanhub/internal/domain"

type productRequest struct {
	ArtistID     string   `json:"artistId"`
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	CategoryName string   `json:"categoryName" binding:"required"`
	PriceCents   *int64   `json:"price" binding:"required,gte=0"`
	ProductType  string   `json:"productType" binding:"omitempty,oneof=product donation"`
	ImageURLs    []string `json:"imageUrls" binding:"omitempty,dive,url"`
	VideoURL     *string  `json:"videoUrl" binding:"omitempty,url"`
}

func (r productRequest) toDomain() domain.Product {
	typ := domain.ProductType(r.ProductType)
	if typ == "" {
		typ = domain.ProductTypeProduct
	}
	var price int64
	if r.PriceCents != nil {
		price = *r.PriceCents
	}
	return domain.Product{
		ArtistID:     r.ArtistID,
		Name:         r.Name,
		Description:  r.Description,
		CategoryName: r.CategoryName,
		PriceCents:   price,
		Type:         typ,
		ImageURLs:    r.ImageURLs,
		VideoURL:     r.VideoURL,
	}
}

type bulkProductsRequest struct {
	Products []productRequest `json:"products" binding:"required,min=1,dive"`
}

type registerArtistRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type activeRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type accountRequest struct {
	AccountID string `json:"accountId" binding:"required"`
}

type accountResponse struct {
	AccountID *string `json:"accountId"`
}

type roleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin user guest"`
}

type roleResponse struct {
	Role domain.Role `json:"role"`
}

type commissionRequest struct {
	Rate *int `json:"rate" binding:"required,gte=0,lte=100"`
}

type commissionResponse struct {
	Rate int `json:"rate"`
}

type paymentConfigRequest struct {
	SecretKey        string   `json:"secretKey" binding:"required"`
	AllowedCountries []string `json:"allowedCountries"`
}

type paymentConfiguredResponse struct {
	Configured bool `json:"configured"`
}

type checkoutRequest struct {
	Items []domain.ShoppingItem `json:"items"`
}
