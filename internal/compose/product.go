// Package compose turns user-entered forms into validated API inputs. Every
// check here runs before any remote call.
package compose

import (
	"context"

	"artisanhub/internal/client"
	"artisanhub/internal/domain"
	"artisanhub/internal/money"
	"artisanhub/internal/upload"
)

const (
	DefaultDonationCategory = "Support"
	BulkCategory            = "Uncategorized"
	BulkDescription         = "Product description"
	BulkPriceCents          = 1000
)

// ProductForm is the product dialog. ID is set when editing an existing listing.
type ProductForm struct {
	ID          string   `form:"id"`
	ArtistID    string   `form:"artistId"`
	Name        string   `form:"name" validate:"required"`
	Description string   `form:"description" validate:"required"`
	Category    string   `form:"categoryName" validate:"required"`
	Price       string   `form:"price" validate:"required"`
	ImageURLs   []string `form:"imageUrls" validate:"dive,http_url"`
	VideoURL    string   `form:"videoUrl" validate:"omitempty,http_url"`
}

// DonationForm is the donation dialog. Category falls back to DefaultDonationCategory.
type DonationForm struct {
	ID              string   `form:"id"`
	ArtistID        string   `form:"artistId"`
	Name            string   `form:"name" validate:"required"`
	Description     string   `form:"description" validate:"required"`
	Category        string   `form:"categoryName"`
	SuggestedAmount string   `form:"price" validate:"required"`
	ImageURLs       []string `form:"imageUrls" validate:"dive,http_url"`
}

// Submission is one create-or-update call.
type Submission struct {
	ID    string
	Input client.ProductInput
}

// IsUpdate reports whether the submission edits an existing product.
func (s Submission) IsUpdate() bool { return s.ID != "" }

// Product validates f. For updates, existing is the stored record and its type is kept.
func Product(f ProductForm, existing *domain.Product) (Submission, error) {
	trim(&f.Name, &f.Description, &f.Category, &f.Price)
	if err := check(f); err != nil {
		return Submission{}, err
	}
	cents, err := money.ParsePrice(f.Price)
	if err != nil {
		return Submission{}, err
	}
	return submission(f.ID, existing, client.ProductInput{
		ArtistID:     f.ArtistID,
		Name:         f.Name,
		Description:  f.Description,
		CategoryName: f.Category,
		PriceCents:   cents,
		Type:         domain.ProductTypeProduct,
		ImageURLs:    nonNil(f.ImageURLs),
		VideoURL:     optional(f.VideoURL),
	})
}

// Donation validates f, enforcing the minimum suggested amount.
func Donation(f DonationForm, existing *domain.Product) (Submission, error) {
	trim(&f.Name, &f.Description, &f.Category, &f.SuggestedAmount)
	if f.Category == "" {
		f.Category = DefaultDonationCategory
	}
	if err := check(f); err != nil {
		return Submission{}, err
	}
	cents, err := money.ParseDonation(f.SuggestedAmount)
	if err != nil {
		return Submission{}, err
	}
	return submission(f.ID, existing, client.ProductInput{
		ArtistID:     f.ArtistID,
		Name:         f.Name,
		Description:  f.Description,
		CategoryName: f.Category,
		PriceCents:   cents,
		Type:         domain.ProductTypeDonation,
		ImageURLs:    nonNil(f.ImageURLs),
	})
}

func submission(id string, existing *domain.Product, in client.ProductInput) (Submission, error) {
	if id == "" && existing != nil {
		id = existing.ID
	}
	if id != "" && existing != nil {
		in.Type = existing.Type
		if in.Type == domain.ProductTypeDonation && in.PriceCents < money.MinDonationCents {
			return Submission{}, domain.Invalid("price", "minimum amount is "+money.Format(money.MinDonationCents))
		}
	}
	return Submission{ID: id, Input: in}, nil
}

// ProductWriter is the remote half of a submission.
type ProductWriter interface {
	CreateProduct(ctx context.Context, in client.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in client.ProductInput) (*domain.Product, error)
}

// Submit sends s as a single create or update call.
func Submit(ctx context.Context, w ProductWriter, s Submission) (*domain.Product, error) {
	if s.IsUpdate() {
		return w.UpdateProduct(ctx, s.ID, s.Input)
	}
	return w.CreateProduct(ctx, s.Input)
}

// BulkFromUploads builds one placeholder product per successful upload.
func BulkFromUploads(artistID string, ups []upload.Uploaded) ([]client.ProductInput, error) {
	if len(ups) == 0 {
		return nil, upload.ErrNoSuccessfulUploads
	}
	out := make([]client.ProductInput, len(ups))
	for i, u := range ups {
		name := upload.StripExt(u.File.Name)
		if name == "" {
			name = u.File.Name
		}
		out[i] = client.ProductInput{
			ArtistID:     artistID,
			Name:         name,
			Description:  BulkDescription,
			CategoryName: BulkCategory,
			PriceCents:   BulkPriceCents,
			Type:         domain.ProductTypeProduct,
			ImageURLs:    []string{u.Ref.DirectURL},
		}
	}
	return out, nil
}

// WithMedia appends uploaded image URLs and sets the video URL when present.
func WithMedia(s Submission, images []upload.Reference, video *upload.Reference) Submission {
	for _, ref := range images {
		s.Input.ImageURLs = append(s.Input.ImageURLs, ref.DirectURL)
	}
	if video != nil {
		url := video.DirectURL
		s.Input.VideoURL = &url
	}
	return s
}

// DonationAmount parses a buyer's custom donation amount.
func DonationAmount(amount string) (int64, error) {
	return money.ParseDonation(amount)
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
