package compose

import (
	"strconv"
	"strings"

	"artisanhub/internal/domain"
)

// ProfileForm is the profile setup dialog. Both consent boxes must be ticked.
type ProfileForm struct {
	Name          string `form:"name" validate:"required"`
	Email         string `form:"email" validate:"required,email"`
	Bio           string `form:"bio"`
	PaymentAPIKey string `form:"stripeApiKey"`
	AcceptTerms   bool   `form:"termsAccepted" validate:"eq=true"`
	AcceptPrivacy bool   `form:"privacyPolicyAccepted" validate:"eq=true"`
}

func Profile(f ProfileForm) (domain.UserProfile, error) {
	trim(&f.Name, &f.Email)
	if err := check(f); err != nil {
		return domain.UserProfile{}, err
	}
	return domain.UserProfile{
		Name:                  f.Name,
		Email:                 f.Email,
		Bio:                   optional(f.Bio),
		PaymentAPIKey:         optional(f.PaymentAPIKey),
		TermsAccepted:         true,
		PrivacyPolicyAccepted: true,
	}, nil
}

// ArtistForm is the artist registration dialog.
type ArtistForm struct {
	Name  string `form:"name" validate:"required"`
	Email string `form:"email" validate:"required,email"`
}

func Artist(f ArtistForm) (ArtistForm, error) {
	trim(&f.Name, &f.Email)
	return f, check(f)
}

// StoreForm is the storefront settings dialog. Banner is a direct URL.
type StoreForm struct {
	StoreName string `form:"storeName" validate:"required,max=80"`
	StoreBio  string `form:"storeBio" validate:"max=2000"`
	Banner    string `form:"bannerImage" validate:"omitempty,http_url"`
	Instagram string `form:"socialLinks.instagram" validate:"omitempty,http_url"`
	Facebook  string `form:"socialLinks.facebook" validate:"omitempty,http_url"`
	Twitter   string `form:"socialLinks.twitter" validate:"omitempty,http_url"`
	YouTube   string `form:"socialLinks.youtube" validate:"omitempty,http_url"`
	TikTok    string `form:"socialLinks.tiktok" validate:"omitempty,http_url"`
}

func Store(artistID string, f StoreForm) (domain.StoreSettings, error) {
	trim(&f.StoreName, &f.StoreBio, &f.Banner, &f.Instagram, &f.Facebook, &f.Twitter, &f.YouTube, &f.TikTok)
	if err := check(f); err != nil {
		return domain.StoreSettings{}, err
	}
	return domain.StoreSettings{
		ArtistID:    artistID,
		StoreName:   f.StoreName,
		StoreBio:    f.StoreBio,
		BannerImage: optional(f.Banner),
		SocialLinks: domain.SocialLinks{
			Instagram: optional(f.Instagram),
			Facebook:  optional(f.Facebook),
			Twitter:   optional(f.Twitter),
			YouTube:   optional(f.YouTube),
			TikTok:    optional(f.TikTok),
		},
	}, nil
}

// CommissionRate parses a whole percentage between 0 and 100.
func CommissionRate(s string) (int, error) {
	rate, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%")))
	if err != nil {
		return 0, domain.Invalid("rate", "must be a whole number")
	}
	if err := domain.ValidateCommissionRate(rate); err != nil {
		return 0, err
	}
	return rate, nil
}

// PaymentAccount checks a connected account id such as "acct_123".
func PaymentAccount(id string) (string, error) {
	id = strings.TrimSpace(id)
	if err := domain.ValidatePaymentAccountID(id); err != nil {
		return "", err
	}
	return id, nil
}

// PaymentForm is the admin payment provider dialog. Countries is comma separated.
type PaymentForm struct {
	SecretKey string `form:"secretKey" validate:"required"`
	Countries string `form:"allowedCountries"`
}

func Payment(f PaymentForm) (domain.PaymentConfiguration, error) {
	trim(&f.SecretKey)
	if err := check(f); err != nil {
		return domain.PaymentConfiguration{}, err
	}
	countries := []string{}
	for _, c := range strings.Split(f.Countries, ",") {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			countries = append(countries, c)
		}
	}
	return domain.PaymentConfiguration{SecretKey: f.SecretKey, AllowedCountries: countries}, nil
}
