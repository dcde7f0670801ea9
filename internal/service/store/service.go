package store

import (
	"context"
	"net/url"
	"strings"

	"artisanhub/internal/domain"
	"artisanhub/internal/logging"
	storerepo "artisanhub/internal/repository/store"
	"go.uber.org/zap"
)

const (
	maxStoreNameLen = 80
	maxStoreBioLen  = 2000
)

// ConsentChecker confirms a principal accepted terms and privacy policy.
type ConsentChecker interface {
	RequireConsent(ctx context.Context, principal string) error
}

type Service struct {
	repo    storerepo.Repository
	consent ConsentChecker
	logger  *zap.Logger
}

func New(repo storerepo.Repository, consent ConsentChecker, logger *zap.Logger) *Service {
	return &Service{repo: repo, consent: consent, logger: logging.OrNop(logger).Named("store_service")}
}

// Get returns the storefront settings of artistID or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, artistID string) (*domain.StoreSettings, error) {
	return s.repo.Get(ctx, artistID)
}

// Update replaces the settings of s.ArtistID. Only the owning artist or an admin may write.
func (s *Service) Update(ctx context.Context, caller domain.Caller, settings domain.StoreSettings) (*domain.StoreSettings, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	if !caller.Owns(settings.ArtistID) {
		return nil, domain.ErrForbidden
	}
	if !caller.IsAdmin() {
		if err := s.consent.RequireConsent(ctx, caller.Principal); err != nil {
			return nil, err
		}
	}
	if err := validate(&settings); err != nil {
		return nil, err
	}
	saved, err := s.repo.Upsert(ctx, settings)
	if err != nil {
		return nil, err
	}
	s.logger.Info("store settings updated", zap.String("artist_id", settings.ArtistID))
	return saved, nil
}

func validate(s *domain.StoreSettings) error {
	s.StoreName = strings.TrimSpace(s.StoreName)
	s.StoreBio = strings.TrimSpace(s.StoreBio)
	if s.StoreName == "" {
		return domain.Invalid("storeName", "required")
	}
	if len(s.StoreName) > maxStoreNameLen {
		return domain.Invalid("storeName", "too long")
	}
	if len(s.StoreBio) > maxStoreBioLen {
		return domain.Invalid("storeBio", "too long")
	}
	if err := optionalURL("bannerImage", &s.BannerImage); err != nil {
		return err
	}
	links := map[string]**string{
		"socialLinks.instagram": &s.SocialLinks.Instagram,
		"socialLinks.facebook":  &s.SocialLinks.Facebook,
		"socialLinks.twitter":   &s.SocialLinks.Twitter,
		"socialLinks.youtube":   &s.SocialLinks.YouTube,
		"socialLinks.tiktok":    &s.SocialLinks.TikTok,
	}
	for field, link := range links {
		if err := optionalURL(field, link); err != nil {
			return err
		}
	}
	return nil
}

// optionalURL clears blank values and rejects anything but absolute http(s) URLs.
func optionalURL(field string, v **string) error {
	if *v == nil {
		return nil
	}
	raw := strings.TrimSpace(**v)
	if raw == "" {
		*v = nil
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.Invalid(field, "must be an absolute http(s) URL")
	}
	*v = &raw
	return nil
}
