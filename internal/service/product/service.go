package product

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"artisanhub/internal/domain"
	"artisanhub/internal/events"
	"artisanhub/internal/logging"
	"artisanhub/internal/money"
	artistrepo "artisanhub/internal/repository/artist"
	productrepo "artisanhub/internal/repository/product"
	"go.uber.org/zap"
)

// MaxBulkSize caps one bulk create.
const MaxBulkSize = 100

// ConsentChecker confirms a principal accepted terms and privacy policy.
type ConsentChecker interface {
	RequireConsent(ctx context.Context, principal string) error
}

type Service struct {
	repo      productrepo.Repository
	artists   artistrepo.Repository
	consent   ConsentChecker
	publisher events.Publisher
	logger    *zap.Logger
}

func New(repo productrepo.Repository, artists artistrepo.Repository, consent ConsentChecker, publisher events.Publisher, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		artists:   artists,
		consent:   consent,
		publisher: publisher,
		logger:    logging.OrNop(logger).Named("product_service"),
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) ListByArtist(ctx context.Context, artistID string) ([]domain.Product, error) {
	return s.repo.ListByArtist(ctx, artistID)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create lists a product for the caller. Admins may create on behalf of another artist.
func (s *Service) Create(ctx context.Context, caller domain.Caller, p domain.Product) (*domain.Product, error) {
	artistID, err := s.authorizeWrite(ctx, caller, p.ArtistID)
	if err != nil {
		return nil, err
	}
	p.ID = ""
	p.ArtistID = artistID
	if err := Validate(&p); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, s.publisher, s.logger, events.New(events.ProductCreated, created.ID, created))
	return created, nil
}

// CreateBulk lists all products in one transaction.
func (s *Service) CreateBulk(ctx context.Context, caller domain.Caller, ps []domain.Product) ([]domain.Product, error) {
	if len(ps) == 0 {
		return nil, domain.Invalid("products", "at least one product required")
	}
	if len(ps) > MaxBulkSize {
		return nil, domain.Invalid("products", fmt.Sprintf("at most %d products per request", MaxBulkSize))
	}
	artistID, err := s.authorizeWrite(ctx, caller, ps[0].ArtistID)
	if err != nil {
		return nil, err
	}
	for i := range ps {
		ps[i].ID = ""
		ps[i].ArtistID = artistID
		if err := Validate(&ps[i]); err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				return nil, domain.Invalid(fmt.Sprintf("products[%d].%s", i, ve.Field), ve.Message)
			}
			return nil, err
		}
	}

	created, err := s.repo.CreateBulk(ctx, ps)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(created))
	for i, p := range created {
		ids[i] = p.ID
	}
	events.Emit(ctx, s.publisher, s.logger, events.New(events.ProductsBulkCreated, artistID, map[string]any{"productIds": ids}))
	return created, nil
}

// Update replaces the editable fields. Owner and type of the stored product are kept.
func (s *Service) Update(ctx context.Context, caller domain.Caller, p domain.Product) (*domain.Product, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	existing, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(existing.ArtistID) {
		return nil, domain.ErrForbidden
	}
	if !caller.IsAdmin() {
		if err := s.consent.RequireConsent(ctx, caller.Principal); err != nil {
			return nil, err
		}
	}
	p.ArtistID = existing.ArtistID
	p.Type = existing.Type
	if err := Validate(&p); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, s.publisher, s.logger, events.New(events.ProductUpdated, updated.ID, updated))
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, caller domain.Caller, id string) error {
	if !caller.Authenticated() {
		return domain.ErrUnauthenticated
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.Owns(existing.ArtistID) {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	events.Emit(ctx, s.publisher, s.logger, events.New(events.ProductDeleted, id, nil))
	return nil
}

// authorizeWrite resolves the owning artist of a new listing and checks the caller may list for it.
func (s *Service) authorizeWrite(ctx context.Context, caller domain.Caller, requested string) (string, error) {
	if !caller.Authenticated() {
		return "", domain.ErrUnauthenticated
	}
	artistID := caller.Principal
	if requested != "" && requested != caller.Principal {
		if !caller.IsAdmin() {
			return "", domain.ErrForbidden
		}
		artistID = requested
	}
	if !caller.IsAdmin() {
		if err := s.consent.RequireConsent(ctx, caller.Principal); err != nil {
			return "", err
		}
	}
	a, err := s.artists.GetByID(ctx, artistID)
	if err != nil {
		return "", fmt.Errorf("artist %s: %w", artistID, err)
	}
	if !a.IsActive {
		s.logger.Info("rejected listing for inactive artist", zap.String("artist_id", artistID))
		return "", domain.ErrForbidden
	}
	return artistID, nil
}

// Validate normalizes p and checks the listing rules shared by create and update.
func Validate(p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.CategoryName = strings.TrimSpace(p.CategoryName)

	if p.Name == "" {
		return domain.Invalid("name", "required")
	}
	if p.Description == "" {
		return domain.Invalid("description", "required")
	}
	if p.CategoryName == "" {
		return domain.Invalid("categoryName", "required")
	}
	if !p.Type.Valid() {
		return domain.Invalid("productType", "must be product or donation")
	}
	if p.PriceCents < 0 {
		return domain.Invalid("price", "must not be negative")
	}
	if p.IsDonation() && p.PriceCents < money.MinDonationCents {
		return domain.Invalid("price", "suggested donation must be at least "+money.Format(money.MinDonationCents))
	}
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
	for i, u := range p.ImageURLs {
		if !isHTTPURL(u) {
			return domain.Invalid(fmt.Sprintf("imageUrls[%d]", i), "must be an absolute http(s) URL")
		}
	}
	if p.VideoURL != nil {
		if *p.VideoURL == "" {
			p.VideoURL = nil
		} else if !isHTTPURL(*p.VideoURL) {
			return domain.Invalid("videoUrl", "must be an absolute http(s) URL")
		}
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
