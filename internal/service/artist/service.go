package artist

import (
	"context"
	"strings"

	"artisanhub/internal/domain"
	"artisanhub/internal/events"
	"artisanhub/internal/logging"
	artistrepo "artisanhub/internal/repository/artist"
	"go.uber.org/zap"
)

// ConsentChecker confirms a principal accepted terms and privacy policy.
type ConsentChecker interface {
	RequireConsent(ctx context.Context, principal string) error
}

type Service struct {
	repo      artistrepo.Repository
	consent   ConsentChecker
	publisher events.Publisher
	logger    *zap.Logger
}

func New(repo artistrepo.Repository, consent ConsentChecker, publisher events.Publisher, logger *zap.Logger) *Service {
	return &Service{repo: repo, consent: consent, publisher: publisher, logger: logging.OrNop(logger).Named("artist_service")}
}

// Register creates the caller's artist profile; the id is always the caller's principal.
func (s *Service) Register(ctx context.Context, caller domain.Caller, name, email string) (*domain.ArtistProfile, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, domain.Invalid("name", "required")
	}
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := s.consent.RequireConsent(ctx, caller.Principal); err != nil {
		return nil, err
	}

	a, err := s.repo.Create(ctx, domain.ArtistProfile{ID: caller.Principal, Name: name, Email: email})
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, s.publisher, s.logger, events.New(events.ArtistRegistered, a.ID, a))
	return a, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.ArtistProfile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.ArtistProfile, error) {
	return s.repo.List(ctx)
}

// SetActive toggles whether an artist may list products. Admin only.
func (s *Service) SetActive(ctx context.Context, caller domain.Caller, id string, active bool) (*domain.ArtistProfile, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	a, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	s.logger.Info("artist activation changed", zap.String("artist_id", id), zap.Bool("active", active), zap.String("by", caller.Principal))
	events.Emit(ctx, s.publisher, s.logger, events.New(events.ArtistActivationChanged, id, map[string]bool{"isActive": active}))
	return a, nil
}

func (s *Service) SetPaymentAccount(ctx context.Context, caller domain.Caller, id, accountID string) (*domain.ArtistProfile, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	if !caller.Owns(id) {
		return nil, domain.ErrForbidden
	}
	if err := domain.ValidatePaymentAccountID(accountID); err != nil {
		return nil, err
	}
	return s.repo.SetPaymentAccount(ctx, id, strings.TrimSpace(accountID))
}
