package profile

import (
	"context"
	"errors"
	"strings"

	"artisanhub/internal/domain"
	"artisanhub/internal/logging"
	profilerepo "artisanhub/internal/repository/profile"
	"go.uber.org/zap"
)

type Service struct {
	repo   profilerepo.Repository
	admins map[string]struct{}
	logger *zap.Logger
}

// New builds the service. adminPrincipals are always resolved as admin.
func New(repo profilerepo.Repository, adminPrincipals []string, logger *zap.Logger) *Service {
	admins := make(map[string]struct{}, len(adminPrincipals))
	for _, p := range adminPrincipals {
		if p = strings.TrimSpace(p); p != "" {
			admins[p] = struct{}{}
		}
	}
	return &Service{repo: repo, admins: admins, logger: logging.OrNop(logger).Named("profile_service")}
}

// Get returns the caller's profile or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, caller domain.Caller) (*domain.UserProfile, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.Get(ctx, caller.Principal)
}

func (s *Service) Save(ctx context.Context, caller domain.Caller, p domain.UserProfile) error {
	if !caller.Authenticated() {
		return domain.ErrUnauthenticated
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	if p.Name == "" {
		return domain.Invalid("name", "required")
	}
	if err := domain.ValidateEmail(p.Email); err != nil {
		return err
	}
	if !p.HasConsented() {
		return domain.ErrConsentRequired
	}
	if p.Bio != nil && strings.TrimSpace(*p.Bio) == "" {
		p.Bio = nil
	}
	if p.PaymentAPIKey != nil && strings.TrimSpace(*p.PaymentAPIKey) == "" {
		p.PaymentAPIKey = nil
	}
	return s.repo.Save(ctx, caller.Principal, p)
}

// Role resolves the access level of principal: bootstrap admins first, then an
// assigned role, then user for anyone with a profile, guest otherwise.
func (s *Service) Role(ctx context.Context, principal string) (domain.Role, error) {
	if principal == "" {
		return domain.RoleGuest, nil
	}
	if _, ok := s.admins[principal]; ok {
		return domain.RoleAdmin, nil
	}
	role, ok, err := s.repo.GetRole(ctx, principal)
	if err != nil {
		return "", err
	}
	if ok {
		return role, nil
	}
	if _, err := s.repo.Get(ctx, principal); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.RoleGuest, nil
		}
		return "", err
	}
	return domain.RoleUser, nil
}

func (s *Service) AssignRole(ctx context.Context, caller domain.Caller, principal string, role domain.Role) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	principal = strings.TrimSpace(principal)
	if principal == "" {
		return domain.Invalid("principal", "required")
	}
	if !role.Valid() {
		return domain.Invalid("role", "must be admin, user or guest")
	}
	if err := s.repo.SetRole(ctx, principal, role); err != nil {
		return err
	}
	s.logger.Info("role assigned", zap.String("by", caller.Principal), zap.String("principal", principal), zap.String("role", string(role)))
	return nil
}

// RequireConsent fails with domain.ErrConsentRequired unless principal has a
// profile with both consent flags set.
func (s *Service) RequireConsent(ctx context.Context, principal string) error {
	p, err := s.repo.Get(ctx, principal)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrConsentRequired
		}
		return err
	}
	if !p.HasConsented() {
		return domain.ErrConsentRequired
	}
	return nil
}
