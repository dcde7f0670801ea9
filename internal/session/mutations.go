package session

import (
	"context"
	"fmt"

	"artisanhub/internal/client"
	"artisanhub/internal/compose"
	"artisanhub/internal/domain"
	"artisanhub/internal/querycache"
	"artisanhub/internal/upload"
	"go.uber.org/zap"
)

// SaveProduct submits a composed product as one create or update call.
func (s *Session) SaveProduct(ctx context.Context, sub compose.Submission) (*domain.Product, error) {
	var out *domain.Product
	err := s.mutate(ctx, func(ctx context.Context) error {
		p, err := compose.Submit(ctx, s.api, sub)
		out = p
		return err
	}, querycache.KeyProducts)
	return out, err
}

func (s *Session) DeleteProduct(ctx context.Context, id string) error {
	return s.mutate(ctx, func(ctx context.Context) error {
		return s.api.DeleteProduct(ctx, id)
	}, querycache.KeyProducts)
}

func (s *Session) CreateProductsBulk(ctx context.Context, in []client.ProductInput) ([]domain.Product, error) {
	var out []domain.Product
	err := s.mutate(ctx, func(ctx context.Context) error {
		created, err := s.api.CreateProductsBulk(ctx, in)
		out = created
		return err
	}, querycache.KeyProducts)
	return out, err
}

// BulkUpload uploads images and creates one product per successful upload.
// The batch is returned even on failure so callers can report per-file state.
func (s *Session) BulkUpload(ctx context.Context, artistID string, files []upload.File, opts ...upload.Option) (*upload.Batch, []domain.Product, error) {
	images := upload.FilterImages(files)
	if len(images) == 0 {
		return nil, nil, domain.Invalid("files", "no image files selected")
	}
	opts = append([]upload.Option{upload.WithLogger(s.logger)}, opts...)
	batch := upload.NewBatch(s.api, images, opts...)

	task, err := batch.Start(ctx)
	if err != nil {
		return batch, nil, err
	}
	if err := task.Wait(); err != nil {
		return batch, nil, err
	}

	ups, err := batch.RequireAny()
	if err != nil {
		return batch, nil, err
	}
	in, err := compose.BulkFromUploads(artistID, ups)
	if err != nil {
		return batch, nil, err
	}
	created, err := s.CreateProductsBulk(ctx, in)
	if err != nil {
		return batch, nil, fmt.Errorf("create products: %w", err)
	}
	s.logger.Info("bulk upload finished",
		zap.Int("files", len(images)),
		zap.Int("created", len(created)),
	)
	return batch, created, nil
}

// UploadMedia uploads images plus an optional video for a single-product dialog.
// Failed files are dropped.
func (s *Session) UploadMedia(ctx context.Context, files []upload.File, opts ...upload.Option) ([]upload.Reference, *upload.Reference, error) {
	images, video := upload.SplitMedia(files)
	all := images
	if video != nil {
		all = append(append([]upload.File(nil), images...), *video)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	opts = append([]upload.Option{upload.WithLogger(s.logger)}, opts...)
	batch := upload.NewBatch(s.api, all, opts...)
	task, err := batch.Start(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := task.Wait(); err != nil {
		return nil, nil, err
	}

	var (
		imgRefs  []upload.Reference
		videoRef *upload.Reference
	)
	for i, st := range batch.States() {
		if st.Status != upload.StatusSuccess || st.Ref == nil {
			continue
		}
		if video != nil && i == len(all)-1 {
			ref := *st.Ref
			videoRef = &ref
			continue
		}
		imgRefs = append(imgRefs, *st.Ref)
	}
	return imgRefs, videoRef, nil
}

func (s *Session) RegisterArtist(ctx context.Context, f compose.ArtistForm) (*domain.ArtistProfile, error) {
	f, err := compose.Artist(f)
	if err != nil {
		return nil, err
	}
	var out *domain.ArtistProfile
	err = s.mutate(ctx, func(ctx context.Context) error {
		a, err := s.api.RegisterArtist(ctx, f.Name, f.Email)
		out = a
		return err
	}, querycache.KeyArtist, querycache.KeyArtists)
	return out, err
}

func (s *Session) SetArtistActive(ctx context.Context, id string, active bool) (*domain.ArtistProfile, error) {
	var out *domain.ArtistProfile
	err := s.mutate(ctx, func(ctx context.Context) error {
		a, err := s.api.SetArtistActive(ctx, id, active)
		out = a
		return err
	}, querycache.Artist(id), querycache.KeyArtists)
	return out, err
}

func (s *Session) SetArtistPaymentAccount(ctx context.Context, id, accountID string) (*domain.ArtistProfile, error) {
	accountID, err := compose.PaymentAccount(accountID)
	if err != nil {
		return nil, err
	}
	var out *domain.ArtistProfile
	err = s.mutate(ctx, func(ctx context.Context) error {
		a, err := s.api.SetArtistPaymentAccount(ctx, id, accountID)
		out = a
		return err
	}, querycache.Artist(id), querycache.KeyArtists)
	return out, err
}

func (s *Session) UpdateStoreSettings(ctx context.Context, artistID string, f compose.StoreForm) (*domain.StoreSettings, error) {
	settings, err := compose.Store(artistID, f)
	if err != nil {
		return nil, err
	}
	var out *domain.StoreSettings
	err = s.mutate(ctx, func(ctx context.Context) error {
		saved, err := s.api.UpdateStoreSettings(ctx, settings)
		out = saved
		return err
	}, querycache.StoreSettings(artistID))
	return out, err
}

func (s *Session) SaveProfile(ctx context.Context, f compose.ProfileForm) error {
	p, err := compose.Profile(f)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(ctx context.Context) error {
		return s.api.SaveCallerProfile(ctx, p)
	}, querycache.KeyCallerProfile, querycache.KeyCallerRole)
}

func (s *Session) AssignRole(ctx context.Context, principal string, role domain.Role) error {
	if !role.Valid() {
		return domain.Invalid("role", "must be admin, user or guest")
	}
	return s.mutate(ctx, func(ctx context.Context) error {
		return s.api.AssignRole(ctx, principal, role)
	}, querycache.KeyCallerRole)
}

func (s *Session) SetCommissionRate(ctx context.Context, input string) (int, error) {
	rate, err := compose.CommissionRate(input)
	if err != nil {
		return 0, err
	}
	err = s.mutate(ctx, func(ctx context.Context) error {
		return s.api.SetCommissionRate(ctx, rate)
	}, querycache.KeyCommissionRate)
	return rate, err
}

func (s *Session) SetPaymentConfiguration(ctx context.Context, f compose.PaymentForm) error {
	cfg, err := compose.Payment(f)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(ctx context.Context) error {
		return s.api.SetPaymentConfiguration(ctx, cfg)
	}, querycache.KeyPaymentConfigured)
}

func (s *Session) SetAdminPaymentAccount(ctx context.Context, accountID string) error {
	accountID, err := compose.PaymentAccount(accountID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(ctx context.Context) error {
		return s.api.SetAdminPaymentAccount(ctx, accountID)
	}, querycache.KeyAdminAccount)
}
