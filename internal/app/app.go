// Package app wires the marketplace API process.
package app

import (
	"context"
	"errors"
	"net/http"

	"artisanhub/internal/config"
	"artisanhub/internal/db"
	"artisanhub/internal/events"
	"artisanhub/internal/httpserver"
	"artisanhub/internal/payment"
	artistrepo "artisanhub/internal/repository/artist"
	platformrepo "artisanhub/internal/repository/platform"
	productrepo "artisanhub/internal/repository/product"
	profilerepo "artisanhub/internal/repository/profile"
	storerepo "artisanhub/internal/repository/store"
	"artisanhub/internal/secret"
	artistsvc "artisanhub/internal/service/artist"
	checkoutsvc "artisanhub/internal/service/checkout"
	platformsvc "artisanhub/internal/service/platform"
	productsvc "artisanhub/internal/service/product"
	profilesvc "artisanhub/internal/service/profile"
	storesvc "artisanhub/internal/service/store"
	"artisanhub/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// New builds the API application. extra options are appended last, which lets
// callers add invokes or replace providers.
func New(conf *config.Config, logger *zap.Logger, extra ...fx.Option) *fx.App {
	opts := []fx.Option{
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		fx.Supply(conf, logger),
		fx.Provide(
			newPool,
			newSealer,
			newPublisher,
			newBlobStore,
			newGateway,
			newRegistry,

			newProductRepo,
			newArtistRepo,
			newProfileRepo,
			newStoreRepo,
			newPlatformRepo,

			newProfileService,
			newArtistService,
			newProductService,
			newStoreService,
			newPlatformService,
			newCheckoutService,

			newDeps,
			newServer,
		),
		fx.Invoke(runServer),
	}
	return fx.New(append(opts, extra...)...)
}

func newPool(lc fx.Lifecycle, conf *config.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	pool, err := db.Connect(context.Background(), conf.DB.DSN)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			logger.Info("closing database pool")
			pool.Close()
			return nil
		},
	})
	return pool, nil
}

func newSealer(conf *config.Config) (*secret.Sealer, error) {
	return secret.FromBase64(conf.Secrets.Key)
}

func newPublisher(lc fx.Lifecycle, conf *config.Config, logger *zap.Logger) (events.Publisher, error) {
	if !conf.Kafka.Enabled {
		logger.Info("kafka disabled, events are dropped")
		return events.Noop{}, nil
	}
	k, err := events.NewKafka(conf.Kafka.Brokers, conf.Kafka.Topic, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return k.Close() },
	})
	return k, nil
}

func newBlobStore(conf *config.Config, logger *zap.Logger) storage.BlobStore {
	if !conf.Storage.Enabled() {
		logger.Warn("blob storage not configured, uploads are refused")
		return storage.Disabled{}
	}
	return storage.NewSupabase(conf.Storage.URL, conf.Storage.Key, conf.Storage.Bucket, logger)
}

func newGateway(conf *config.Config, logger *zap.Logger) payment.Gateway {
	if conf.Payment.Provider == "none" {
		return payment.Disabled{}
	}
	return payment.NewStripe(logger)
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newProductRepo(pool *pgxpool.Pool, logger *zap.Logger) productrepo.Repository {
	return productrepo.NewPostgres(pool, logger)
}

func newArtistRepo(pool *pgxpool.Pool, logger *zap.Logger) artistrepo.Repository {
	return artistrepo.NewPostgres(pool, logger)
}

func newProfileRepo(pool *pgxpool.Pool, sealer *secret.Sealer, logger *zap.Logger) profilerepo.Repository {
	return profilerepo.NewPostgres(pool, sealer, logger)
}

func newStoreRepo(pool *pgxpool.Pool, logger *zap.Logger) storerepo.Repository {
	return storerepo.NewPostgres(pool, logger)
}

func newPlatformRepo(pool *pgxpool.Pool, sealer *secret.Sealer, logger *zap.Logger) platformrepo.Repository {
	return platformrepo.NewPostgres(pool, sealer, logger)
}

func newProfileService(repo profilerepo.Repository, conf *config.Config, logger *zap.Logger) *profilesvc.Service {
	return profilesvc.New(repo, conf.Auth.AdminPrincipals, logger)
}

func newArtistService(repo artistrepo.Repository, profiles *profilesvc.Service, pub events.Publisher, logger *zap.Logger) *artistsvc.Service {
	return artistsvc.New(repo, profiles, pub, logger)
}

func newProductService(repo productrepo.Repository, artists artistrepo.Repository, profiles *profilesvc.Service, pub events.Publisher, logger *zap.Logger) *productsvc.Service {
	return productsvc.New(repo, artists, profiles, pub, logger)
}

func newStoreService(repo storerepo.Repository, profiles *profilesvc.Service, logger *zap.Logger) *storesvc.Service {
	return storesvc.New(repo, profiles, logger)
}

func newPlatformService(repo platformrepo.Repository, pub events.Publisher, logger *zap.Logger) *platformsvc.Service {
	return platformsvc.New(repo, pub, logger)
}

func newCheckoutService(platform *platformsvc.Service, gw payment.Gateway, pub events.Publisher, conf *config.Config, logger *zap.Logger) *checkoutsvc.Service {
	return checkoutsvc.New(platform, gw, pub, conf.Checkout.BaseURL, logger)
}

type depsIn struct {
	fx.In

	Products *productsvc.Service
	Artists  *artistsvc.Service
	Profiles *profilesvc.Service
	Stores   *storesvc.Service
	Platform *platformsvc.Service
	Checkout *checkoutsvc.Service
	Blobs    storage.BlobStore
}

func newDeps(in depsIn) httpserver.Deps {
	return httpserver.Deps{
		Products: in.Products,
		Artists:  in.Artists,
		Profiles: in.Profiles,
		Stores:   in.Stores,
		Platform: in.Platform,
		Checkout: in.Checkout,
		Blobs:    in.Blobs,
	}
}

func newServer(conf *config.Config, logger *zap.Logger, pool *pgxpool.Pool, reg *prometheus.Registry, deps httpserver.Deps) (*httpserver.Server, error) {
	return httpserver.New(httpserver.Options{
		Addr:           conf.HTTP.Addr,
		AllowedOrigins: conf.HTTP.AllowedOrigins,
		MaxUploadBytes: conf.HTTP.MaxUploadBytes,
		JWTSecret:      []byte(conf.Auth.JWTSecret),
		Registry:       reg,
	}, logger, pool, deps)
}

func runServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, srv *httpserver.Server, conf *config.Config, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, conf.HTTP.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
}
