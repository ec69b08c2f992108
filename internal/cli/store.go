package cli

import (
	"context"
	"fmt"

	"github.com/okian/iplstats/internal/adapters/ingest"
	"github.com/okian/iplstats/internal/adapters/repository"
	service "github.com/okian/iplstats/internal/app"
	"github.com/okian/iplstats/internal/config"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/fixtures"
	"github.com/okian/iplstats/pkg/logger"
)

const firstSeason = 2008

func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	store, err := repository.Open(ctx, cfg.Backend(), cfg.StoreDSN)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend(), err)
	}
	return store, nil
}

// bootstrapFor picks the seed source for an empty store: CSV files, then a
// Parquet snapshot, then generated fixtures. It returns nil when none is
// configured.
func bootstrapFor(cfg *config.Config) service.BootstrapFunc {
	switch {
	case cfg.HasCSV():
		return func(ctx context.Context) ([]model.Match, []model.Delivery, error) {
			ds, err := ingest.LoadCSV(ctx, cfg.DataMatches, cfg.DataDeliveries)
			if err != nil {
				return nil, nil, err
			}
			return ds.Matches, ds.Deliveries, nil
		}
	case cfg.DataParquetDir != "":
		return func(context.Context) ([]model.Match, []model.Delivery, error) {
			return ingest.ReadParquet(cfg.DataParquetDir)
		}
	case cfg.FixtureSeasons > 0:
		gen := fixtures.New(
			fixtures.WithSeed(cfg.FixtureSeed),
			fixtures.WithSeasons(firstSeason, cfg.FixtureSeasons),
			fixtures.WithLogger(logger.Named("fixtures")),
		)
		return gen.Generate
	}
	return nil
}

// startService opens the configured store and starts a service over it.
// The returned stop func stops the service and then closes the store.
func startService(ctx context.Context, cfg *config.Config) (*service.Service, func(), error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	opts := []service.Option{
		service.WithStore(store),
		service.WithLogger(logger.Named("service")),
		service.WithCacheTTL(cfg.CacheTTL()),
		service.WithCacheSize(cfg.CacheSize),
		service.WithMaxLimit(cfg.MaxLimit),
	}
	if fn := bootstrapFor(cfg); fn != nil {
		opts = append(opts, service.WithBootstrap(fn))
	}
	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	stop := func() {
		svc.Stop()
		if err := store.Close(); err != nil {
			logger.Get().Warn(context.Background(), "failed to close store", logger.Error(err))
		}
	}
	return svc, stop, nil
}
