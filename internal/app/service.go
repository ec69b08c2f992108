// Package service assembles reports over the loaded dataset and implements
// the dependencies required by the HTTP API and the MCP tools.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/iplstats/internal/adapters/repository"
	"github.com/okian/iplstats/internal/analytics"
	"github.com/okian/iplstats/internal/domain/cache"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/pkg/logger"
	"github.com/okian/iplstats/pkg/metrics"
)

// BootstrapFunc produces the initial datasets for an empty store.
type BootstrapFunc func(ctx context.Context) ([]model.Match, []model.Delivery, error)

// snapshot is one loaded dataset. gen changes on every reload and is part
// of every cache key, so a result computed on an old snapshot is never
// served after a reload.
type snapshot struct {
	ds     *analytics.Dataset
	gen    int64
	loaded time.Time
}

// Service implements the report dependencies of the API.
type Service struct {
	mu sync.RWMutex

	store     repository.Store
	ownsStore bool
	cache     cache.Cache
	current   atomic.Pointer[snapshot]
	loads     atomic.Int64

	// Configuration
	cacheTTL  time.Duration
	cacheSize int
	maxLimit  int
	bootstrap BootstrapFunc

	// State
	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the store datasets are loaded from. The caller keeps
// ownership and closes it.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCacheTTL sets how long report results are cached. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl >= 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithCacheSize bounds the number of cached results.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// WithMaxLimit sets the largest accepted row limit.
func WithMaxLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLimit = limit
		}
	}
}

// WithBootstrap seeds an empty store on Start.
func WithBootstrap(fn BootstrapFunc) Option {
	return func(s *Service) {
		s.bootstrap = fn
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cacheTTL:  30 * time.Second,
		cacheSize: 1024,
		maxLimit:  analytics.MaxDeliveryLimit,
		stopCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the dataset and begins sampling runtime metrics.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting analytics service...")

	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.ownsStore = true
	}
	s.cache = cache.New(cache.WithTTL(s.cacheTTL), cache.WithMaxSize(s.cacheSize))

	if err := s.seed(ctx); err != nil {
		return err
	}
	if err := s.reload(ctx); err != nil {
		return err
	}

	s.stopCh = make(chan struct{})
	s.wg.Add(1)
	go s.sampleRuntime()

	s.started = true
	snap := s.current.Load()
	s.logger.Info(ctx, "analytics service started",
		logger.Int("matches", snap.ds.MatchCount()),
		logger.Int("deliveries", snap.ds.DeliveryCount()),
		logger.Int("cacheSize", s.cacheSize),
		logger.String("cacheTTL", s.cacheTTL.String()),
	)
	return nil
}

// seed fills an empty store from the bootstrap function.
func (s *Service) seed(ctx context.Context) error {
	if s.bootstrap == nil {
		return nil
	}
	counts, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count stored datasets: %w", err)
	}
	if counts.Matches > 0 {
		return nil
	}
	matches, deliveries, err := s.bootstrap(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap datasets: %w", err)
	}
	if err := s.store.ReplaceAll(ctx, matches, deliveries); err != nil {
		return fmt.Errorf("store bootstrap datasets: %w", err)
	}
	s.logger.Info(ctx, "seeded empty store",
		logger.Int("matches", len(matches)),
		logger.Int("deliveries", len(deliveries)),
	)
	return nil
}

// Reload rebuilds the dataset from the store and drops cached results.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return ErrNotStarted
	}
	return s.reload(ctx)
}

func (s *Service) reload(ctx context.Context) error {
	start := time.Now()

	var (
		matches    []model.Match
		deliveries []model.Delivery
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		matches, err = s.store.Matches(gctx)
		return err
	})
	g.Go(func() (err error) {
		deliveries, err = s.store.Deliveries(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load datasets: %w", err)
	}

	snap := &snapshot{
		ds:     analytics.NewDataset(matches, deliveries),
		gen:    s.loads.Add(1),
		loaded: time.Now(),
	}
	s.current.Store(snap)
	s.cache.Purge(ctx)

	elapsed := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordDatasetLoad(snap.ds.MatchCount(), snap.ds.DeliveryCount(), elapsed)
	s.logger.Info(ctx, "dataset loaded",
		logger.Int("matches", snap.ds.MatchCount()),
		logger.Int("deliveries", snap.ds.DeliveryCount()),
		logger.Int("seasons", len(snap.ds.Seasons())),
		logger.Float64("ms", elapsed),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping analytics service...")

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.wg.Wait()

	if s.ownsStore && s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "failed to close store", logger.Error(err))
		}
		s.store = nil
		s.ownsStore = false
	}
	if s.cache != nil {
		s.cache.Purge(context.Background())
	}

	s.started = false
	s.logger.Info(context.Background(), "analytics service stopped")
}

// sampleRuntime publishes memory, goroutine and GC gauges until Stop.
func (s *Service) sampleRuntime() {
	defer s.wg.Done()
	ticker := time.NewTicker(metrics.RefreshInterval())
	defer ticker.Stop()

	var lastGC uint32
	for {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		metrics.UpdateSystemMemoryUsage(ms.Alloc)
		metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
		if ms.NumGC != lastGC {
			metrics.RecordSystemGCPauseTime(float64(ms.PauseNs[(ms.NumGC+255)%256]) / 1e6)
			lastGC = ms.NumGC
		}

		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
		}
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":   s.started,
		"cacheTTL":  s.cacheTTL.String(),
		"cacheSize": s.cacheSize,
		"maxLimit":  s.maxLimit,
		"loads":     s.loads.Load(),
	}

	if snap := s.current.Load(); snap != nil {
		stats["matches"] = snap.ds.MatchCount()
		stats["deliveries"] = snap.ds.DeliveryCount()
		stats["seasons"] = snap.ds.Seasons()
		stats["loadedAt"] = snap.loaded.UTC().Format(time.RFC3339)
	}
	if s.cache != nil {
		entries := s.cache.Size()
		stats["cacheEntries"] = entries
		metrics.UpdateCacheEntries(int(entries))
	}
	return stats
}

// Dataset returns the currently loaded snapshot, or nil before Start.
func (s *Service) Dataset() *analytics.Dataset {
	if snap := s.current.Load(); snap != nil {
		return snap.ds
	}
	return nil
}

// run executes one report through the cache with panic recovery.
// Cached values are shared between callers and must not be modified.
func run[T any](ctx context.Context, s *Service, report string, f analytics.Filter, fn func(ds *analytics.Dataset) (T, error)) (out T, err error) {
	op := "service." + report
	start := time.Now()

	snap := s.current.Load()
	if snap == nil {
		return out, &Error{Op: op, Kind: ErrInternal, Err: ErrNotStarted}
	}
	if err := ctx.Err(); err != nil {
		return out, &Error{Op: op, Kind: ErrInternal, Err: err}
	}
	if err := s.validate(f); err != nil {
		metrics.RecordReportError(report, CodeBadRequest)
		return out, Wrap(op, err)
	}

	key := fmt.Sprintf("%d|%s|%s", snap.gen, report, f.Key())
	if v, ok := s.cache.Get(ctx, report, key); ok {
		if cached, ok := v.(T); ok {
			return cached, nil
		}
	}

	defer func() {
		if r := recover(); r != nil {
			var zero T
			out = zero
			err = &Error{Op: op, Kind: ErrInternal, Err: fmt.Errorf("panic: %v", r)}
			s.logger.Error(ctx, "report panicked",
				logger.String("op", op),
				logger.Any("panic", r),
				logger.String("requestId", logger.RequestID(ctx)),
			)
			metrics.RecordReportError(report, CodeInternal)
		}
	}()

	out, err = fn(snap.ds)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		var zero T
		err = Wrap(op, err)
		code := Code(err)
		if code == CodeInternal {
			s.logger.Error(ctx, "report failed",
				logger.String("op", op),
				logger.Error(err),
				logger.String("requestId", logger.RequestID(ctx)),
			)
		} else {
			s.logger.Debug(ctx, "report rejected", logger.String("op", op), logger.String("code", code), logger.Error(err))
		}
		metrics.RecordReportError(report, code)
		return zero, err
	}

	s.cache.Set(ctx, key, out)
	metrics.RecordReport(report, float64(time.Since(start).Microseconds())/1000)
	return out, nil
}

// validate applies the checks shared by every report.
func (s *Service) validate(f analytics.Filter) error {
	if f.Season != 0 {
		if err := analytics.ValidateSeason(f.Season); err != nil {
			return err
		}
	}
	if f.Limit < 0 || f.Limit > s.maxLimit {
		return fmt.Errorf("%w: limit %d not in 1-%d", analytics.ErrInvalidFilter, f.Limit, s.maxLimit)
	}
	if f.Page < 0 || f.Inning < 0 || f.MatchID < 0 {
		return fmt.Errorf("%w: negative page, inning or match id", analytics.ErrInvalidFilter)
	}
	return nil
}

// required returns a bad-request error naming the first empty value.
func required(op string, pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return NewKind(op, ErrBadRequest, "%s is required", pairs[i])
		}
	}
	return nil
}

// IsStarted reports whether Start has completed.
func (s *Service) IsStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}
