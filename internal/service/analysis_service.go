package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sellerdesk/stockwise/backend-go/internal/cache"
	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
	"github.com/sellerdesk/stockwise/backend-go/internal/engine"
	"github.com/sellerdesk/stockwise/backend-go/internal/provider"
	"github.com/sellerdesk/stockwise/backend-go/internal/repository"
	"github.com/sellerdesk/stockwise/backend-go/internal/storage"
	"golang.org/x/sync/errgroup"
)

// AnalysisService wires providers, cache, persisted overrides and the
// pure engine together. Results are always recomputed from the latest
// snapshot on read; only provider payloads and user overrides are
// ever stored.
type AnalysisService struct {
	providers  provider.Providers
	snapshots  *provider.SnapshotTable
	store      cache.Store
	repo       repository.CostInputsRepository
	archive    storage.SnapshotArchive
	analyzer   *engine.Analyzer
	normalizer *engine.Normalizer
	periodDays int
	clock      func() time.Time
}

// Options carries the service dependencies.
type Options struct {
	Providers  provider.Providers
	Cache      cache.Store
	Repo       repository.CostInputsRepository
	Archive    storage.SnapshotArchive
	Params     engine.Params
	Rates      engine.StorageRateTable
	PeriodDays int
}

func NewAnalysisService(opts Options) *AnalysisService {
	if opts.Cache == nil {
		opts.Cache = cache.NewMemoryStore()
	}
	if opts.Repo == nil {
		opts.Repo = repository.NewMemoryCostInputsRepository()
	}
	if opts.Archive == nil {
		opts.Archive = storage.NoopArchive{}
	}
	if opts.PeriodDays <= 0 {
		opts.PeriodDays = 30
	}

	return &AnalysisService{
		providers:  opts.Providers,
		snapshots:  provider.NewSnapshotTable(),
		store:      opts.Cache,
		repo:       opts.Repo,
		archive:    opts.Archive,
		analyzer:   engine.NewAnalyzer(opts.Params),
		normalizer: engine.NewNormalizer(opts.Params, opts.Rates),
		periodDays: opts.PeriodDays,
		clock:      time.Now,
	}
}

// SetClock replaces the time source. Test hook.
func (s *AnalysisService) SetClock(clock func() time.Time) {
	s.clock = clock
}

// Refresh brings the store's three datasets up to date. The fetches
// run concurrently and independently: one provider failing leaves its
// previous snapshot in place and the analysis degrades to heuristics
// for that dataset. Without force, a cached copy short-circuits the
// remote call.
func (s *AnalysisService) Refresh(ctx context.Context, storeID string, force bool) error {
	dateTo := s.clock()
	dateFrom := dateTo.AddDate(0, 0, -s.periodDays)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.refreshDataset(gctx, storeID, domain.DatasetRemains, force, func() (interface{}, error) {
			items, err := s.providers.Remains.FetchWarehouseRemains(gctx)
			return items, err
		}, func(data []byte) (interface{}, error) {
			var items []domain.WarehouseItem
			err := json.Unmarshal(data, &items)
			return items, err
		})
		return nil
	})

	g.Go(func() error {
		s.refreshDataset(gctx, storeID, domain.DatasetStorageLedger, force, func() (interface{}, error) {
			ledger, err := s.providers.Storage.FetchStorageLedger(gctx, dateFrom, dateTo)
			return ledger, err
		}, func(data []byte) (interface{}, error) {
			var ledger []domain.StorageLedgerRow
			err := json.Unmarshal(data, &ledger)
			return ledger, err
		})
		return nil
	})

	g.Go(func() error {
		s.refreshDataset(gctx, storeID, domain.DatasetSalesVelocity, force, func() (interface{}, error) {
			sales, err := s.providers.Sales.FetchAverageDailySales(gctx, dateFrom, dateTo)
			return sales, err
		}, func(data []byte) (interface{}, error) {
			sales := make(map[int64]float64)
			err := json.Unmarshal(data, &sales)
			return sales, err
		})
		return nil
	})

	return g.Wait()
}

// refreshDataset loads one dataset from cache or provider and commits
// it to the snapshot table under a generation guard.
func (s *AnalysisService) refreshDataset(
	ctx context.Context,
	storeID string,
	dataset domain.Dataset,
	force bool,
	fetch func() (interface{}, error),
	decode func([]byte) (interface{}, error),
) {
	cacheKey := cache.Key{Dataset: dataset, StoreID: storeID}
	snapKey := provider.SnapshotKey{Dataset: dataset, StoreID: storeID}

	if !force {
		if data, ok, err := s.store.Get(ctx, cacheKey); err == nil && ok {
			payload, err := decode(data)
			if err == nil {
				gen := s.snapshots.Begin(snapKey)
				s.snapshots.Commit(snapKey, gen, payload)
				return
			}
			log.Warn().Err(err).Str("dataset", string(dataset)).Msg("analysis: unreadable cache record, refetching")
		} else if err != nil {
			log.Warn().Err(err).Str("dataset", string(dataset)).Msg("analysis: cache get failed")
		}
	}

	gen := s.snapshots.Begin(snapKey)

	payload, err := fetch()
	if err != nil {
		// Degraded, not blocked: keep whatever snapshot we had
		log.Warn().Err(err).Str("dataset", string(dataset)).Str("store_id", storeID).
			Msg("analysis: provider fetch failed, keeping previous data")
		return
	}

	if !s.snapshots.Commit(snapKey, gen, payload) {
		log.Debug().Str("dataset", string(dataset)).Str("store_id", storeID).
			Msg("analysis: discarding stale fetch completion")
		return
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		log.Warn().Err(err).Str("dataset", string(dataset)).Msg("analysis: encode payload for cache")
		return
	}

	if err := s.store.Save(ctx, cacheKey, encoded); err != nil {
		log.Warn().Err(err).Str("dataset", string(dataset)).Msg("analysis: cache save failed")
	}

	if err := s.archive.ArchivePayload(ctx, dataset, storeID, encoded); err != nil {
		log.Warn().Err(err).Str("dataset", string(dataset)).Msg("analysis: snapshot archive failed")
	}
}

// Results recomputes the full analysis for a store and applies the
// presentation filter.
func (s *AnalysisService) Results(ctx context.Context, storeID string, filter domain.ResultFilter) ([]domain.AnalysisResult, error) {
	results, err := s.analyzeAll(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return engine.Query(results, filter), nil
}

// Summary recomputes the analysis and rolls it up against targetDate.
func (s *AnalysisService) Summary(ctx context.Context, storeID string, targetDate time.Time) (domain.AnalysisSummary, error) {
	results, err := s.analyzeAll(ctx, storeID)
	if err != nil {
		return domain.AnalysisSummary{}, err
	}
	return engine.Summarize(results, targetDate), nil
}

// SaveCostInputs merges explicit user edits into the persisted
// overrides for the store.
func (s *AnalysisService) SaveCostInputs(ctx context.Context, storeID string, edits []domain.CostInputEdit) error {
	overrides, err := s.repo.Load(ctx, storeID)
	if err != nil {
		// Unreadable persisted state resets to defaults rather than
		// failing the edit
		log.Warn().Err(err).Str("store_id", storeID).Msg("analysis: loading overrides failed, starting fresh")
		overrides = domain.NewCostOverrides()
	}

	overrides = repository.ApplyEdits(overrides, edits)
	return s.repo.Save(ctx, storeID, overrides)
}

// Freshness reports per-dataset cache age for display.
func (s *AnalysisService) Freshness(ctx context.Context, storeID string) ([]domain.DatasetFreshness, error) {
	freshness := make([]domain.DatasetFreshness, 0, len(domain.Datasets()))
	for _, dataset := range domain.Datasets() {
		age, ok, err := s.store.Age(ctx, cache.Key{Dataset: dataset, StoreID: storeID})
		if err != nil {
			return nil, err
		}
		entry := domain.DatasetFreshness{Dataset: string(dataset), Cached: ok}
		if ok {
			entry.AgeSeconds = age.Seconds()
		}
		freshness = append(freshness, entry)
	}
	return freshness, nil
}

// ClearCache drops all cached datasets for a store; the next refresh
// must hit the providers.
func (s *AnalysisService) ClearCache(ctx context.Context, storeID string) error {
	for _, dataset := range domain.Datasets() {
		if err := s.store.Clear(ctx, cache.Key{Dataset: dataset, StoreID: storeID}); err != nil {
			return err
		}
	}
	return nil
}

func (s *AnalysisService) analyzeAll(ctx context.Context, storeID string) ([]domain.AnalysisResult, error) {
	snapshot := s.snapshots.Current(storeID)

	overrides, err := s.repo.Load(ctx, storeID)
	if err != nil {
		log.Warn().Err(err).Str("store_id", storeID).Msg("analysis: loading overrides failed, using defaults")
		overrides = domain.NewCostOverrides()
	}

	inputs := s.normalizer.Normalize(snapshot.Items, overrides, snapshot.Sales, snapshot.Ledger, s.periodDays)
	return s.analyzer.AnalyzeAll(snapshot.Items, inputs, s.clock()), nil
}
