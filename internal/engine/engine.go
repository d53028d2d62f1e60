// Package engine runs one scan pass: load the seen-set, search every query,
// notify novel listings, and persist the grown set.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cam71101/vinted-scanner/internal/metrics"
	"github.com/cam71101/vinted-scanner/internal/notify"
	"github.com/cam71101/vinted-scanner/internal/store"
	"github.com/cam71101/vinted-scanner/internal/vinted"
	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

const (
	tracerName = "github.com/cam71101/vinted-scanner/internal/engine"

	defaultListingDelay = time.Second
	defaultQueryDelay   = 2 * time.Second
	defaultStoreTimeout = 15 * time.Second
)

// Engine orchestrates a scan over the catalog, the seen-set store, and the
// notifier.
type Engine struct {
	catalog  vinted.CatalogClient
	seen     store.SeenStore
	notifier notify.Notifier
	log      *slog.Logger
	tracer   trace.Tracer

	listingDelay time.Duration
	queryDelay   time.Duration
	storeTimeout time.Duration
	enrich       bool
	dryRun       bool
	retryFailed  bool
	runID        string
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(
	c vinted.CatalogClient,
	s store.SeenStore,
	n notify.Notifier,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		catalog:      c,
		seen:         s,
		notifier:     n,
		log:          slog.Default(),
		tracer:       otel.Tracer(tracerName),
		listingDelay: defaultListingDelay,
		queryDelay:   defaultQueryDelay,
		storeTimeout: defaultStoreTimeout,
		enrich:       true,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithListingDelay sets the pause after each novel listing.
func WithListingDelay(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.listingDelay = d
	}
}

// WithQueryDelay sets the pause between queries.
func WithQueryDelay(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.queryDelay = d
	}
}

// WithEnrichment toggles the per-listing detail fetch.
func WithEnrichment(enabled bool) EngineOption {
	return func(e *Engine) {
		e.enrich = enabled
	}
}

// WithDryRun disables notification sends and the final save.
func WithDryRun(dryRun bool) EngineOption {
	return func(e *Engine) {
		e.dryRun = dryRun
	}
}

// WithRetryFailedNotifications keeps listings whose notification failed out
// of the persisted set so the next run reports them again.
func WithRetryFailedNotifications(retry bool) EngineOption {
	return func(e *Engine) {
		e.retryFailed = retry
	}
}

// WithStoreTimeout bounds each seen-set load and save.
func WithStoreTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.storeTimeout = d
		}
	}
}

// WithTracer sets the tracer used for scan and query spans.
func WithTracer(t trace.Tracer) EngineOption {
	return func(e *Engine) {
		e.tracer = t
	}
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) EngineOption {
	return func(e *Engine) {
		e.runID = id
	}
}

// callBudget is implemented by catalog clients that meter their calls.
type callBudget interface {
	CallBudget() (used, remaining int64)
}

// scanState is the working state of one pass.
type scanState struct {
	log      *slog.Logger
	working  domain.SeenSet
	observed domain.SeenSet
	result   *domain.ScanResult
}

// RunScan executes one pass over queries. Failures of individual queries,
// enrichment, notification, and persistence are logged and counted, never
// returned. The returned error is non-nil only when ctx ended the pass early;
// the working set is persisted in that case too.
func (eng *Engine) RunScan(ctx context.Context, queries []domain.Query) (*domain.ScanResult, error) {
	start := time.Now()

	runID := eng.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	log := eng.log.With("run_id", runID)

	ctx, span := eng.tracer.Start(ctx, "scan", trace.WithAttributes(
		attribute.String("scan.run_id", runID),
		attribute.Int("scan.queries", len(queries)),
		attribute.Bool("scan.dry_run", eng.dryRun),
	))
	defer span.End()

	res := &domain.ScanResult{RunID: runID, Queries: len(queries)}

	if len(queries) == 0 {
		log.Warn("no queries configured, nothing to do")
		res.Duration = time.Since(start)
		return res, nil
	}

	log.Info("starting scan", "queries", len(queries), "dry_run", eng.dryRun)

	loaded := eng.loadSeen(ctx, log)
	res.Loaded = loaded.Len()
	metrics.SeenSetSize.Set(float64(loaded.Len()))

	st := &scanState{
		log:      log,
		working:  loaded.Clone(),
		observed: domain.NewSeenSet(),
		result:   res,
	}

	if err := eng.catalog.Warmup(ctx); err != nil {
		log.Warn("session warm-up failed, continuing without cookies", "error", err)
	}

	runErr := eng.runQueries(ctx, st, queries)

	eng.persist(ctx, st)

	res.Tracked = st.working.Len()
	res.Duration = time.Since(start)
	remaining := eng.recordCallBudget(res)
	metrics.SeenSetSize.Set(float64(res.Tracked))
	metrics.ScanDuration.Observe(res.Duration.Seconds())

	span.SetAttributes(
		attribute.Int("scan.novel", res.Novel),
		attribute.Int("scan.failed_queries", res.FailedQueries),
		attribute.Int("scan.tracked", res.Tracked),
	)

	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, "scan interrupted")
		log.Warn("scan interrupted", "error", runErr, "novel", res.Novel, "tracked", res.Tracked)
		return res, fmt.Errorf("scan interrupted: %w", runErr)
	}

	metrics.ScanLastSuccessTimestamp.SetToCurrentTime()
	log.Info("scan complete",
		"novel", res.Novel,
		"tracked", res.Tracked,
		"listings", res.Listings,
		"failed_queries", res.FailedQueries,
		"notify_failures", res.NotifyFailures,
		"persisted", res.Persisted,
		"catalog_calls", res.CatalogCalls,
		"calls_remaining", remaining,
		"duration", res.Duration,
	)
	return res, nil
}

// recordCallBudget copies the catalog's call accounting into res and the
// remaining-calls gauge. It returns the remaining calls, -1 when unmetered.
func (eng *Engine) recordCallBudget(res *domain.ScanResult) int64 {
	b, ok := eng.catalog.(callBudget)
	if !ok {
		return -1
	}
	used, remaining := b.CallBudget()
	res.CatalogCalls = int(used)
	metrics.CatalogCallsRemaining.Set(float64(remaining))
	return remaining
}

func (eng *Engine) runQueries(ctx context.Context, st *scanState, queries []domain.Query) error {
	for i, q := range queries {
		if err := ctx.Err(); err != nil {
			return err
		}

		stop, err := eng.processQuery(ctx, st, q, i, len(queries))
		if err != nil {
			return err
		}
		if stop {
			break
		}

		// Stagger between queries to avoid API bursts.
		if i < len(queries)-1 {
			if err := sleep(ctx, eng.queryDelay); err != nil {
				return err
			}
		}
	}
	return nil
}

// processQuery searches one query and handles its listings. stop is true
// when the catalog call budget is spent and no further query can run.
func (eng *Engine) processQuery(
	ctx context.Context,
	st *scanState,
	q domain.Query,
	idx, total int,
) (stop bool, err error) {
	label := q.Label()
	log := st.log.With("query", label)

	ctx, span := eng.tracer.Start(ctx, "scan.query", trace.WithAttributes(
		attribute.String("query.label", label),
		attribute.Int("query.index", idx),
	))
	defer span.End()

	log.Info("processing query", "position", idx+1, "total", total)
	metrics.QueriesTotal.Inc()

	resp, searchErr := eng.catalog.Search(ctx, q)
	if searchErr != nil {
		st.result.FailedQueries++
		metrics.QueryFailuresTotal.Inc()
		span.RecordError(searchErr)
		span.SetStatus(codes.Error, "search failed")

		if vinted.IsBudgetExhausted(searchErr) {
			log.Warn("catalog call budget exhausted, stopping scan", "error", searchErr)
			return true, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		log.Error("search failed", "error", searchErr)
		return false, nil
	}

	log.Info("search complete", "items", len(resp.Items))
	span.SetAttributes(attribute.Int("query.items", len(resp.Items)))

	for j := range resp.Items {
		if err := eng.processItem(ctx, st, log, &resp.Items[j]); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (eng *Engine) processItem(
	ctx context.Context,
	st *scanState,
	log *slog.Logger,
	item *vinted.Item,
) error {
	id := string(item.ID)
	if id == "" {
		log.Warn("listing without id skipped", "title", item.Title)
		return nil
	}

	st.result.Listings++
	metrics.ListingsTotal.Inc()

	if st.working.Has(id) || st.observed.Has(id) {
		log.Debug("already seen", "listing_id", id, "title", item.Title)
		return nil
	}
	st.observed.Add(id)

	st.result.Novel++
	metrics.NovelListingsTotal.Inc()
	log.Info("new listing", "listing_id", id, "title", item.Title)

	if eng.enrich {
		detail, err := eng.catalog.ItemDetails(ctx, id)
		if err != nil {
			metrics.EnrichmentFailuresTotal.Inc()
			log.Warn("item detail fetch failed, using search summary", "listing_id", id, "error", err)
		} else {
			item.Merge(detail)
		}
	}

	listing := item.ToListing()
	delivered := true

	if eng.dryRun {
		log.Info("dry run, notification skipped", "listing_id", id, "url", listing.URL)
	} else if err := eng.notifier.SendListing(ctx, &listing); err != nil {
		delivered = false
		st.result.NotifyFailures++
		metrics.NotificationFailuresTotal.Inc()
		log.Error("notification failed", "listing_id", id, "error", err)
	}

	if delivered || !eng.retryFailed {
		st.working.Add(id)
	}

	return sleep(ctx, eng.listingDelay)
}

// loadSeen returns the persisted set. Load failures fall open to an empty
// set.
func (eng *Engine) loadSeen(ctx context.Context, log *slog.Logger) domain.SeenSet {
	loadCtx, cancel := context.WithTimeout(ctx, eng.storeTimeout)
	defer cancel()

	set, err := eng.seen.Load(loadCtx)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(eng.seen.Name(), "load").Inc()
		log.Warn("loading seen-set failed, treating every listing as new",
			"backend", eng.seen.Name(),
			"error", err,
		)
		return domain.NewSeenSet()
	}
	if set == nil {
		set = domain.NewSeenSet()
	}

	log.Info("loaded seen-set", "backend", eng.seen.Name(), "count", set.Len())
	return set
}

// persist saves the working set once. It runs detached from ctx so an
// interrupted pass still records what it reported.
func (eng *Engine) persist(ctx context.Context, st *scanState) {
	if eng.dryRun {
		st.log.Info("dry run, seen-set not persisted", "count", st.working.Len())
		return
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eng.storeTimeout)
	defer cancel()

	if err := eng.seen.Save(saveCtx, st.working); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(eng.seen.Name(), "save").Inc()
		st.log.Error("saving seen-set failed, new listings may be reported again next run",
			"backend", eng.seen.Name(),
			"error", err,
		)
		return
	}

	st.result.Persisted = true
	st.log.Info("saved seen-set", "backend", eng.seen.Name(), "count", st.working.Len())
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
