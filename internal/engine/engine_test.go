package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/cam71101/vinted-scanner/internal/metrics"
	notifyMocks "github.com/cam71101/vinted-scanner/internal/notify/mocks"
	"github.com/cam71101/vinted-scanner/internal/store"
	storeMocks "github.com/cam71101/vinted-scanner/internal/store/mocks"
	"github.com/cam71101/vinted-scanner/internal/vinted"
	vintedMocks "github.com/cam71101/vinted-scanner/internal/vinted/mocks"
	"github.com/cam71101/vinted-scanner/pkg/logger"
	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

// quietLogger returns a logger that discards output for tests.
func quietLogger() *slog.Logger {
	return logger.Discard()
}

func newTestEngine(
	c *vintedMocks.MockCatalogClient,
	s store.SeenStore,
	n *notifyMocks.MockNotifier,
	opts ...EngineOption,
) *Engine {
	base := []EngineOption{
		WithLogger(quietLogger()),
		WithListingDelay(0),
		WithQueryDelay(0),
		WithRunID("test-run"),
	}
	return NewEngine(c, s, n, append(base, opts...)...)
}

func item(id, title string) vinted.Item {
	return vinted.Item{
		ID:    vinted.ItemID(id),
		Title: title,
		Price: vinted.ItemPrice{Amount: "10.0", CurrencyCode: "GBP"},
		URL:   "https://www.vinted.co.uk/items/" + id,
	}
}

func searchResult(items ...vinted.Item) *vinted.SearchResponse {
	return &vinted.SearchResponse{Items: items}
}

func expectStoreName(ms *storeMocks.MockSeenStore) {
	ms.EXPECT().Name().Return("mock").Maybe()
}

// captureSave records the set passed to Save.
func captureSave(ms *storeMocks.MockSeenStore, ret error) *domain.SeenSet {
	var saved domain.SeenSet
	ms.EXPECT().Save(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, ids domain.SeenSet) error {
			saved = ids.Clone()
			return ret
		}).Once()
	return &saved
}

func TestRunScan_NoQueries(t *testing.T) {
	t.Parallel()

	mc := vintedMocks.NewMockCatalogClient(t)
	ms := storeMocks.NewMockSeenStore(t)
	mn := notifyMocks.NewMockNotifier(t)

	eng := newTestEngine(mc, ms, mn)
	res, err := eng.RunScan(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, res.Queries)
	assert.Equal(t, 0, res.Novel)
	assert.False(t, res.Persisted)
}

func TestRunScan_EndToEnd(t *testing.T) {
	t.Parallel()

	mc := vintedMocks.NewMockCatalogClient(t)
	ms := storeMocks.NewMockSeenStore(t)
	mn := notifyMocks.NewMockNotifier(t)
	expectStoreName(ms)

	query := domain.Query{"search_text": "jacket"}

	ms.EXPECT().Load(mock.Anything).Return(domain.NewSeenSet("1"), nil).Once()
	mc.EXPECT().Warmup(mock.Anything).Return(nil).Once()
	mc.EXPECT().Search(mock.Anything, query).
		Return(searchResult(item("1", "Old jacket"), item("2", "New jacket")), nil).Once()
	mc.EXPECT().ItemDetails(mock.Anything, "2").
		Return(&vinted.Item{ID: "2", Description: "Barely worn", BrandTitle: "Barbour"}, nil).Once()
	mn.EXPECT().SendListing(mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
		return l.ID == "2" &&
			l.URL == "https://www.vinted.co.uk/items/2" &&
			l.Description == "Barely worn" &&
			l.Brand == "Barbour"
	})).Return(nil).Once()
	saved := captureSave(ms, nil)

	eng := newTestEngine(mc, ms, mn)
	res, err := eng.RunScan(context.Background(), []domain.Query{query})
	require.NoError(t, err)

	assert.Equal(t, domain.NewSeenSet("1", "2"), *saved)
	assert.Equal(t, 1, res.Novel)
	assert.Equal(t, 2, res.Tracked)
	assert.Equal(t, 1, res.Loaded)
	assert.Equal(t, 2, res.Listings)
	assert.True(t, res.Persisted)
	assert.Equal(t, "test-run", res.RunID)
}

func TestRunScan_IdempotentAcrossRuns(t *testing.T) {
	t.Parallel()

	fs := store.NewFileStore(filepath.Join(t.TempDir(), "seen.json"))
	query := domain.Query{"search_text": "jacket"}

	mc := vintedMocks.NewMockCatalogClient(t)
	mn := notifyMocks.NewMockNotifier(t)

	mc.EXPECT().Warmup(mock.Anything).Return(nil).Times(2)
	mc.EXPECT().Search(mock.Anything, query).
		Return(searchResult(item("10", "A"), item("11", "B")), nil).Times(2)
	mn.EXPECT().SendListing(mock.Anything, mock.Anything).Return(nil).Times(2)

	eng := newTestEngine(mc, fs, mn, WithEnrichment(false))

	first, err := eng.RunScan(context.Background(), []domain.Query{query})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Novel)

	second, err := eng.RunScan(context.Background(), []domain.Query{query})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Novel)
	assert.Equal(t, 2, second.Tracked)
}

func TestRunScan_LoadFailureFallsOpen(t *testing.T) {
	t.Parallel()

	mc := vintedMocks.NewMockCatalogClient(t)
	ms := storeMocks.NewMockSeenStore(t)
	mn := notifyMocks.NewMockNotifier(t)
	expectStoreName(ms)

	ms.EXPECT().Load(mock.Anything).Return(nil, errors.New("gist unreachable")).Once()
	mc.EXPECT().Warmup(mock.Anything).Return(nil).Once()
	mc.EXPECT().Search(mock.Anything, mock.Anything).
		Return(searchResult(item("1", "A"), item("2", "B")), nil).Once()
	mn.EXPECT().SendListing(mock.Anything, mock.Anything).Return(nil).Times(2)
	saved := captureSave(ms, nil)

	eng := newTestEngine(mc, ms, mn, WithEnrichment(false))
	res, err := eng.RunScan(context.Background(), []domain.Query{{"search_text": "x"}})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Novel)
	assert.Equal(t, 0, res.Loaded)
	assert.Equal(t, domain.NewSeenSet("1", "2"), *saved)
}

func TestRunScan_DisabledStoreTreatsEverythingAsNew(t *testing.T) {
	t.Parallel()

	mc := vintedMocks.NewMockCatalogClient(t)
	mn := notifyMocks.NewMockNotifier(t)

	mc.EXPECT().Warmup(mock.Anything).Return(nil).Once()
	mc.EXPECT().Search(mock.Anything, mock.Anything).
		Return(searchResult(item("1", "A"), item("2", "B"), item("3", "C")), nil).Once()
	mn.EXPECT().SendListing(mock.Anything, mock.Anything).Return(nil).Times(3)

	eng := newTestEngine(mc, store.NewDisabledStore(), mn, WithEnrichment(false))
	res, err := eng.RunScan(context.Background(), []domain.Query{{"search_text": "x"}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Novel)
}

func TestRunScan_QueryIsolation(t *testing.T) {
	t.Parallel()

	mc := vintedMocks.NewMockCatalogClient(t)
	ms := storeMocks.NewMockSeenStore(t)
	mn := notifyMocks.NewMockNotifier(t)
	expectStoreName(ms)

	q1 := domain.Query{"search_text": "broken"}
	q2 := domain.Query{"search_text": "fine"}

	ms.EXPECT().Load(mock.Anything).Return(domain.NewSeenSet("a", "b"), nil).Once()
	mc.EXPECT().Warmup(mock.Anything).Return(nil).Once()
	mc.EXPECT().Search(mock.Anything, q1).
		Return(nil, &vinted.StatusError{Endpoint: "search", StatusCode: http.StatusInternalServerError}).Once()
	mc.EXPECT().Search(mock.Anything, q2).
		Return(searchResult(item("c", "C")), nil).Once()
	mn.EXPECT().SendListing(mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
		return l.ID == "c"
	})).Return(nil).Once()
	saved := captureSave(ms, nil)

	eng := newTestEngine(mc, ms, mn, WithEnrichment(false))
	res, err := eng.RunScan(context.Background(), []domain.Query{q1, q2})
	require.NoError(t, err)

	assert.Equal(t, 1, res.FailedQueries)
	assert.Equal(t, 1, res.Novel)
	assert.Equal(t, domain.NewSeenSet("a", "b", "c"), *saved)
}

func TestRunScan_MonotonicGrowth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		searchErr error
		items     []vinted.Item
		notifyErr error
		retry     bool
	}{
		{name: "all queries fail", searchErr: errors.New("boom")},
		{name: "empty result", items: nil},
		{name: "novel listings", items: []vinted.Item{item("n1", "N1")}},
		{name: "notification fails", items: []vinted.Item{item("n1", "N1")}, notifyErr: errors.New("down")},
		{
			name:      "notification fails with retry",
			items:     []vinted.Item{item("n1", "N1")},
			notifyErr: errors.New("down"),
			retry:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loaded := domain.NewSeenSet("a", "b", "c")

			mc := vintedMocks.NewMockCatalogClient(t)
			ms := storeMocks.NewMockSeenStore(t)
			mn := notifyMocks.NewMockNotifier(t)
			expectStoreName(ms)

			ms.EXPECT().Load(mock.Anything).Return(loaded.Clone(), nil).Once()
			mc.EXPECT().Warmup(mock.Anything).Return(nil).Once()
			if tt.searchErr != nil {
				mc.EXPECT().Search(mock.Anything, mock.Anything).Return(nil, tt.searchErr).Times(2)
			} else {
				mc.EXPECT().Search(mock.Anything, mock.Anything).Return(searchResult(tt.items...), nil).Times(2)
			}
			mn.EXPECT().SendListing(mock.Anything, mock.Anything).Return(tt.notifyErr).Maybe()
			saved := captureSave(ms, nil)

			eng := newTestEngine(mc, ms, mn,
				WithEnrichment(false),
				WithRetryFailedNotifications(tt.retry),
			)
			_, err := eng.RunScan(context.Background(), []domain.Query{{"search_text": "1"}, {"search_text": "2"}})
			require.NoError(t, err)

			assert.True(t, saved.Contains(loaded), "persisted set must contain the loaded set")
		})
	}
}

func TestRunScan_NotificationFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		retry     bool
		wantSaved domain.SeenSet
	}{
		{
			name:      "failed listing is marked seen by default",
			wantSaved: domain.NewSeenSet("old", "ok", "fail"),
		},
		{
			name:      "retry leaves failed listing out",
			retry:     true,
			wantSaved: domain.NewSeenSet("old", "ok"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mc := vintedMocks.NewMockCatalogClient(t)
			ms := storeMocks.NewMockSeenStore(t)
			mn := notifyMocks.NewMockNotifier(t)
			expectStoreName(ms)

			ms.EXPECT().Load(mock.Anything).Return(domain.NewSeenSet("old"), nil).Once()
			mc.EXPECT().Warmup(mock.Anything).Return(nil).Once()
			mc.EXPECT().Search(mock.Anything, mock.Anything).
				Return(searchResult(item("old", "O"), item("ok", "K"), item("fail", "F")), nil).Once()
			mn.EXPECT().SendListing(mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
				return l.ID == "ok"
			})).Return(nil).Once()
			mn.EXPECT().SendListing(mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
				return l.ID == "fail"
			})).Return(errors.New("telegram 502")).Once()
			saved := captureSave(ms, nil)

			eng := newTestEngine(mc, ms, mn,
				WithEnrichment(false),
				WithRetryFailedNotifications(tt.retry),
			)
			res, err := eng.RunScan(context.Background(), []domain.Query{{"search_text": "x"}})
			require.NoError(t, err)

			assert.Equal(t, 2, res.Novel)
			assert.Equal(t, 1, res.NotifyFailures)
			assert.Equal(t, tt.wantSaved, *saved)
		})
	}
}

func TestRunScan_EnrichmentFailureKeepsSummary(t *testing.T) {
	t.Parallel()

	mc := vintedMocks.NewMockCatalogClient(t)
	ms := storeMocks.NewMockSeenStore(t)
	mn := notifyMocks.NewMockNotifier(t)
	expectStoreName(ms)

	ms.EXPECT().Load(mock.Anything).Return(domain.NewSeenSet(), nil).Once()
	mc.EXPECT().Warmup(mock.Anything).Return(nil).Once()
	mc.EXPECT().Search(mock.Anything, mock.Anything).Return(searchResult(item("5", "Boots")), nil).Once()
	mc.EXPECT().ItemDetails(mock.Anything, "5").Return(nil, errors.New("timeout")).Once()
	mn.EXPECT().SendListing(mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
		return l.ID == "5" && l.Title == "Boots" && l.Description == ""
	})).Return(nil).Once()
	captureSave(ms, nil)

	eng := newTestEngine(mc, ms, mn)
	res, err := eng.RunScan(context.Background(), []domain.Query{{"search_text": "boots"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Novel)
}

func TestRunScan_DryRun(t *testing.T) {
	t.Parallel()

	mc := vintedMocks.NewMockCatalogClient(t)
	ms := storeMocks.NewMockSeenStore(t)
	mn := notifyMocks.NewMockNotifier(t)
	expectStoreName(ms)

	ms.EXPECT().Load(mock.Anything).Return(domain.NewSeenSet(), nil).Once()
	mc.EXPECT().Warmup(mock.Anything).Return(nil).Once()
	mc.EXPECT().Search(mock.Anything, mock.Anything).Return(searchResult(item("1", "A")), nil).Once()

	eng := newTestEngine(mc, ms, mn, WithEnrichment(false), WithDryRun(true))
	res, err := eng.RunScan(context.Background(), []domain.Query{{"search_text": "x"}})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Novel)
	assert.False(t, res.Persisted)
	mn.AssertNotCalled(t, "SendListing", mock.Anything, mock.Anything)
	ms.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRunScan_BudgetExhaustedStopsQueries(t *testing.T) {
	t.Parallel()

	mc := vintedMocks.NewMockCatalogClient(t)
	ms := storeMocks.NewMockSeenStore(t)
	mn := notifyMocks.NewMockNotifier(t)
	expectStoreName(ms)

	q1 := domain.Query{"search_text": "one"}
	q2 := domain.Query{"search_text": "two"}

	ms.EXPECT().Load(mock.Anything).Return(domain.NewSeenSet("x"), nil).Once()
	mc.EXPECT().Warmup(mock.Anything).Return(nil).Once()
	mc.EXPECT().Search(mock.Anything, q1).
		Return(nil, fmt.Errorf("rate limit: %w", vinted.ErrCallBudgetExhausted)).Once()
	saved := captureSave(ms, nil)

	eng := newTestEngine(mc, ms, mn)
	res, err := eng.RunScan(context.Background(), []domain.Query{q1, q2})
	require.NoError(t, err)

	assert.Equal(t, 1, res.FailedQueries)
	assert.Equal(t, domain.NewSeenSet("x"), *saved)
	mc.AssertNotCalled(t, "Search", mock.Anything, q2)
}

func TestRunScan_SaveFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	mc := vintedMocks.NewMockCatalogClient(t)
	ms := storeMocks.NewMockSeenStore(t)
	mn := notifyMocks.NewMockNotifier(t)
	expectStoreName(ms)

	ms.EXPECT().Load(mock.Anything).Return(domain.NewSeenSet(), nil).Once()
	mc.EXPECT().Warmup(mock.Anything).Return(errors.New("403")).Once()
	mc.EXPECT().Search(mock.Anything, mock.Anything).Return(searchResult(item("1", "A")), nil).Once()
	mn.EXPECT().SendListing(mock.Anything, mock.Anything).Return(nil).Once()
	captureSave(ms, errors.New("gist 500"))

	eng := newTestEngine(mc, ms, mn, WithEnrichment(false))
	res, err := eng.RunScan(context.Background(), []domain.Query{{"search_text": "x"}})
	require.NoError(t, err)

	assert.False(t, res.Persisted)
	assert.Equal(t, 1, res.Novel)
}

func TestRunScan_DuplicateAcrossQueriesNotifiesOnce(t *testing.T) {
	t.Parallel()

	mc := vintedMocks.NewMockCatalogClient(t)
	ms := storeMocks.NewMockSeenStore(t)
	mn := notifyMocks.NewMockNotifier(t)
	expectStoreName(ms)

	ms.EXPECT().Load(mock.Anything).Return(domain.NewSeenSet(), nil).Once()
	mc.EXPECT().Warmup(mock.Anything).Return(nil).Once()
	mc.EXPECT().Search(mock.Anything, mock.Anything).Return(searchResult(item("7", "Shared")), nil).Times(2)
	mn.EXPECT().SendListing(mock.Anything, mock.Anything).Return(nil).Once()
	saved := captureSave(ms, nil)

	eng := newTestEngine(mc, ms, mn, WithEnrichment(false))
	res, err := eng.RunScan(context.Background(), []domain.Query{{"search_text": "a"}, {"search_text": "b"}})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Novel)
	assert.Equal(t, 2, res.Listings)
	assert.Equal(t, domain.NewSeenSet("7"), *saved)
}

func TestRunScan_CancellationStillPersists(t *testing.T) {
	t.Parallel()

	mc := vintedMocks.NewMockCatalogClient(t)
	ms := storeMocks.NewMockSeenStore(t)
	mn := notifyMocks.NewMockNotifier(t)
	expectStoreName(ms)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ms.EXPECT().Load(mock.Anything).Return(domain.NewSeenSet(), nil).Once()
	mc.EXPECT().Warmup(mock.Anything).Return(nil).Once()
	mc.EXPECT().Search(mock.Anything, mock.Anything).
		Return(searchResult(item("1", "A"), item("2", "B")), nil).Once()
	mn.EXPECT().SendListing(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, *domain.Listing) error {
			cancel()
			return nil
		}).Once()
	ms.EXPECT().Save(mock.Anything, domain.NewSeenSet("1")).
		RunAndReturn(func(ctx context.Context, _ domain.SeenSet) error {
			assert.NoError(t, ctx.Err(), "save runs detached from the canceled scan")
			return nil
		}).Once()

	// A long listing delay makes the cancel land in the pause.
	eng := newTestEngine(mc, ms, mn, WithEnrichment(false), WithListingDelay(time.Hour))
	res, err := eng.RunScan(ctx, []domain.Query{{"search_text": "a"}, {"search_text": "b"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, res.Persisted)
	assert.Equal(t, 1, res.Novel)
}

func TestRunScan_RecordsSpans(t *testing.T) {
	t.Parallel()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	mc := vintedMocks.NewMockCatalogClient(t)
	mn := notifyMocks.NewMockNotifier(t)

	mc.EXPECT().Warmup(mock.Anything).Return(nil).Once()
	mc.EXPECT().Search(mock.Anything, mock.Anything).Return(searchResult(), nil).Once()
	mc.EXPECT().Search(mock.Anything, mock.Anything).Return(nil, errors.New("500")).Once()

	eng := newTestEngine(mc, store.NewDisabledStore(), mn, WithTracer(tp.Tracer("test")))
	_, err := eng.RunScan(context.Background(), []domain.Query{{"search_text": "a"}, {"search_text": "b"}})
	require.NoError(t, err)

	spans := sr.Ended()
	names := make([]string, 0, len(spans))
	for _, s := range spans {
		names = append(names, s.Name())
	}
	assert.ElementsMatch(t, []string{"scan.query", "scan.query", "scan"}, names)

	var root sdktrace.ReadOnlySpan
	for _, s := range spans {
		if s.Name() == "scan" {
			root = s
		}
	}
	require.NotNil(t, root)
	for _, s := range spans {
		if s.Name() == "scan.query" {
			assert.Equal(t, root.SpanContext().SpanID(), s.Parent().SpanID())
		}
	}
}

// Not parallel: parallel tests stay paused until serial ones finish, so the
// package-level counters only move for this run.
func TestRunScan_UpdatesMetrics(t *testing.T) {
	mc := vintedMocks.NewMockCatalogClient(t)
	ms := storeMocks.NewMockSeenStore(t)
	mn := notifyMocks.NewMockNotifier(t)
	ms.EXPECT().Name().Return("metrics-test").Maybe()

	novelBefore := testutil.ToFloat64(metrics.NovelListingsTotal)
	listingsBefore := testutil.ToFloat64(metrics.ListingsTotal)
	loadErrBefore := testutil.ToFloat64(metrics.StoreErrorsTotal.WithLabelValues("metrics-test", "load"))

	ms.EXPECT().Load(mock.Anything).Return(nil, errors.New("down")).Once()
	mc.EXPECT().Warmup(mock.Anything).Return(nil).Once()
	mc.EXPECT().Search(mock.Anything, mock.Anything).
		Return(searchResult(item("1", "A"), item("2", "B")), nil).Once()
	mn.EXPECT().SendListing(mock.Anything, mock.Anything).Return(nil).Times(2)
	captureSave(ms, nil)

	eng := newTestEngine(mc, ms, mn, WithEnrichment(false))
	_, err := eng.RunScan(context.Background(), []domain.Query{{"search_text": "x"}})
	require.NoError(t, err)

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.NovelListingsTotal)-novelBefore, 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.ListingsTotal)-listingsBefore, 0)
	assert.InDelta(t, 1,
		testutil.ToFloat64(metrics.StoreErrorsTotal.WithLabelValues("metrics-test", "load"))-loadErrBefore, 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.SeenSetSize), 0)
	assert.Positive(t, testutil.ToFloat64(metrics.ScanLastSuccessTimestamp))
}

type meteredCatalog struct {
	*vintedMocks.MockCatalogClient
	used, remaining int64
}

func (m *meteredCatalog) CallBudget() (int64, int64) { return m.used, m.remaining }

func TestRunScan_ReportsCallBudget(t *testing.T) {
	t.Parallel()

	mc := vintedMocks.NewMockCatalogClient(t)
	ms := storeMocks.NewMockSeenStore(t)
	mn := notifyMocks.NewMockNotifier(t)
	expectStoreName(ms)

	ms.EXPECT().Load(mock.Anything).Return(domain.NewSeenSet("1"), nil).Once()
	mc.EXPECT().Warmup(mock.Anything).Return(nil).Once()
	mc.EXPECT().Search(mock.Anything, mock.Anything).Return(searchResult(item("1", "A")), nil).Once()
	captureSave(ms, nil)

	eng := NewEngine(&meteredCatalog{MockCatalogClient: mc, used: 7, remaining: 13}, ms, mn,
		WithLogger(quietLogger()),
		WithListingDelay(0),
		WithQueryDelay(0),
		WithEnrichment(false),
	)
	res, err := eng.RunScan(context.Background(), []domain.Query{{"search_text": "x"}})
	require.NoError(t, err)

	assert.Equal(t, 7, res.CatalogCalls)
	assert.InDelta(t, 13, testutil.ToFloat64(metrics.CatalogCallsRemaining), 0)
}
