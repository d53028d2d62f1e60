package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cam71101/vinted-scanner/internal/config"
	"github.com/cam71101/vinted-scanner/internal/engine"
	"github.com/cam71101/vinted-scanner/internal/metrics"
	"github.com/cam71101/vinted-scanner/internal/notify"
	"github.com/cam71101/vinted-scanner/internal/store"
	"github.com/cam71101/vinted-scanner/internal/tracing"
	"github.com/cam71101/vinted-scanner/internal/vinted"
	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

const shutdownTimeout = 10 * time.Second

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one scan pass over every configured query",
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

// runScan never returns an error: every failure is logged and the process
// exits zero.
func runScan(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		bootstrapLogger().Error("scan aborted", "error", err)
		return nil
	}

	log := newLogger(cfg)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scan(ctx, cfg, log)
	return nil
}

func scan(ctx context.Context, cfg *config.Config, log *slog.Logger) *domain.ScanResult {
	shutdownTracing, err := tracing.Setup(ctx, &cfg.Tracing)
	if err != nil {
		log.Warn("tracing disabled", "endpoint", cfg.Tracing.OTLPEndpoint, "error", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("flushing traces", "error", err)
		}
	}()

	queries, source, err := cfg.ResolveQueries()
	if err != nil {
		log.Error("loading queries", "source", source, "error", err)
		queries = nil
	} else {
		log.Info("loaded queries", "source", source, "count", len(queries))
	}

	seen := openStore(ctx, cfg, log)
	defer func() {
		if err := seen.Close(); err != nil {
			log.Warn("closing seen-set store", "backend", seen.Name(), "error", err)
		}
	}()

	notifier, closeNotifier := notify.FromConfig(&cfg.Notifications, log)
	defer func() {
		if err := closeNotifier(); err != nil {
			log.Warn("closing notifiers", "error", err)
		}
	}()

	eng := engine.NewEngine(newCatalogClient(&cfg.Vinted), seen, notifier,
		engine.WithLogger(log),
		engine.WithListingDelay(cfg.Scan.ListingDelay),
		engine.WithQueryDelay(cfg.Scan.QueryDelay),
		engine.WithEnrichment(cfg.Vinted.EnrichEnabled()),
		engine.WithDryRun(cfg.Scan.DryRun),
		engine.WithRetryFailedNotifications(cfg.Notifications.RetryFailed),
		engine.WithStoreTimeout(cfg.Store.Timeout),
	)

	res, err := eng.RunScan(ctx, queries)
	if err != nil {
		log.Warn("scan ended early", "error", err)
	}

	pushMetrics(ctx, &cfg.Metrics, log)
	return res
}

// openStore builds the configured backend. Errors degrade to a disabled
// store so the scan still runs and notifies.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) store.SeenStore {
	sctx, cancel := context.WithTimeout(ctx, cfg.Store.Timeout)
	defer cancel()

	seen, err := store.New(sctx, &cfg.Store, log)
	if err != nil {
		log.Error("opening seen-set store, persistence disabled", "backend", cfg.Store.Backend, "error", err)
		return store.NewDisabledStore()
	}

	if m, ok := seen.(interface{ Migrate(context.Context) error }); ok {
		if err := m.Migrate(sctx); err != nil {
			log.Warn("applying seen-set migrations", "backend", seen.Name(), "error", err)
		}
	}

	return seen
}

func newCatalogClient(cfg *config.VintedConfig) *vinted.Client {
	return vinted.NewClient(
		vinted.WithBaseURL(cfg.BaseURL),
		vinted.WithUserAgent(cfg.UserAgent),
		vinted.WithAcceptLanguage(cfg.AcceptLanguage),
		vinted.WithTimeouts(cfg.SearchTimeout, cfg.DetailTimeout),
		vinted.WithRateLimiter(vinted.NewRateLimiter(
			cfg.RateLimit.PerSecond,
			cfg.RateLimit.Burst,
			cfg.RateLimit.MaxCalls,
		)),
	)
}

func pushMetrics(ctx context.Context, cfg *config.MetricsConfig, log *slog.Logger) {
	if cfg.PushgatewayURL == "" {
		return
	}

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := metrics.Push(pctx, cfg.PushgatewayURL, cfg.Job, cfg.Instance); err != nil {
		log.Warn("pushing metrics", "error", err)
		return
	}
	log.Debug("pushed metrics", "gateway", cfg.PushgatewayURL, "job", cfg.Job)
}
