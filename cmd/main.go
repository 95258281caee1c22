package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/summit/internal/adapters/http/api"
	"github.com/okian/summit/internal/adapters/http/swagger"
	service "github.com/okian/summit/internal/app"
	"github.com/okian/summit/internal/config"
	"github.com/okian/summit/internal/domain/scoring"
	"github.com/okian/summit/pkg/logger"
	"github.com/okian/summit/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.LogFormat == "json" {
		if err := logger.Init(logger.WithJSON(true)); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	opts, err := serviceOptions(cfg, log)
	if err != nil {
		return err
	}
	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	srv, err := newHTTPServer(cfg, svc)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// serviceOptions maps the configuration onto service options.
func serviceOptions(cfg *config.Config, log logger.Logger) ([]service.Option, error) {
	rules, err := goalRules(cfg.GoalRules)
	if err != nil {
		return nil, err
	}
	return []service.Option{
		service.WithLogger(log),
		service.WithCatalogPath(cfg.CatalogPath),
		service.WithCommunityDBPath(cfg.CommunityDBPath),
		service.WithCommunityMaxEntries(cfg.CommunityMaxEntries),
		service.WithCommunityLimits(cfg.CommunityListLimit, cfg.MaxCommunityLimit),
		service.WithDedupeSize(cfg.ShareDedupeSize),
		service.WithItineraryLimit(cfg.ItineraryLimit),
		service.WithBatchLimits(cfg.MaxBatchProfiles, cfg.BatchConcurrency),
		service.WithScorerOptions(
			scoring.WithSpeakerBonus(cfg.SpeakerBonus),
			scoring.WithFuzzyTopics(cfg.FuzzyTopicMatch),
			scoring.WithStructuralVIP(cfg.VIPStructuralRule),
			scoring.WithGoalRules(rules...),
		),
	}, nil
}

func goalRules(in []config.GoalRule) ([]scoring.KeywordRule, error) {
	out := make([]scoring.KeywordRule, 0, len(in))
	for _, r := range in {
		acc, err := scoring.ParseAccumulator(r.Accumulator)
		if err != nil {
			return nil, fmt.Errorf("goal rule %q: %w", r.Name, err)
		}
		out = append(out, scoring.KeywordRule{
			Name:        r.Name,
			Goal:        r.Goal,
			Keywords:    r.Keywords,
			ScoreDelta:  r.Score,
			SideDelta:   r.Side,
			Accumulator: acc,
		})
	}
	return out, nil
}

func newHTTPServer(cfg *config.Config, svc *service.Service) (*http.Server, error) {
	if _, err := swagger.Parse(); err != nil {
		return nil, fmt.Errorf("api docs: %w", err)
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(svc).Routes(swagger.Register),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}, nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater refreshes the community gauge through GetStats.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.GetStats()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
