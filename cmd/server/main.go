// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/tressly/internal/api"
	"github.com/tomtom215/tressly/internal/auth"
	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/config"
	"github.com/tomtom215/tressly/internal/engagement"
	"github.com/tomtom215/tressly/internal/logging"
	"github.com/tomtom215/tressly/internal/metrics"
	"github.com/tomtom215/tressly/internal/recommend"
	"github.com/tomtom215/tressly/internal/session"
	"github.com/tomtom215/tressly/internal/supervisor"
	"github.com/tomtom215/tressly/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,

		Version:     version,
		Environment: cfg.Server.Environment,
	})

	logging.Info().
		Str("catalog", cfg.Catalog.Path).
		Str("engagement_backend", cfg.Engagement.Backend).
		Bool("classifier", cfg.Classifier.Enabled).
		Msg("Starting Tressly")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Server stopped")
}

//nolint:gocyclo // sequential wiring of every component
func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catalog
	loader := catalog.NewLoader(cfg.Catalog.Path, logging.WithComponent("catalog"))
	products, err := loader.Load()
	if err != nil {
		metrics.RecordCatalogReload(nil, err)
		return fmt.Errorf("load catalog: %w", err)
	}
	index := catalog.NewIndex(products)
	metrics.RecordCatalogReload(categoryLabels(index.CategoryCounts()), nil)
	if index.Len() == 0 {
		logging.Warn().Str("path", cfg.Catalog.Path).Msg("Catalog is empty, readiness will fail until it is reloaded")
	}

	// Engagement
	store, err := openEngagementStore(&cfg.Engagement)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing engagement store")
		}
	}()
	if cfg.Catalog.SeedEngagement {
		store.Seed(products)
	}

	tracker := engagement.NewTracker(store, nil, logging.WithComponent("engagement"))
	if err := tracker.Refresh(ctx, index.IDs()); err != nil {
		logging.Warn().Err(err).Msg("Initial engagement refresh failed, scoring with neutral engagement")
	}

	// Scoring and sessions
	engine, err := recommend.NewEngine(engineConfig(&cfg.Scoring), tracker.Snapshots(), logging.WithComponent("recommend"))
	if err != nil {
		return fmt.Errorf("create recommendation engine: %w", err)
	}

	profiles := buildProfiles(cfg.Profiles)

	sessions := session.NewManager(session.ManagerConfig{
		TTL:         cfg.Session.TTL,
		MaxSessions: cfg.Session.MaxSessions,
	}, session.Deps{
		Selector: engine,
		Catalog:  index,
		Emitter:  tracker,
		Logger:   logging.Logger(),
	}, profiles)

	tokens, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return fmt.Errorf("create token manager: %w", err)
	}

	// HTTP
	deps := api.HandlerDeps{
		Catalog:       index,
		Sessions:      sessions,
		Tokens:        tokens,
		Engagement:    tracker,
		Profiles:      profiles,
		MaxImageBytes: cfg.Classifier.MaxImageBytes,
		Version:       version,
	}
	if client := newClassifier(&cfg.Classifier); client != nil {
		deps.Classifier = client
	}

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); set explicit origins in production")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	router := api.NewRouter(
		api.NewHandler(deps),
		api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// Supervision
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + cfg.Engagement.DrainTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	serviceLogger := logging.WithComponent("services")

	tree.AddDataService(services.NewSnapshotRefreshService(tracker, index, cfg.Engagement.RefreshInterval, serviceLogger))

	hup := make(chan struct{}, 1)
	reloader := services.NewCatalogReloadService(loader, index, hup, serviceLogger)
	if cfg.Catalog.SeedEngagement {
		reloader.OnReload(func(_ context.Context, products []catalog.Product) error {
			store.Seed(products)
			return nil
		})
	}
	reloader.OnReload(func(ctx context.Context, products []catalog.Product) error {
		ids := make([]string, len(products))
		for i, p := range products {
			ids[i] = p.ID
		}
		return tracker.Refresh(ctx, ids)
	})
	tree.AddDataService(reloader)

	tree.AddBackgroundService(services.NewSessionSweepService(sessions, cfg.Session.SweepInterval, serviceLogger))

	httpService := services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, serviceLogger)
	httpService.OnDrain(func(ctx context.Context) error {
		drainCtx, drainCancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Engagement.DrainTimeout)
		defer drainCancel()
		return tracker.Wait(drainCtx)
	})
	tree.AddAPIService(httpService)
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigCh:
				if sig == syscall.SIGHUP {
					logging.Info().Msg("Received SIGHUP, reloading catalog")
					select {
					case hup <- struct{}{}:
					default:
					}
					continue
				}
				logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
				cancel()
				return
			}
		}
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
		serveErr = <-errCh
	case serveErr = <-errCh:
		cancel()
	}
	if errors.Is(serveErr, context.Canceled) {
		serveErr = nil
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	return serveErr
}

// categoryLabels converts category counts to metric labels.
func categoryLabels(counts map[catalog.Category]int) map[string]int {
	out := make(map[string]int, len(counts))
	for c, n := range counts {
		out[c.String()] = n
	}
	return out
}

// engineConfig maps the scoring section onto the engine configuration.
func engineConfig(s *config.ScoringConfig) *recommend.Config {
	return &recommend.Config{
		Weights: recommend.Weights{
			Position:          s.Position,
			Coverage:          s.Coverage,
			LikeRatio:         s.LikeRatio,
			RoutineRate:       s.RoutineRate,
			RerollRate:        s.RerollRate,
			ActionRate:        s.ActionRate,
			Ingredient:        s.Ingredient,
			Engagement:        s.Engagement,
			NeutralEngagement: s.NeutralEngagement,
		},
	}
}
