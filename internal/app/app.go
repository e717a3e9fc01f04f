package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/config"
	"github.com/edsoncmach/cartola-paranaense/internal/infrastructure/account/jwtauth"
	"github.com/edsoncmach/cartola-paranaense/internal/infrastructure/scheduler"
	"github.com/edsoncmach/cartola-paranaense/internal/interfaces/httpapi"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/cache"
	idgen "github.com/edsoncmach/cartola-paranaense/internal/platform/id"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/logging"
	"github.com/edsoncmach/cartola-paranaense/internal/usecase"
)

type closer struct {
	name string
	fn   func(context.Context) error
}

// App owns the HTTP server, the background jobs and every connection they
// share.
type App struct {
	cfg       config.Config
	logger    *logging.Logger
	server    *http.Server
	scheduler *scheduler.Scheduler
	closers   []closer
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{cfg: cfg, logger: logger}
	if err := a.build(ctx); err != nil {
		if closeErr := a.close(ctx); closeErr != nil {
			logger.Warn("release partially built app", "error", closeErr)
		}
		return nil, err
	}
	return a, nil
}

func (a *App) build(ctx context.Context) error {
	cfg, logger := a.cfg, a.logger

	repos, err := a.buildRepositories(ctx)
	if err != nil {
		return err
	}
	pending, err := a.buildConfirmationStore(ctx)
	if err != nil {
		return err
	}

	catalogCache := cache.NewStore(cfg.CacheTTL)
	standingsCache := cache.NewStore(cfg.CacheTTL)
	if cfg.CacheEnabled {
		repos = repos.cached(catalogCache)
	}

	ids := idgen.NewTimeOrderedGenerator()
	roundSvc := usecase.NewRoundService(repos.rounds)
	standingsSvc := usecase.NewStandingsService(repos.clubs, repos.rounds, repos.matches, standingsCache, logger)
	settlement := usecase.NewSettlementService(
		repos.rounds,
		repos.matches,
		repos.players,
		repos.lineups,
		repos.scores,
		repos.closer,
		nil,
		cfg.SettlementWorkers,
		logger,
	)
	rosterSvc := usecase.NewRosterService(repos.teams, repos.players, repos.lineups, roundSvc, pending, usecase.RosterConfig{
		ConfirmationTTL: cfg.ConfirmationTTL,
		SessionIdleTTL:  cfg.RosterSessionIdleTTL,
	}, logger)

	handler := httpapi.NewHandler(
		roundSvc,
		usecase.NewPlayerService(repos.clubs, repos.players),
		usecase.NewTeamService(repos.teams, ids, cfg.InitialBalance, logger),
		rosterSvc,
		usecase.NewLeagueService(repos.leagues, repos.teams, ids, logger),
		standingsSvc,
		usecase.NewRankingService(repos.rounds, repos.teams, repos.scores, repos.leagues),
		usecase.NewAdminService(repos.clubs, repos.players, repos.rounds, repos.matches, settlement, standingsSvc, ids, logger),
		logger,
	)

	verifier, err := jwtauth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)
	if err != nil {
		return fmt.Errorf("build token verifier: %w", err)
	}
	if cfg.AdminToken == "" {
		logger.Warn("admin routes disabled", "reason", "ADMIN_TOKEN empty")
	}

	a.server = &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpapi.NewRouter(handler, verifier, logger, httpapi.RouterConfig{
			ServiceName:        cfg.ServiceName,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			AdminToken:         cfg.AdminToken,
		}),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	a.scheduler, err = scheduler.New(logger.Named("scheduler"))
	if err != nil {
		return err
	}
	return registerJobs(a.scheduler, cfg, jobDeps{
		standings: standingsSvc,
		roster:    rosterSvc,
		caches:    []*cache.Store{catalogCache, standingsCache},
		logger:    logger,
	})
}

// Run serves HTTP until ctx is cancelled or the listener fails, then shuts
// everything down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	a.scheduler.Start()

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.cfg.HTTPAddr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	return errors.Join(runErr, a.shutdown(shutdownCtx))
}

func (a *App) shutdown(ctx context.Context) error {
	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	} else {
		a.logger.Info("http server stopped")
	}
	if err := a.scheduler.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	if err := a.close(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// close releases connections in reverse order of acquisition.
func (a *App) close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", c.name, err))
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) onClose(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
