package app

import (
	"context"

	"github.com/edsoncmach/cartola-paranaense/internal/config"
	"github.com/edsoncmach/cartola-paranaense/internal/infrastructure/scheduler"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/cache"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/logging"
	"github.com/edsoncmach/cartola-paranaense/internal/usecase"
)

type jobDeps struct {
	standings *usecase.StandingsService
	roster    *usecase.RosterService
	caches    []*cache.Store
	logger    *logging.Logger
}

func registerJobs(s *scheduler.Scheduler, cfg config.Config, deps jobDeps) error {
	jobs := []scheduler.Job{
		{
			Name:           "standings-refresh",
			Interval:       cfg.StandingsRefreshInterval,
			Timeout:        cfg.StandingsRefreshInterval,
			RunImmediately: true,
			Run:            deps.standings.Refresh,
		},
		{
			Name:     "confirmation-sweep",
			Interval: cfg.ConfirmationSweepInterval,
			Timeout:  cfg.ConfirmationSweepInterval,
			Run: func(ctx context.Context) error {
				swept, err := deps.roster.SweepExpired(ctx)
				if err != nil {
					return err
				}
				if swept.Confirmations > 0 || swept.Sessions > 0 {
					deps.logger.InfoContext(ctx, "expired roster state dropped",
						"confirmations", swept.Confirmations,
						"sessions", swept.Sessions,
					)
				}
				return nil
			},
		},
		{
			Name:     "cache-purge",
			Interval: cfg.CacheTTL,
			Timeout:  cfg.CacheTTL,
			Run: func(ctx context.Context) error {
				purged := 0
				for _, store := range deps.caches {
					purged += store.Purge()
				}
				deps.logger.DebugContext(ctx, "expired cache entries purged", "count", purged)
				return nil
			},
		},
	}

	for _, job := range jobs {
		if err := s.Register(job); err != nil {
			return err
		}
	}
	return nil
}
