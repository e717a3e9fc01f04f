package app

import (
	"context"
	"fmt"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/club"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/confirmation"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/fantasyteam"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/league"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/lineup"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/match"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/player"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/round"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/scoring"
	cacherepo "github.com/edsoncmach/cartola-paranaense/internal/infrastructure/repository/cache"
	"github.com/edsoncmach/cartola-paranaense/internal/infrastructure/repository/memory"
	"github.com/edsoncmach/cartola-paranaense/internal/infrastructure/repository/postgres"
	"github.com/edsoncmach/cartola-paranaense/internal/infrastructure/repository/redisstore"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/cache"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/resilience"
)

type repositories struct {
	clubs   club.Repository
	players player.Repository
	rounds  round.Repository
	matches match.Repository
	teams   fantasyteam.Repository
	lineups lineup.Repository
	scores  scoring.Repository
	leagues league.Repository
	closer  scoring.RoundCloser
}

// cached wraps the catalog repositories in read-through decorators. Teams,
// lineups, scores and leagues change per request and are never cached.
func (r repositories) cached(store *cache.Store) repositories {
	r.clubs = cacherepo.NewClubRepository(r.clubs, store)
	r.players = cacherepo.NewPlayerRepository(r.players, store)
	r.rounds = cacherepo.NewRoundRepository(r.rounds, store)
	r.matches = cacherepo.NewMatchRepository(r.matches, store)
	r.closer = cacherepo.NewRoundCloser(r.closer, store)
	return r
}

func memoryRepositories() repositories {
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	rounds := memory.NewRoundRepository(memory.SeedRounds(nowUTC()))
	teams := memory.NewTeamRepository(nil)
	lineups := memory.NewLineupRepository(teams)
	scores := memory.NewScoreRepository()
	players.GuardDeletes(lineups, scores)
	return repositories{
		clubs:   memory.NewClubRepository(memory.SeedClubs()),
		players: players,
		rounds:  rounds,
		matches: memory.NewMatchRepository(memory.SeedMatches()),
		teams:   teams,
		lineups: lineups,
		scores:  scores,
		leagues: memory.NewLeagueRepository(),
		closer:  memory.NewRoundCloser(players, teams, rounds),
	}
}

func (a *App) buildRepositories(ctx context.Context) (repositories, error) {
	if a.cfg.DBURL == "" {
		a.logger.Warn("DB_URL empty, using in-memory repositories with demo data")
		return memoryRepositories(), nil
	}

	db, err := OpenDB(ctx, a.cfg)
	if err != nil {
		return repositories{}, err
	}
	a.onClose("postgres", func(context.Context) error {
		return db.Close()
	})

	if a.cfg.DBSeedOnStart {
		if err := postgres.BootstrapSeed(ctx, db, nowUTC()); err != nil {
			return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
		}
		a.logger.Info("bootstrap seed checked")
	}

	return repositories{
		clubs:   postgres.NewClubRepository(db),
		players: postgres.NewPlayerRepository(db),
		rounds:  postgres.NewRoundRepository(db),
		matches: postgres.NewMatchRepository(db),
		teams:   postgres.NewTeamRepository(db),
		lineups: postgres.NewLineupRepository(db),
		scores:  postgres.NewScoreRepository(db),
		leagues: postgres.NewLeagueRepository(db),
		closer:  postgres.NewRoundCloser(db),
	}, nil
}

// buildConfirmationStore keeps pending destructive confirmations in Redis when
// REDIS_URL is set so every API instance sees the same tokens.
func (a *App) buildConfirmationStore(ctx context.Context) (confirmation.Store, error) {
	if a.cfg.RedisURL == "" {
		a.logger.Info("REDIS_URL empty, pending confirmations kept in process")
		return memory.NewConfirmationStore(), nil
	}

	rdb, err := redisstore.NewClient(ctx, redisstore.ClientConfig{
		URL:          a.cfg.RedisURL,
		PoolSize:     a.cfg.RedisPoolSize,
		DialTimeout:  a.cfg.RedisTimeout,
		ReadTimeout:  a.cfg.RedisTimeout,
		WriteTimeout: a.cfg.RedisTimeout,
	})
	if err != nil {
		return nil, err
	}
	a.onClose("redis", func(context.Context) error {
		return rdb.Close()
	})

	breaker := resilience.NewBreaker(resilience.BreakerConfig{
		Enabled:          a.cfg.RedisCircuitEnabled,
		FailureThreshold: a.cfg.RedisCircuitFailureCount,
		OpenTimeout:      a.cfg.RedisCircuitOpenTimeout,
		HalfOpenProbes:   a.cfg.RedisCircuitHalfOpenMaxReq,
	})
	logger := a.logger
	breaker.OnStateChange(func(from, to resilience.State) {
		logger.Warn("redis circuit state changed", "from", string(from), "to", string(to))
	})

	return redisstore.NewConfirmationStore(rdb, a.cfg.RedisKeyPrefix, breaker), nil
}
