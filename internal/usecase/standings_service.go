package usecase

import (
	"context"
	"fmt"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/club"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/match"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/round"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/standings"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/cache"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const standingsCacheKey = "standings:regular"

type StandingsService struct {
	clubRepo  club.Repository
	roundRepo round.Repository
	matchRepo match.Repository
	cache     *cache.Store
	logger    *logging.Logger
}

// NewStandingsService builds the service. A nil cache recomputes on every call.
func NewStandingsService(
	clubRepo club.Repository,
	roundRepo round.Repository,
	matchRepo match.Repository,
	cacheStore *cache.Store,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		clubRepo:  clubRepo,
		roundRepo: roundRepo,
		matchRepo: matchRepo,
		cache:     cacheStore,
		logger:    logger,
	}
}

func (s *StandingsService) Tables(ctx context.Context) ([]standings.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Tables")
	defer span.End()

	if s.cache == nil {
		return s.recompute(ctx)
	}

	value, err := s.cache.GetOrLoad(ctx, standingsCacheKey, func(ctx context.Context) (any, error) {
		return s.recompute(ctx)
	})
	if err != nil {
		return nil, err
	}
	tables, ok := value.([]standings.Table)
	if !ok {
		return s.recompute(ctx)
	}
	return tables, nil
}

// Refresh recomputes the tables and replaces the cached copy.
func (s *StandingsService) Refresh(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Refresh")
	defer span.End()

	tables, err := s.recompute(ctx)
	if err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Set(ctx, standingsCacheKey, tables)
	}
	s.logger.DebugContext(ctx, "standings refreshed", "tables", len(tables))
	return nil
}

func (s *StandingsService) recompute(ctx context.Context) ([]standings.Table, error) {
	var (
		clubs   []club.Club
		rounds  []round.Round
		matches []match.Match
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.clubRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list clubs: %w", err)
		}
		clubs = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.roundRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list rounds: %w", err)
		}
		rounds = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.matchRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		matches = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return standings.Recompute(clubs, standings.RegularMatches(rounds, matches)), nil
}
