package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/lineup"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/match"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/player"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/round"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/scoring"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/logging"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/tracing"
	"github.com/panjf2000/ants/v2"
)

const defaultSettlementWorkers = 8

// SettlementService is the in-process scoring and valorization procedure.
type SettlementService struct {
	roundRepo  round.Repository
	matchRepo  match.Repository
	playerRepo player.Repository
	lineupRepo lineup.Repository
	scoreRepo  scoring.Repository
	closer     scoring.RoundCloser
	policy     scoring.ValorizationPolicy
	workers    int
	logger     *logging.Logger
}

var _ scoring.Collaborator = (*SettlementService)(nil)

func NewSettlementService(
	roundRepo round.Repository,
	matchRepo match.Repository,
	playerRepo player.Repository,
	lineupRepo lineup.Repository,
	scoreRepo scoring.Repository,
	closer scoring.RoundCloser,
	policy scoring.ValorizationPolicy,
	workers int,
	logger *logging.Logger,
) *SettlementService {
	if policy == nil {
		policy = scoring.DefaultValorizationPolicy()
	}
	if workers <= 0 {
		workers = defaultSettlementWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SettlementService{
		roundRepo:  roundRepo,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		lineupRepo: lineupRepo,
		scoreRepo:  scoreRepo,
		closer:     closer,
		policy:     policy,
		workers:    workers,
		logger:     logger,
	}
}

// Settle records a match result, scores every player who played and refreshes
// the round totals of every lineup. Settling the same match again replaces its
// earlier scores.
func (s *SettlementService) Settle(ctx context.Context, input scoring.SettleInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.Settle")
	defer span.End()

	err := s.settle(ctx, input)
	tracing.RecordError(span, err)
	return err
}

func (s *SettlementService) settle(ctx context.Context, input scoring.SettleInput) error {
	input.RoundID = strings.TrimSpace(input.RoundID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	if input.RoundID == "" || input.MatchID == "" {
		return fmt.Errorf("%w: round id and match id are required", ErrInvalidInput)
	}
	if input.HomeScore < 0 || input.AwayScore < 0 {
		return fmt.Errorf("%w: scores must be >= 0", ErrInvalidInput)
	}

	roundItem, err := s.openRound(ctx, input.RoundID)
	if err != nil {
		return err
	}

	matchItem, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
	}
	if matchItem.RoundID != roundItem.ID {
		return fmt.Errorf("%w: match %s does not belong to round %s", ErrInvalidInput, matchItem.ID, roundItem.ID)
	}

	statsByPlayer := make(map[string]scoring.Stats, len(input.Stats))
	playerIDs := make([]string, 0, len(input.Stats))
	for _, st := range input.Stats {
		st.PlayerID = strings.TrimSpace(st.PlayerID)
		if st.PlayerID == "" {
			return fmt.Errorf("%w: player id is required in stats", ErrInvalidInput)
		}
		if st.Goals < 0 || st.Assists < 0 || st.Yellow < 0 || st.Red < 0 {
			return fmt.Errorf("%w: negative stats for player %s", ErrInvalidInput, st.PlayerID)
		}
		if _, dup := statsByPlayer[st.PlayerID]; dup {
			return fmt.Errorf("%w: duplicate stats for player %s", ErrInvalidInput, st.PlayerID)
		}
		statsByPlayer[st.PlayerID] = st
		playerIDs = append(playerIDs, st.PlayerID)
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return fmt.Errorf("get match players: %w", err)
	}
	if len(players) != len(playerIDs) {
		return fmt.Errorf("%w: some players in stats do not exist", ErrNotFound)
	}

	scores := make([]scoring.PlayerScore, 0, len(players))
	for _, p := range players {
		st := statsByPlayer[p.ID]
		var goalsFor, goalsAgainst int
		switch p.ClubID {
		case matchItem.HomeClubID:
			goalsFor, goalsAgainst = input.HomeScore, input.AwayScore
		case matchItem.AwayClubID:
			goalsFor, goalsAgainst = input.AwayScore, input.HomeScore
		default:
			return fmt.Errorf("%w: player %s did not take part in match %s", ErrInvalidInput, p.ID, matchItem.ID)
		}
		if !st.Played {
			continue
		}
		scores = append(scores, scoring.PlayerScore{
			PlayerID: p.ID,
			RoundID:  roundItem.ID,
			MatchID:  matchItem.ID,
			ClubID:   p.ClubID,
			Points:   scoring.PlayerPoints(p.Position, st, goalsFor, goalsAgainst),
			Stats:    st,
		})
	}

	if err := s.matchRepo.SetScore(ctx, matchItem.ID, input.HomeScore, input.AwayScore); err != nil {
		return fmt.Errorf("set match score: %w", err)
	}
	if err := s.scoreRepo.ReplaceMatchScores(ctx, roundItem.ID, matchItem.ID, scores); err != nil {
		return fmt.Errorf("replace match scores: %w", err)
	}

	teamCount, err := s.recomputeTeamScores(ctx, roundItem.ID)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "match settled",
		"round_id", roundItem.ID,
		"match_id", matchItem.ID,
		"home_score", input.HomeScore,
		"away_score", input.AwayScore,
		"scored_players", len(scores),
		"teams", teamCount,
	)
	return nil
}

// ApplyValorization reprices every player who scored in the round, returns
// each lineup's value at the new prices to its team and marks the round
// finished. Every match of the round must be settled first.
func (s *SettlementService) ApplyValorization(ctx context.Context, roundID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.ApplyValorization")
	defer span.End()

	err := s.applyValorization(ctx, roundID)
	tracing.RecordError(span, err)
	return err
}

func (s *SettlementService) applyValorization(ctx context.Context, roundID string) error {
	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}
	roundItem, err := s.openRound(ctx, roundID)
	if err != nil {
		return err
	}

	matches, err := s.matchRepo.ListByRound(ctx, roundItem.ID)
	if err != nil {
		return fmt.Errorf("list round matches: %w", err)
	}
	for _, m := range matches {
		if !m.Completed() {
			return fmt.Errorf("%w: match %s has no result yet", ErrInvalidInput, m.ID)
		}
	}

	playerScores, err := s.scoreRepo.ListPlayerScoresByRound(ctx, roundItem.ID)
	if err != nil {
		return fmt.Errorf("list player scores: %w", err)
	}
	pointsByPlayer := sumPlayerPoints(playerScores)

	lineups, err := s.lineupRepo.ListByRound(ctx, roundItem.ID)
	if err != nil {
		return fmt.Errorf("list round lineups: %w", err)
	}

	ids := make(map[string]struct{}, len(pointsByPlayer))
	for id := range pointsByPlayer {
		ids[id] = struct{}{}
	}
	for _, l := range lineups {
		for _, id := range l.PlayerIDs() {
			ids[id] = struct{}{}
		}
	}
	players, err := s.playerRepo.GetByIDs(ctx, sortedKeys(ids))
	if err != nil {
		return fmt.Errorf("get round players: %w", err)
	}

	prices := make(map[string]money.Amount, len(players))
	changes := make([]player.PriceChange, 0, len(pointsByPlayer))
	for _, p := range players {
		prices[p.ID] = p.Price
		points, scored := pointsByPlayer[p.ID]
		if !scored {
			continue
		}
		newPrice, variation := scoring.Revalue(s.policy, p.Price, points)
		prices[p.ID] = newPrice
		changes = append(changes, player.PriceChange{
			PlayerID:  p.ID,
			NewPrice:  newPrice,
			Variation: variation,
		})
	}

	refunds := make(map[string]money.Amount, len(lineups))
	for _, l := range lineups {
		var value money.Amount
		for _, id := range l.PlayerIDs() {
			value += prices[id]
		}
		refunds[l.TeamID] += value
	}
	err = s.closer.CloseRound(ctx, scoring.RoundClosure{
		RoundID:      roundItem.ID,
		PriceChanges: changes,
		Refunds:      refunds,
	})
	if errors.Is(err, scoring.ErrRoundFinished) {
		return fmt.Errorf("%w: round %s is already finished", ErrInvalidInput, roundItem.ID)
	}
	if err != nil {
		return fmt.Errorf("%w: close round: %v", ErrPersistenceFailure, err)
	}

	s.logger.InfoContext(ctx, "round closed",
		"round_id", roundItem.ID,
		"repriced_players", len(changes),
		"teams", len(refunds),
	)
	return nil
}

func (s *SettlementService) openRound(ctx context.Context, roundID string) (round.Round, error) {
	item, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return round.Round{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return round.Round{}, fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}
	if item.Finished {
		return round.Round{}, fmt.Errorf("%w: round %s is already finished", ErrInvalidInput, roundID)
	}
	return item, nil
}

// recomputeTeamScores rebuilds every lineup's round total from the settled
// player scores, fanning the lineups out over a worker pool.
func (s *SettlementService) recomputeTeamScores(ctx context.Context, roundID string) (int, error) {
	playerScores, err := s.scoreRepo.ListPlayerScoresByRound(ctx, roundID)
	if err != nil {
		return 0, fmt.Errorf("list player scores: %w", err)
	}
	pointsByPlayer := sumPlayerPoints(playerScores)

	lineups, err := s.lineupRepo.ListByRound(ctx, roundID)
	if err != nil {
		return 0, fmt.Errorf("list round lineups: %w", err)
	}

	teamScores := make([]scoring.TeamScore, len(lineups))
	if len(lineups) > 0 {
		pool, err := ants.NewPool(s.workers)
		if err != nil {
			return 0, fmt.Errorf("create worker pool: %w", err)
		}
		defer pool.Release()

		var workers sync.WaitGroup
		for i, l := range lineups {
			i, l := i, l
			workers.Add(1)
			if err := pool.Submit(func() {
				defer workers.Done()
				teamScores[i] = scoring.TeamScore{
					TeamID:  l.TeamID,
					RoundID: roundID,
					Points:  scoring.TeamRoundPoints(l.Entries, pointsByPlayer),
				}
			}); err != nil {
				workers.Done()
				workers.Wait()
				return 0, fmt.Errorf("submit team score task: %w", err)
			}
		}
		workers.Wait()
	}

	if err := s.scoreRepo.ReplaceTeamScores(ctx, roundID, teamScores); err != nil {
		return 0, fmt.Errorf("replace team scores: %w", err)
	}
	return len(teamScores), nil
}

func sumPlayerPoints(scores []scoring.PlayerScore) map[string]scoring.Points {
	out := make(map[string]scoring.Points, len(scores))
	for _, sc := range scores {
		out[sc.PlayerID] += sc.Points
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
