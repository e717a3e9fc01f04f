package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/fantasyteam"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/league"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/round"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/scoring"
	"github.com/sourcegraph/conc/pool"
)

type RankingEntry struct {
	Position  int
	TeamID    string
	TeamName  string
	CoachName string
	BadgeURL  string
	Points    scoring.Points
}

type Ranking struct {
	Round   round.Round
	Entries []RankingEntry
}

type RankingService struct {
	roundRepo  round.Repository
	teamRepo   fantasyteam.Repository
	scoreRepo  scoring.Repository
	leagueRepo league.Repository
}

func NewRankingService(
	roundRepo round.Repository,
	teamRepo fantasyteam.Repository,
	scoreRepo scoring.Repository,
	leagueRepo league.Repository,
) *RankingService {
	return &RankingService{
		roundRepo:  roundRepo,
		teamRepo:   teamRepo,
		scoreRepo:  scoreRepo,
		leagueRepo: leagueRepo,
	}
}

// Round ranks every team that scored in the round. An empty roundID selects
// the default display round.
func (s *RankingService) Round(ctx context.Context, roundID string) (Ranking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Round")
	defer span.End()

	target, err := s.resolveRound(ctx, roundID)
	if err != nil {
		return Ranking{}, err
	}
	if target.ID == "" {
		return Ranking{Entries: []RankingEntry{}}, nil
	}

	teams, scores, err := s.load(ctx, target.ID)
	if err != nil {
		return Ranking{}, err
	}

	byTeam := make(map[string]fantasyteam.Team, len(teams))
	for _, t := range teams {
		byTeam[t.ID] = t
	}
	entries := make([]RankingEntry, 0, len(scores))
	for _, score := range scores {
		t, ok := byTeam[score.TeamID]
		if !ok {
			continue
		}
		entries = append(entries, newRankingEntry(t, score.Points))
	}

	return Ranking{Round: target, Entries: rank(entries)}, nil
}

// League ranks the members of a league. Members without a score count as 0.
func (s *RankingService) League(ctx context.Context, leagueID, roundID string) (Ranking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.League")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return Ranking{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return Ranking{}, fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return Ranking{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	target, err := s.resolveRound(ctx, roundID)
	if err != nil {
		return Ranking{}, err
	}

	members, err := s.leagueRepo.ListMembers(ctx, leagueID)
	if err != nil {
		return Ranking{}, fmt.Errorf("list league members: %w", err)
	}

	var (
		teams  []fantasyteam.Team
		scores []scoring.TeamScore
	)
	if target.ID == "" {
		teams, err = s.teamRepo.List(ctx)
		if err != nil {
			return Ranking{}, fmt.Errorf("list teams: %w", err)
		}
	} else {
		teams, scores, err = s.load(ctx, target.ID)
		if err != nil {
			return Ranking{}, err
		}
	}

	byTeam := make(map[string]fantasyteam.Team, len(teams))
	for _, t := range teams {
		byTeam[t.ID] = t
	}
	points := make(map[string]scoring.Points, len(scores))
	for _, score := range scores {
		points[score.TeamID] = score.Points
	}

	entries := make([]RankingEntry, 0, len(members))
	for _, m := range members {
		t, ok := byTeam[m.TeamID]
		if !ok {
			continue
		}
		entries = append(entries, newRankingEntry(t, points[m.TeamID]))
	}

	return Ranking{Round: target, Entries: rank(entries)}, nil
}

func (s *RankingService) resolveRound(ctx context.Context, roundID string) (round.Round, error) {
	roundID = strings.TrimSpace(roundID)
	if roundID != "" {
		item, exists, err := s.roundRepo.GetByID(ctx, roundID)
		if err != nil {
			return round.Round{}, fmt.Errorf("get round by id: %w", err)
		}
		if !exists {
			return round.Round{}, fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
		}
		return item, nil
	}

	items, err := s.roundRepo.List(ctx)
	if err != nil {
		return round.Round{}, fmt.Errorf("list rounds: %w", err)
	}
	item, _ := round.DefaultDisplay(items)
	return item, nil
}

func (s *RankingService) load(ctx context.Context, roundID string) ([]fantasyteam.Team, []scoring.TeamScore, error) {
	var (
		teams  []fantasyteam.Team
		scores []scoring.TeamScore
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.teamRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		teams = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.scoreRepo.ListTeamScoresByRound(ctx, roundID)
		if err != nil {
			return fmt.Errorf("list team scores: %w", err)
		}
		scores = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, nil, err
	}
	return teams, scores, nil
}

func newRankingEntry(t fantasyteam.Team, points scoring.Points) RankingEntry {
	return RankingEntry{
		TeamID:    t.ID,
		TeamName:  t.Name,
		CoachName: t.CoachName,
		BadgeURL:  t.BadgeURL,
		Points:    points,
	}
}

// rank orders by points descending, then team name, then id.
func rank(entries []RankingEntry) []RankingEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		if entries[i].TeamName != entries[j].TeamName {
			return entries[i].TeamName < entries[j].TeamName
		}
		return entries[i].TeamID < entries[j].TeamID
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}
