package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/fantasyteam"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/lineup"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/player"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/scoring"
	"github.com/edsoncmach/cartola-paranaense/internal/infrastructure/repository/memory"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/logging"
)

type settlementFixture struct {
	teams   *memory.TeamRepository
	players *memory.PlayerRepository
	lineups *memory.LineupRepository
	rounds  *memory.RoundRepository
	matches *memory.MatchRepository
	scores  *memory.ScoreRepository
	closer  scoring.RoundCloser
	service *SettlementService
}

func newSettlementFixture(t *testing.T) *settlementFixture {
	t.Helper()

	f := &settlementFixture{
		teams: memory.NewTeamRepository([]fantasyteam.Team{
			{ID: "team-1", UserID: "user-1", Name: "Furacão FC", Balance: money.MustParse("100.00")},
		}),
		players: memory.NewPlayerRepository(memory.SeedPlayers()),
		rounds:  memory.NewRoundRepository(memory.SeedRounds(fixtureNow)),
		matches: memory.NewMatchRepository(memory.SeedMatches()),
		scores:  memory.NewScoreRepository(),
	}
	f.lineups = memory.NewLineupRepository(f.teams)
	f.closer = memory.NewRoundCloser(f.players, f.teams, f.rounds)
	f.service = NewSettlementService(f.rounds, f.matches, f.players, f.lineups, f.scores, f.closer, nil, 2, logging.NewNop())

	entries := make([]lineup.Entry, 0, 12)
	for _, id := range memory.SeedSquad433() {
		entries = append(entries, lineup.Entry{PlayerID: id, IsCaptain: id == "cap-ata-1"})
	}
	if err := f.lineups.Replace(context.Background(), lineup.ReplaceInput{
		TeamID:     "team-1",
		RoundID:    memory.RoundIDFirst,
		Scheme:     "4-3-3",
		Entries:    entries,
		NewBalance: money.MustParse("40.00"),
	}); err != nil {
		t.Fatalf("seed lineup: %v", err)
	}
	return f
}

func (f *settlementFixture) settleFirstRound(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	if err := f.service.Settle(ctx, scoring.SettleInput{
		RoundID:   memory.RoundIDFirst,
		MatchID:   "r1-cap-cfc",
		HomeScore: 2,
		AwayScore: 1,
		Stats: []scoring.Stats{
			{PlayerID: "cap-ata-1", Played: true, Goals: 2},
			{PlayerID: "cap-gol-1", Played: true},
			{PlayerID: "cfc-zag-1", Played: true},
			{PlayerID: "cap-zag-1", Played: false},
		},
	}); err != nil {
		t.Fatalf("settle r1-cap-cfc: %v", err)
	}

	if err := f.service.Settle(ctx, scoring.SettleInput{
		RoundID: memory.RoundIDFirst,
		MatchID: "r1-lec-ofec",
		Stats: []scoring.Stats{
			{PlayerID: "lec-mei-1", Played: true},
			{PlayerID: "ofec-ata-1", Played: true, Assists: 1},
		},
	}); err != nil {
		t.Fatalf("settle r1-lec-ofec: %v", err)
	}
}

func TestSettlementService_SettleDoublesCaptainInTeamTotal(t *testing.T) {
	f := newSettlementFixture(t)
	f.settleFirstRound(t)

	playerScores, err := f.scores.ListPlayerScoresByRound(context.Background(), memory.RoundIDFirst)
	if err != nil {
		t.Fatalf("list player scores: %v", err)
	}
	if len(playerScores) != 5 {
		t.Fatalf("expected 5 scored players, got %d", len(playerScores))
	}
	points := sumPlayerPoints(playerScores)
	if points["cap-ata-1"].String() != "17.00" || points["cfc-zag-1"].String() != "-1.00" || points["ofec-ata-1"].String() != "5.00" {
		t.Fatalf("unexpected player points: %v", points)
	}

	teamScores, err := f.scores.ListTeamScoresByRound(context.Background(), memory.RoundIDFirst)
	if err != nil {
		t.Fatalf("list team scores: %v", err)
	}
	if len(teamScores) != 1 || teamScores[0].Points.String() != "38.00" {
		t.Fatalf("unexpected team scores: %+v", teamScores)
	}

	item, _, _ := f.matches.GetByID(context.Background(), "r1-cap-cfc")
	if !item.Completed() {
		t.Fatalf("expected match result to be stored")
	}
}

func TestSettlementService_ResettleReplacesScores(t *testing.T) {
	f := newSettlementFixture(t)
	f.settleFirstRound(t)

	if err := f.service.Settle(context.Background(), scoring.SettleInput{
		RoundID:   memory.RoundIDFirst,
		MatchID:   "r1-cap-cfc",
		HomeScore: 0,
		AwayScore: 0,
		Stats:     []scoring.Stats{{PlayerID: "cap-gol-1", Played: true}},
	}); err != nil {
		t.Fatalf("resettle: %v", err)
	}

	teamScores, _ := f.scores.ListTeamScoresByRound(context.Background(), memory.RoundIDFirst)
	// goalkeeper clean sheet 5.00 plus the second match's 0.00 and 5.00
	if len(teamScores) != 1 || teamScores[0].Points.String() != "10.00" {
		t.Fatalf("unexpected team scores after resettle: %+v", teamScores)
	}
}

func TestSettlementService_SettleValidation(t *testing.T) {
	f := newSettlementFixture(t)

	tests := []struct {
		name  string
		input scoring.SettleInput
		want  error
	}{
		{
			name:  "missing match",
			input: scoring.SettleInput{RoundID: memory.RoundIDFirst, MatchID: "nope"},
			want:  ErrNotFound,
		},
		{
			name:  "match from another round",
			input: scoring.SettleInput{RoundID: memory.RoundIDFirst, MatchID: "r2-cfc-cap"},
			want:  ErrInvalidInput,
		},
		{
			name:  "negative score",
			input: scoring.SettleInput{RoundID: memory.RoundIDFirst, MatchID: "r1-cap-cfc", HomeScore: -1},
			want:  ErrInvalidInput,
		},
		{
			name: "player outside the match",
			input: scoring.SettleInput{RoundID: memory.RoundIDFirst, MatchID: "r1-cap-cfc", Stats: []scoring.Stats{
				{PlayerID: "lec-ata-1", Played: true},
			}},
			want: ErrInvalidInput,
		},
		{
			name: "duplicate stats",
			input: scoring.SettleInput{RoundID: memory.RoundIDFirst, MatchID: "r1-cap-cfc", Stats: []scoring.Stats{
				{PlayerID: "cap-gol-1", Played: true},
				{PlayerID: "cap-gol-1", Played: true},
			}},
			want: ErrInvalidInput,
		},
		{
			name: "unknown player",
			input: scoring.SettleInput{RoundID: memory.RoundIDFirst, MatchID: "r1-cap-cfc", Stats: []scoring.Stats{
				{PlayerID: "ghost", Played: true},
			}},
			want: ErrNotFound,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := f.service.Settle(context.Background(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSettlementService_ApplyValorizationClosesRound(t *testing.T) {
	f := newSettlementFixture(t)
	ctx := context.Background()

	if err := f.service.ApplyValorization(ctx, memory.RoundIDFirst); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput with unsettled matches, got %v", err)
	}

	f.settleFirstRound(t)
	if err := f.service.ApplyValorization(ctx, memory.RoundIDFirst); err != nil {
		t.Fatalf("apply valorization: %v", err)
	}

	wantPrices := map[string]string{
		"cap-ata-1":  "6.45",
		"cap-gol-1":  "4.75",
		"cfc-zag-1":  "4.65",
		"lec-mei-1":  "4.75",
		"ofec-ata-1": "5.25",
		"cap-zag-1":  "5.00",
	}
	for id, want := range wantPrices {
		item, exists, err := f.players.GetByID(ctx, id)
		if err != nil || !exists {
			t.Fatalf("get player %s: exists=%v err=%v", id, exists, err)
		}
		if item.Price.String() != want {
			t.Fatalf("player %s price = %s, want %s", id, item.Price, want)
		}
	}

	team, _, _ := f.teams.GetByID(ctx, "team-1")
	if team.Balance.String() != "100.85" {
		t.Fatalf("expected team balance 100.85 after lineup value refund, got %s", team.Balance)
	}

	roundItem, _, _ := f.rounds.GetByID(ctx, memory.RoundIDFirst)
	if !roundItem.Finished {
		t.Fatalf("expected round to be finished")
	}

	if err := f.service.ApplyValorization(ctx, memory.RoundIDFirst); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on finished round, got %v", err)
	}
	err := f.service.Settle(ctx, scoring.SettleInput{RoundID: memory.RoundIDFirst, MatchID: "r1-cap-cfc"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput when settling a finished round, got %v", err)
	}
}

type failingCloser struct {
	next  scoring.RoundCloser
	fails int
}

func (c *failingCloser) CloseRound(ctx context.Context, closure scoring.RoundClosure) error {
	if c.fails > 0 {
		c.fails--
		return errors.New("connection reset by peer")
	}
	return c.next.CloseRound(ctx, closure)
}

func TestSettlementService_FailedCloseLeavesRoundRetryable(t *testing.T) {
	f := newSettlementFixture(t)
	ctx := context.Background()
	f.settleFirstRound(t)
	f.service.closer = &failingCloser{next: f.closer, fails: 1}

	before, _, _ := f.players.GetByID(ctx, "cap-ata-1")

	err := f.service.ApplyValorization(ctx, memory.RoundIDFirst)
	if !errors.Is(err, ErrPersistenceFailure) {
		t.Fatalf("expected ErrPersistenceFailure, got %v", err)
	}

	after, _, _ := f.players.GetByID(ctx, "cap-ata-1")
	if after.Price != before.Price {
		t.Fatalf("expected price untouched after failed close, got %s want %s", after.Price, before.Price)
	}
	team, _, _ := f.teams.GetByID(ctx, "team-1")
	if team.Balance.String() != "40.00" {
		t.Fatalf("expected balance untouched after failed close, got %s", team.Balance)
	}
	roundItem, _, _ := f.rounds.GetByID(ctx, memory.RoundIDFirst)
	if roundItem.Finished {
		t.Fatalf("expected round to stay open after failed close")
	}

	if err := f.service.ApplyValorization(ctx, memory.RoundIDFirst); err != nil {
		t.Fatalf("retry apply valorization: %v", err)
	}
	after, _, _ = f.players.GetByID(ctx, "cap-ata-1")
	if after.Price.String() != "6.45" {
		t.Fatalf("expected a single repricing on retry, got %s", after.Price)
	}
	team, _, _ = f.teams.GetByID(ctx, "team-1")
	if team.Balance.String() != "100.85" {
		t.Fatalf("expected a single refund on retry, got %s", team.Balance)
	}
}

func TestRoundCloser_RejectsSecondClose(t *testing.T) {
	f := newSettlementFixture(t)
	ctx := context.Background()
	closure := scoring.RoundClosure{
		RoundID:      memory.RoundIDFirst,
		PriceChanges: []player.PriceChange{{PlayerID: "cap-ata-1", NewPrice: money.MustParse("7.00"), Variation: money.MustParse("2.00")}},
		Refunds:      map[string]money.Amount{"team-1": money.MustParse("1.00")},
	}
	if err := f.closer.CloseRound(ctx, closure); err != nil {
		t.Fatalf("close round: %v", err)
	}
	if err := f.closer.CloseRound(ctx, closure); !errors.Is(err, scoring.ErrRoundFinished) {
		t.Fatalf("expected ErrRoundFinished, got %v", err)
	}

	team, _, _ := f.teams.GetByID(ctx, "team-1")
	if team.Balance.String() != "41.00" {
		t.Fatalf("expected one refund, got %s", team.Balance)
	}

	// an unknown team aborts the whole close
	open := scoring.RoundClosure{
		RoundID:      memory.RoundIDSecond,
		PriceChanges: []player.PriceChange{{PlayerID: "cap-ata-1", NewPrice: money.MustParse("9.00")}},
		Refunds:      map[string]money.Amount{"ghost": money.MustParse("1.00")},
	}
	if err := f.closer.CloseRound(ctx, open); err == nil {
		t.Fatalf("expected unknown team to fail the close")
	}
	item, _, _ := f.players.GetByID(ctx, "cap-ata-1")
	if item.Price.String() != "7.00" {
		t.Fatalf("expected price untouched by aborted close, got %s", item.Price)
	}
	roundItem, _, _ := f.rounds.GetByID(ctx, memory.RoundIDSecond)
	if roundItem.Finished {
		t.Fatalf("expected round %s to stay open", memory.RoundIDSecond)
	}
}
