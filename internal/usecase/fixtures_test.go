package usecase

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/fantasyteam"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/lineup"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	"github.com/edsoncmach/cartola-paranaense/internal/infrastructure/repository/memory"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/logging"
)

type sequenceIDGenerator struct {
	prefix string
	n      atomic.Int64
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("%s-%d", g.prefix, g.n.Add(1)), nil
}

var fixtureNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type rosterFixture struct {
	now      time.Time
	teams    *memory.TeamRepository
	players  *memory.PlayerRepository
	lineups  *memory.LineupRepository
	rounds   *memory.RoundRepository
	pending  *memory.ConfirmationStore
	roundSvc *RoundService
	service  *RosterService
}

func newRosterFixture(t *testing.T) *rosterFixture {
	return newRosterFixtureWithLineups(t, nil)
}

// newRosterFixtureWithLineups wires the roster service to the given lineup
// repository, or to the memory one when nil.
func newRosterFixtureWithLineups(t *testing.T, lineupRepo lineup.Repository) *rosterFixture {
	t.Helper()

	f := &rosterFixture{
		now: fixtureNow,
		teams: memory.NewTeamRepository([]fantasyteam.Team{
			{ID: "team-1", UserID: "user-1", Name: "Furacão FC", Balance: money.MustParse("100.00")},
			{ID: "team-2", UserID: "user-2", Name: "Coxa FC", Balance: money.MustParse("100.00")},
		}),
		players: memory.NewPlayerRepository(memory.SeedPlayers()),
		rounds:  memory.NewRoundRepository(memory.SeedRounds(fixtureNow)),
		pending: memory.NewConfirmationStore(),
	}
	f.lineups = memory.NewLineupRepository(f.teams)
	if lineupRepo == nil {
		lineupRepo = f.lineups
	}

	f.roundSvc = NewRoundService(f.rounds)
	f.service = NewRosterService(f.teams, f.players, lineupRepo, f.roundSvc, f.pending, RosterConfig{ConfirmationTTL: time.Minute}, logging.NewNop())
	f.setNow(fixtureNow)
	return f
}

func (f *rosterFixture) setNow(now time.Time) {
	f.now = now
	f.roundSvc.now = func() time.Time { return now }
	f.service.now = func() time.Time { return now }
}

func (f *rosterFixture) pickSquad(t *testing.T, userID string, playerIDs []string) {
	t.Helper()
	for _, id := range playerIDs {
		if _, err := f.service.Toggle(t.Context(), userID, id); err != nil {
			t.Fatalf("toggle %s: %v", id, err)
		}
	}
}

func (f *rosterFixture) teamBalance(t *testing.T, teamID string) money.Amount {
	t.Helper()
	item, exists, err := f.teams.GetByID(t.Context(), teamID)
	if err != nil || !exists {
		t.Fatalf("get team %s: exists=%v err=%v", teamID, exists, err)
	}
	return item.Balance
}
