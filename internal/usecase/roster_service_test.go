package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/confirmation"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/lineup"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/roster"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/round"
	"github.com/edsoncmach/cartola-paranaense/internal/infrastructure/repository/memory"
	lineupmock "github.com/edsoncmach/cartola-paranaense/internal/mocks/domain/lineup"
	"github.com/stretchr/testify/mock"
)

func TestRosterService_ToggleGoalkeeperThenSlotLimit(t *testing.T) {
	f := newRosterFixture(t)

	result, err := f.service.Toggle(t.Context(), "user-1", "cfc-gol-1")
	if err != nil {
		t.Fatalf("toggle goalkeeper: %v", err)
	}
	if result.Action != roster.ToggleAdded {
		t.Fatalf("expected added, got %s", result.Action)
	}
	if result.View.Balance.String() != "91.50" || len(result.View.Players) != 1 {
		t.Fatalf("unexpected view after first goalkeeper: balance=%s size=%d", result.View.Balance, len(result.View.Players))
	}
	if result.View.Window != round.WindowOpen {
		t.Fatalf("expected open window, got %s", result.View.Window)
	}

	_, err = f.service.Toggle(t.Context(), "user-1", "cap-gol-1")
	if !errors.Is(err, roster.ErrSlotLimitExceeded) {
		t.Fatalf("expected ErrSlotLimitExceeded, got %v", err)
	}

	view, err := f.service.Open(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("open roster: %v", err)
	}
	if view.Balance.String() != "91.50" || len(view.Players) != 1 {
		t.Fatalf("rejected toggle changed state: balance=%s size=%d", view.Balance, len(view.Players))
	}
}

func TestRosterService_ToggleUnknownPlayer(t *testing.T) {
	f := newRosterFixture(t)

	_, err := f.service.Toggle(t.Context(), "user-1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRosterService_OpenWithoutTeam(t *testing.T) {
	f := newRosterFixture(t)

	_, err := f.service.Open(t.Context(), "user-without-team")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRosterService_ConfirmPersistsAndRestoresWithoutDoubleDebit(t *testing.T) {
	f := newRosterFixture(t)
	f.pickSquad(t, "user-1", memory.SeedSquad433())

	if _, err := f.service.SetCaptain(t.Context(), "user-1", "cap-ata-1"); err != nil {
		t.Fatalf("set captain: %v", err)
	}
	view, err := f.service.Confirm(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if view.Balance.String() != "40.00" {
		t.Fatalf("expected balance 40.00, got %s", view.Balance)
	}
	if got := f.teamBalance(t, "team-1"); got.String() != "40.00" {
		t.Fatalf("expected stored team balance 40.00, got %s", got)
	}

	saved, exists, err := f.lineups.Restore(t.Context(), "team-1", memory.RoundIDFirst)
	if err != nil || !exists {
		t.Fatalf("restore lineup: exists=%v err=%v", exists, err)
	}
	if len(saved.Entries) != 12 || saved.CaptainID() != "cap-ata-1" || saved.BalanceAtSave.String() != "40.00" {
		t.Fatalf("unexpected saved lineup: %+v", saved)
	}

	fresh := NewRosterService(f.teams, f.players, f.lineups, f.roundSvc, f.pending, RosterConfig{ConfirmationTTL: time.Minute}, nil)
	fresh.now = func() time.Time { return f.now }
	restored, err := fresh.Open(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("open restored roster: %v", err)
	}
	if len(restored.Players) != 12 || restored.Balance.String() != "40.00" || restored.CaptainID != "cap-ata-1" {
		t.Fatalf("unexpected restored view: size=%d balance=%s captain=%s", len(restored.Players), restored.Balance, restored.CaptainID)
	}
	if restored.Scheme.Name != "4-3-3" {
		t.Fatalf("expected scheme 4-3-3, got %s", restored.Scheme.Name)
	}
}

func TestRosterService_ConfirmRejectsInvalidSquad(t *testing.T) {
	f := newRosterFixture(t)
	f.pickSquad(t, "user-1", memory.SeedSquad433()[:11])

	_, err := f.service.Confirm(t.Context(), "user-1")
	if !errors.Is(err, roster.ErrIncompleteSquad) {
		t.Fatalf("expected ErrIncompleteSquad, got %v", err)
	}

	f.pickSquad(t, "user-1", memory.SeedSquad433()[11:])
	_, err = f.service.Confirm(t.Context(), "user-1")
	if !errors.Is(err, roster.ErrNoCaptain) {
		t.Fatalf("expected ErrNoCaptain, got %v", err)
	}

	if _, exists, _ := f.lineups.Restore(t.Context(), "team-1", memory.RoundIDFirst); exists {
		t.Fatalf("expected nothing persisted")
	}
	if got := f.teamBalance(t, "team-1"); got.String() != "100.00" {
		t.Fatalf("expected untouched team balance, got %s", got)
	}
}

func TestRosterService_ClosedWindowRejectsChanges(t *testing.T) {
	f := newRosterFixture(t)
	if _, err := f.service.Toggle(t.Context(), "user-1", "cap-gol-1"); err != nil {
		t.Fatalf("toggle while open: %v", err)
	}

	f.setNow(fixtureNow.Add(72 * time.Hour))

	_, err := f.service.Toggle(t.Context(), "user-1", "cap-zag-1")
	if !errors.Is(err, roster.ErrMarketClosed) {
		t.Fatalf("expected ErrMarketClosed on add, got %v", err)
	}
	_, err = f.service.Toggle(t.Context(), "user-1", "cap-gol-1")
	if !errors.Is(err, roster.ErrMarketClosed) {
		t.Fatalf("expected ErrMarketClosed on removal, got %v", err)
	}

	view, err := f.service.Open(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if view.Window != round.WindowClosed || len(view.Players) != 1 || view.Balance.String() != "95.00" {
		t.Fatalf("unexpected view with closed window: %+v", view)
	}
}

func TestRosterService_PersistenceFailureKeepsLedgerForRetry(t *testing.T) {
	lineupRepo := lineupmock.NewRepository(t)
	f := newRosterFixtureWithLineups(t, lineupRepo)

	lineupRepo.
		On("Restore", mock.Anything, "team-1", memory.RoundIDFirst).
		Return(lineup.Lineup{}, false, nil).
		Once()
	lineupRepo.
		On("Replace", mock.Anything, mock.MatchedBy(func(in lineup.ReplaceInput) bool {
			return in.TeamID == "team-1" && len(in.Entries) == 12
		})).
		Return(errors.New("connection reset by peer")).
		Once()
	lineupRepo.
		On("Replace", mock.Anything, mock.MatchedBy(func(in lineup.ReplaceInput) bool {
			return in.TeamID == "team-1" && len(in.Entries) == 12 && in.NewBalance.String() == "40.00"
		})).
		Return(nil).
		Once()

	f.pickSquad(t, "user-1", memory.SeedSquad433())
	if _, err := f.service.SetCaptain(t.Context(), "user-1", "cap-gol-1"); err != nil {
		t.Fatalf("set captain: %v", err)
	}

	_, err := f.service.Confirm(t.Context(), "user-1")
	if !errors.Is(err, ErrPersistenceFailure) {
		t.Fatalf("expected ErrPersistenceFailure, got %v", err)
	}

	view, err := f.service.Open(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("open after failure: %v", err)
	}
	if len(view.Players) != 12 || view.CaptainID != "cap-gol-1" || view.Balance.String() != "40.00" {
		t.Fatalf("ledger changed after failed save: %+v", view)
	}

	if _, err := f.service.Confirm(t.Context(), "user-1"); err != nil {
		t.Fatalf("retry confirm: %v", err)
	}
}

func TestRosterService_SchemeChangeOnEmptySquadAppliesImmediately(t *testing.T) {
	f := newRosterFixture(t)

	result, err := f.service.RequestDestructiveChange(t.Context(), DestructiveChangeInput{
		UserID: "user-1",
		Kind:   string(confirmation.KindChangeScheme),
		Scheme: "3-5-2",
	})
	if err != nil {
		t.Fatalf("request scheme change: %v", err)
	}
	if !result.Applied || result.Pending != nil {
		t.Fatalf("expected immediate application, got %+v", result)
	}
	if result.View.Scheme.Name != "3-5-2" {
		t.Fatalf("expected 3-5-2, got %s", result.View.Scheme.Name)
	}

	_, err = f.service.Toggle(t.Context(), "user-1", "cap-lat-1")
	if !errors.Is(err, roster.ErrSlotLimitExceeded) {
		t.Fatalf("expected fullbacks to be excluded in 3-5-2, got %v", err)
	}
}

func TestRosterService_SchemeChangeNeedsConfirmation(t *testing.T) {
	f := newRosterFixture(t)
	f.pickSquad(t, "user-1", []string{"cap-gol-1", "cap-lat-1", "cap-ata-1"})

	result, err := f.service.RequestDestructiveChange(t.Context(), DestructiveChangeInput{
		UserID: "user-1",
		Kind:   "change_scheme",
		Scheme: "4-4-2",
	})
	if err != nil {
		t.Fatalf("request scheme change: %v", err)
	}
	if result.Applied || result.Pending == nil {
		t.Fatalf("expected a pending confirmation, got %+v", result)
	}
	if len(result.View.Players) != 3 || result.View.Scheme.Name != "4-3-3" {
		t.Fatalf("request must not mutate the squad: %+v", result.View)
	}
	if !result.Pending.ExpiresAt.Equal(fixtureNow.Add(time.Minute)) {
		t.Fatalf("unexpected expiry %s", result.Pending.ExpiresAt)
	}

	view, err := f.service.ConfirmDestructiveChange(t.Context(), "user-1", result.Pending.Token)
	if err != nil {
		t.Fatalf("confirm scheme change: %v", err)
	}
	if len(view.Players) != 0 || view.Balance.String() != "100.00" || view.Scheme.Name != "4-4-2" || view.CaptainID != "" {
		t.Fatalf("unexpected view after scheme change: %+v", view)
	}

	_, err = f.service.ConfirmDestructiveChange(t.Context(), "user-1", result.Pending.Token)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected token to be single-use, got %v", err)
	}
}

func TestRosterService_SellAllDeletesPersistedLineup(t *testing.T) {
	f := newRosterFixture(t)
	f.pickSquad(t, "user-1", memory.SeedSquad433())
	if _, err := f.service.SetCaptain(t.Context(), "user-1", "cap-mei-1"); err != nil {
		t.Fatalf("set captain: %v", err)
	}
	if _, err := f.service.Confirm(t.Context(), "user-1"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := f.service.Toggle(t.Context(), "user-1", "cap-ata-1"); err != nil {
		t.Fatalf("toggle after confirm: %v", err)
	}

	result, err := f.service.RequestDestructiveChange(t.Context(), DestructiveChangeInput{UserID: "user-1", Kind: "sell_all"})
	if err != nil {
		t.Fatalf("request sell all: %v", err)
	}
	if result.Pending == nil || result.Pending.Kind != confirmation.KindSellAll {
		t.Fatalf("expected pending sell-all, got %+v", result)
	}

	view, err := f.service.ConfirmDestructiveChange(t.Context(), "user-1", result.Pending.Token)
	if err != nil {
		t.Fatalf("confirm sell all: %v", err)
	}
	if len(view.Players) != 0 || view.Balance.String() != "100.00" {
		t.Fatalf("unexpected view after sell all: %+v", view)
	}
	if got := f.teamBalance(t, "team-1"); got.String() != "100.00" {
		t.Fatalf("expected restored team balance 100.00, got %s", got)
	}
	if _, exists, _ := f.lineups.Restore(t.Context(), "team-1", memory.RoundIDFirst); exists {
		t.Fatalf("expected persisted lineup to be deleted")
	}
}

func TestRosterService_ConfirmDestructiveChangeRejections(t *testing.T) {
	f := newRosterFixture(t)
	f.pickSquad(t, "user-1", []string{"cap-gol-1"})

	request := func() string {
		t.Helper()
		result, err := f.service.RequestDestructiveChange(t.Context(), DestructiveChangeInput{UserID: "user-1", Kind: "sell_all"})
		if err != nil || result.Pending == nil {
			t.Fatalf("request sell all: result=%+v err=%v", result, err)
		}
		return result.Pending.Token
	}

	token := request()
	f.setNow(fixtureNow.Add(2 * time.Minute))
	_, err = f.service.ConfirmDestructiveChange(t.Context(), "user-1", token)
	if !errors.Is(err, ErrConfirmationExpired) {
		t.Fatalf("expected ErrConfirmationExpired, got %v", err)
	}

	view, err := f.service.Open(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(view.Players) != 1 {
		t.Fatalf("rejected confirmations must not change the squad: %+v", view)
	}
}

func TestRosterService_ForeignTokenStaysUsableByOwner(t *testing.T) {
	f := newRosterFixture(t)
	f.pickSquad(t, "user-1", []string{"cap-gol-1"})
	f.pickSquad(t, "user-2", []string{"cfc-gol-1"})

	result, err := f.service.RequestDestructiveChange(t.Context(), DestructiveChangeInput{
		UserID: "user-1",
		Kind:   "change_scheme",
		Scheme: "4-4-2",
	})
	if err != nil || result.Pending == nil {
		t.Fatalf("request scheme change: result=%+v err=%v", result, err)
	}
	token := result.Pending.Token

	if _, err := f.service.ConfirmDestructiveChange(t.Context(), "user-2", token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user's token, got %v", err)
	}
	other, err := f.service.Open(t.Context(), "user-2")
	if err != nil {
		t.Fatalf("open user-2: %v", err)
	}
	if len(other.Players) != 1 {
		t.Fatalf("foreign confirmation must not touch user-2's squad: %+v", other)
	}

	view, err := f.service.ConfirmDestructiveChange(t.Context(), "user-1", token)
	if err != nil {
		t.Fatalf("owner confirm after foreign attempt: %v", err)
	}
	if view.Scheme.Name != "4-4-2" || len(view.Players) != 0 {
		t.Fatalf("expected empty 4-4-2 squad, got %+v", view)
	}
	if _, err := f.service.ConfirmDestructiveChange(t.Context(), "user-1", token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected a used token to be gone, got %v", err)
	}
}

func TestRosterService_ExpiredTokenReportedUntilSwept(t *testing.T) {
	f := newRosterFixture(t)
	f.pickSquad(t, "user-1", []string{"cap-gol-1"})

	result, err := f.service.RequestDestructiveChange(t.Context(), DestructiveChangeInput{UserID: "user-1", Kind: "sell_all"})
	if err != nil || result.Pending == nil {
		t.Fatalf("request sell all: result=%+v err=%v", result, err)
	}

	f.setNow(result.Pending.ExpiresAt)
	if swept, err := f.service.SweepExpired(t.Context()); err != nil || swept.Confirmations != 0 {
		t.Fatalf("expected token kept within retention, swept=%+v err=%v", swept, err)
	}
	if _, err := f.service.ConfirmDestructiveChange(t.Context(), "user-1", result.Pending.Token); !errors.Is(err, ErrConfirmationExpired) {
		t.Fatalf("expected ErrConfirmationExpired, got %v", err)
	}

	f.setNow(result.Pending.ExpiresAt.Add(confirmation.Retention))
	if swept, err := f.service.SweepExpired(t.Context()); err != nil || swept.Confirmations != 1 {
		t.Fatalf("expected token swept after retention, swept=%+v err=%v", swept, err)
	}
	if _, err := f.service.ConfirmDestructiveChange(t.Context(), "user-1", result.Pending.Token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after sweep, got %v", err)
	}
}

func TestRosterService_RequestDestructiveChangeValidation(t *testing.T) {
	f := newRosterFixture(t)

	tests := []struct {
		name  string
		input DestructiveChangeInput
		want  error
	}{
		{name: "unknown kind", input: DestructiveChangeInput{UserID: "user-1", Kind: "wipe"}, want: ErrInvalidInput},
		{name: "unknown scheme", input: DestructiveChangeInput{UserID: "user-1", Kind: "change_scheme", Scheme: "5-5-0"}, want: ErrInvalidInput},
		{name: "missing user", input: DestructiveChangeInput{Kind: "sell_all"}, want: ErrInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.RequestDestructiveChange(context.Background(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	f.setNow(fixtureNow.Add(72 * time.Hour))
	_, err := f.service.RequestDestructiveChange(t.Context(), DestructiveChangeInput{UserID: "user-1", Kind: "sell_all"})
	if !errors.Is(err, roster.ErrMarketClosed) {
		t.Fatalf("expected ErrMarketClosed, got %v", err)
	}
}

func TestRosterService_SweepExpired(t *testing.T) {
	f := newRosterFixture(t)
	f.pickSquad(t, "user-1", []string{"cap-gol-1"})
	if _, err := f.service.RequestDestructiveChange(t.Context(), DestructiveChangeInput{UserID: "user-1", Kind: "sell_all"}); err != nil {
		t.Fatalf("request: %v", err)
	}

	swept, err := f.service.SweepExpired(t.Context())
	if err != nil || swept.Confirmations != 0 || swept.Sessions != 0 {
		t.Fatalf("expected nothing to sweep yet: swept=%+v err=%v", swept, err)
	}

	f.setNow(fixtureNow.Add(time.Hour))
	swept, err = f.service.SweepExpired(t.Context())
	if err != nil || swept.Confirmations != 1 {
		t.Fatalf("expected one expired confirmation: swept=%+v err=%v", swept, err)
	}
}

func TestRosterService_SweepPrunesIdleSessions(t *testing.T) {
	f := newRosterFixture(t)
	f.pickSquad(t, "user-1", []string{"cap-gol-1"})

	f.setNow(fixtureNow.Add(20 * time.Minute))
	f.pickSquad(t, "user-2", []string{"cfc-gol-1"})

	// a call in flight keeps its session even when idle
	pinned := f.service.acquire("user-3")

	f.setNow(fixtureNow.Add(35 * time.Minute))
	swept, err := f.service.SweepExpired(t.Context())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if swept.Sessions != 1 {
		t.Fatalf("expected one idle session pruned, got %+v", swept)
	}

	f.service.mu.Lock()
	_, hasUser1 := f.service.sessions["user-1"]
	_, hasUser2 := f.service.sessions["user-2"]
	_, hasUser3 := f.service.sessions["user-3"]
	f.service.mu.Unlock()
	if hasUser1 || !hasUser2 || !hasUser3 {
		t.Fatalf("unexpected sessions after sweep: user-1=%v user-2=%v user-3=%v", hasUser1, hasUser2, hasUser3)
	}

	f.service.release(pinned, "")

	view, err := f.service.Open(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if len(view.Players) != 0 {
		t.Fatalf("expected unconfirmed picks dropped with the session, got %d players", len(view.Players))
	}

	view, err = f.service.Open(t.Context(), "user-2")
	if err != nil {
		t.Fatalf("open user-2: %v", err)
	}
	if len(view.Players) != 1 {
		t.Fatalf("expected recent session kept, got %d players", len(view.Players))
	}
}

func TestRosterService_SweepPrunesSessionsOfPastRounds(t *testing.T) {
	f := newRosterFixture(t)
	f.pickSquad(t, "user-1", []string{"cap-gol-1"})

	f.service.mu.Lock()
	f.service.sessions["user-1"].roundID = "r0"
	f.service.mu.Unlock()

	swept, err := f.service.SweepExpired(t.Context())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if swept.Sessions != 1 {
		t.Fatalf("expected session of a past round pruned, got %+v", swept)
	}
}
