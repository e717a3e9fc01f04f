package roster

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/formation"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/player"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/round"
)

var (
	testCloseAt = time.Date(2026, 3, 7, 18, 0, 0, 0, time.UTC)
	testNow     = testCloseAt.Add(-2 * time.Hour)
)

func openRound() *round.Round {
	return &round.Round{ID: "r1", Name: "Rodada 1", Type: round.TypeRegular, Leg: round.LegSingle, MarketCloseAt: testCloseAt}
}

func newPlayer(id string, position player.Position, price string) player.Player {
	return player.Player{
		ID:       id,
		ClubID:   "c1",
		Name:     "Player " + id,
		Position: position,
		Price:    money.MustParse(price),
		Status:   player.StatusLikely,
	}
}

// fullSquad433 returns twelve players matching the 4-3-3 limits.
func fullSquad433() []player.Player {
	return []player.Player{
		newPlayer("gol1", player.PositionGoalkeeper, "5.00"),
		newPlayer("zag1", player.PositionCenterBack, "5.00"),
		newPlayer("zag2", player.PositionCenterBack, "5.00"),
		newPlayer("lat1", player.PositionFullback, "5.00"),
		newPlayer("lat2", player.PositionFullback, "5.00"),
		newPlayer("mei1", player.PositionMidfielder, "5.00"),
		newPlayer("mei2", player.PositionMidfielder, "5.00"),
		newPlayer("mei3", player.PositionMidfielder, "5.00"),
		newPlayer("ata1", player.PositionForward, "5.00"),
		newPlayer("ata2", player.PositionForward, "5.00"),
		newPlayer("ata3", player.PositionForward, "5.00"),
		newPlayer("tec1", player.PositionCoach, "5.00"),
	}
}

func TestToggle_GoalkeeperScenario(t *testing.T) {
	l := New("team-1", "r1", formation.MustLookup("4-3-3"), money.MustParse("100.00"))

	result, err := l.Toggle(openRound(), testNow, newPlayer("gk1", player.PositionGoalkeeper, "8.50"))
	if err != nil {
		t.Fatalf("toggle first goalkeeper: %v", err)
	}
	if result != ToggleAdded {
		t.Fatalf("expected added, got %s", result)
	}
	if l.Balance().String() != "91.50" {
		t.Fatalf("expected balance 91.50, got %s", l.Balance())
	}
	if l.Size() != 1 {
		t.Fatalf("expected squad size 1, got %d", l.Size())
	}

	_, err = l.Toggle(openRound(), testNow, newPlayer("gk2", player.PositionGoalkeeper, "4.00"))
	if !errors.Is(err, ErrSlotLimitExceeded) {
		t.Fatalf("expected ErrSlotLimitExceeded, got %v", err)
	}
	if l.Balance().String() != "91.50" {
		t.Fatalf("expected balance unchanged at 91.50, got %s", l.Balance())
	}
	if l.Size() != 1 {
		t.Fatalf("expected squad size unchanged, got %d", l.Size())
	}
}

func TestToggle_RemoveCreditsAndClearsCaptain(t *testing.T) {
	l := New("team-1", "r1", formation.Default(), money.MustParse("100.00"))
	striker := newPlayer("ata1", player.PositionForward, "12.30")

	if _, err := l.Toggle(openRound(), testNow, striker); err != nil {
		t.Fatalf("add striker: %v", err)
	}
	if err := l.SetCaptain(openRound(), testNow, striker.ID); err != nil {
		t.Fatalf("set captain: %v", err)
	}

	result, err := l.Toggle(openRound(), testNow, striker)
	if err != nil {
		t.Fatalf("remove striker: %v", err)
	}
	if result != ToggleRemoved {
		t.Fatalf("expected removed, got %s", result)
	}
	if l.Balance() != money.MustParse("100.00") {
		t.Fatalf("expected full refund, got %s", l.Balance())
	}
	if l.CaptainID() != "" {
		t.Fatalf("expected captain cleared, got %q", l.CaptainID())
	}
}

func TestToggle_RejectionOrder(t *testing.T) {
	t.Run("market closed wins over everything", func(t *testing.T) {
		l := New("team-1", "r1", formation.Default(), money.MustParse("1.00"))
		_, err := l.Toggle(openRound(), testCloseAt, newPlayer("gk1", player.PositionGoalkeeper, "8.50"))
		if !errors.Is(err, ErrMarketClosed) {
			t.Fatalf("expected ErrMarketClosed, got %v", err)
		}
	})

	t.Run("squad full before funds", func(t *testing.T) {
		l := New("team-1", "r1", formation.Default(), money.MustParse("60.00"))
		for _, p := range fullSquad433() {
			if _, err := l.Toggle(openRound(), testNow, p); err != nil {
				t.Fatalf("add %s: %v", p.ID, err)
			}
		}
		_, err := l.Toggle(openRound(), testNow, newPlayer("extra", player.PositionForward, "99.00"))
		if !errors.Is(err, ErrSquadFull) {
			t.Fatalf("expected ErrSquadFull, got %v", err)
		}
	})

	t.Run("funds before slot limit", func(t *testing.T) {
		l := New("team-1", "r1", formation.Default(), money.MustParse("10.00"))
		if _, err := l.Toggle(openRound(), testNow, newPlayer("gk1", player.PositionGoalkeeper, "5.00")); err != nil {
			t.Fatalf("add goalkeeper: %v", err)
		}
		_, err := l.Toggle(openRound(), testNow, newPlayer("gk2", player.PositionGoalkeeper, "6.00"))
		if !errors.Is(err, ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
	})

	t.Run("price equal to balance is allowed", func(t *testing.T) {
		l := New("team-1", "r1", formation.Default(), money.MustParse("5.00"))
		if _, err := l.Toggle(openRound(), testNow, newPlayer("gk1", player.PositionGoalkeeper, "5.00")); err != nil {
			t.Fatalf("expected exact balance purchase to succeed: %v", err)
		}
		if l.Balance() != 0 {
			t.Fatalf("expected zero balance, got %s", l.Balance())
		}
	})
}

func TestToggle_ZeroLimitPositionNeverAdded(t *testing.T) {
	l := New("team-1", "r1", formation.MustLookup("3-5-2"), money.MustParse("100.00"))
	_, err := l.Toggle(openRound(), testNow, newPlayer("lat1", player.PositionFullback, "1.00"))
	if !errors.Is(err, ErrSlotLimitExceeded) {
		t.Fatalf("expected ErrSlotLimitExceeded for fullback in 3-5-2, got %v", err)
	}
	if l.Size() != 0 {
		t.Fatalf("expected empty squad")
	}
}

func TestToggle_ClosedWindowLeavesStateUnchanged(t *testing.T) {
	l := New("team-1", "r1", formation.Default(), money.MustParse("100.00"))
	gk := newPlayer("gk1", player.PositionGoalkeeper, "8.50")
	if _, err := l.Toggle(openRound(), testNow, gk); err != nil {
		t.Fatalf("add goalkeeper: %v", err)
	}
	before := l.Snapshot()

	closedAt := testCloseAt.Add(time.Minute)
	for _, p := range []player.Player{gk, newPlayer("zag1", player.PositionCenterBack, "3.00")} {
		if _, err := l.Toggle(openRound(), closedAt, p); !errors.Is(err, ErrMarketClosed) {
			t.Fatalf("expected ErrMarketClosed toggling %s, got %v", p.ID, err)
		}
	}

	after := l.Snapshot()
	if fmt.Sprint(before) != fmt.Sprint(after) {
		t.Fatalf("state changed while market closed:\nbefore=%+v\nafter=%+v", before, after)
	}
}

func TestToggle_StaleRoundIsClosed(t *testing.T) {
	l := New("team-1", "r1", formation.Default(), money.MustParse("100.00"))
	next := &round.Round{ID: "r2", MarketCloseAt: testCloseAt.Add(7 * 24 * time.Hour)}
	_, err := l.Toggle(next, testNow, newPlayer("gk1", player.PositionGoalkeeper, "1.00"))
	if !errors.Is(err, ErrMarketClosed) {
		t.Fatalf("expected ErrMarketClosed for a ledger of a non-active round, got %v", err)
	}
	if _, err := l.Toggle(nil, testNow, newPlayer("gk1", player.PositionGoalkeeper, "1.00")); !errors.Is(err, ErrMarketClosed) {
		t.Fatalf("expected ErrMarketClosed without active round, got %v", err)
	}
}

func TestToggle_BalanceInvariantOverRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pool := append(fullSquad433(),
		newPlayer("gol2", player.PositionGoalkeeper, "7.15"),
		newPlayer("zag3", player.PositionCenterBack, "3.33"),
		newPlayer("mei4", player.PositionMidfielder, "11.07"),
		newPlayer("ata4", player.PositionForward, "19.99"),
		newPlayer("tec2", player.PositionCoach, "0.01"),
	)
	initial := money.MustParse("80.00")

	for run := 0; run < 50; run++ {
		l := New("team-1", "r1", formation.All()[run%len(formation.All())], initial)
		for step := 0; step < 200; step++ {
			p := pool[rng.Intn(len(pool))]
			before := l.Selected()
			_, err := l.Toggle(openRound(), testNow, p)
			if errors.Is(err, ErrSlotLimitExceeded) && len(before) != l.Size() {
				t.Fatalf("slot limit rejection changed the selected set")
			}
			if got, want := l.Balance(), initial-l.Spent(); got != want {
				t.Fatalf("run %d step %d: balance %s, want %s", run, step, got, want)
			}
			if l.Balance() < 0 {
				t.Fatalf("balance went negative: %s", l.Balance())
			}
			for _, position := range player.DisplayOrder {
				if l.Count(position) > l.Scheme().Limit(position) {
					t.Fatalf("position %s over limit in %s", position, l.Scheme().Name)
				}
			}
		}
	}
}

func TestSetCaptain(t *testing.T) {
	l := New("team-1", "r1", formation.Default(), money.MustParse("100.00"))
	a := newPlayer("ata1", player.PositionForward, "1.00")
	b := newPlayer("ata2", player.PositionForward, "1.00")
	for _, p := range []player.Player{a, b} {
		if _, err := l.Toggle(openRound(), testNow, p); err != nil {
			t.Fatalf("add %s: %v", p.ID, err)
		}
	}

	if err := l.SetCaptain(openRound(), testNow, "unknown"); err != nil {
		t.Fatalf("set unknown captain: %v", err)
	}
	if l.CaptainID() != "" {
		t.Fatalf("expected no captain for unknown player")
	}

	_ = l.SetCaptain(openRound(), testNow, a.ID)
	_ = l.SetCaptain(openRound(), testNow, b.ID)
	if l.CaptainID() != b.ID {
		t.Fatalf("expected captain %s, got %s", b.ID, l.CaptainID())
	}

	captains := 0
	for _, e := range l.Snapshot().Entries {
		if e.IsCaptain {
			captains++
		}
	}
	if captains != 1 {
		t.Fatalf("expected exactly one captain entry, got %d", captains)
	}
}

func TestSellAll(t *testing.T) {
	l := New("team-1", "r1", formation.Default(), money.MustParse("100.00"))
	for _, p := range fullSquad433()[:5] {
		if _, err := l.Toggle(openRound(), testNow, p); err != nil {
			t.Fatalf("add %s: %v", p.ID, err)
		}
	}
	_ = l.SetCaptain(openRound(), testNow, "gol1")

	if err := l.SellAll(openRound(), testCloseAt); !errors.Is(err, ErrMarketClosed) {
		t.Fatalf("expected ErrMarketClosed, got %v", err)
	}
	if l.Size() != 5 {
		t.Fatalf("expected squad untouched after rejected sell-all")
	}

	if err := l.SellAll(openRound(), testNow); err != nil {
		t.Fatalf("sell all: %v", err)
	}
	if l.Size() != 0 || l.CaptainID() != "" {
		t.Fatalf("expected empty squad without captain")
	}
	if l.Balance() != money.MustParse("100.00") {
		t.Fatalf("expected full refund, got %s", l.Balance())
	}
}

func TestChangeScheme(t *testing.T) {
	t.Run("empty squad switches directly", func(t *testing.T) {
		l := New("team-1", "r1", formation.Default(), money.MustParse("100.00"))
		if err := l.ChangeScheme(openRound(), testNow, formation.MustLookup("3-5-2")); err != nil {
			t.Fatalf("change scheme: %v", err)
		}
		if l.Scheme().Name != "3-5-2" {
			t.Fatalf("expected 3-5-2, got %s", l.Scheme().Name)
		}
	})

	t.Run("non-empty squad requires confirmation then resets", func(t *testing.T) {
		l := New("team-1", "r1", formation.Default(), money.MustParse("100.00"))
		for _, p := range fullSquad433()[:4] {
			if _, err := l.Toggle(openRound(), testNow, p); err != nil {
				t.Fatalf("add %s: %v", p.ID, err)
			}
		}

		err := l.ChangeScheme(openRound(), testNow, formation.MustLookup("3-5-2"))
		if !errors.Is(err, ErrConfirmationRequired) {
			t.Fatalf("expected ErrConfirmationRequired, got %v", err)
		}
		if l.Size() != 4 || l.Scheme().Name != "4-3-3" {
			t.Fatalf("expected state unchanged before confirmation")
		}

		if err := l.ApplySchemeChange(openRound(), testNow, formation.MustLookup("3-5-2")); err != nil {
			t.Fatalf("apply scheme change: %v", err)
		}
		if l.Size() != 0 {
			t.Fatalf("expected empty squad, got %d", l.Size())
		}
		if l.Balance() != money.MustParse("100.00") {
			t.Fatalf("expected balance restored, got %s", l.Balance())
		}
		if l.Scheme().Name != "3-5-2" {
			t.Fatalf("expected 3-5-2, got %s", l.Scheme().Name)
		}
	})
}

func TestConfirm(t *testing.T) {
	build := func(t *testing.T, n int, captain string) *Ledger {
		t.Helper()
		l := New("team-1", "r1", formation.Default(), money.MustParse("100.00"))
		for _, p := range fullSquad433()[:n] {
			if _, err := l.Toggle(openRound(), testNow, p); err != nil {
				t.Fatalf("add %s: %v", p.ID, err)
			}
		}
		_ = l.SetCaptain(openRound(), testNow, captain)
		return l
	}

	tests := []struct {
		name    string
		size    int
		captain string
		now     time.Time
		wantErr error
	}{
		{name: "complete with captain", size: 12, captain: "ata1", now: testNow},
		{name: "eleven players", size: 11, captain: "ata1", now: testNow, wantErr: ErrIncompleteSquad},
		{name: "no captain", size: 12, captain: "", now: testNow, wantErr: ErrNoCaptain},
		{name: "window closed", size: 12, captain: "ata1", now: testCloseAt, wantErr: ErrMarketClosed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := build(t, tc.size, tc.captain)
			snapshot, err := l.Confirm(openRound(), tc.now)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("confirm: %v", err)
			}
			if len(snapshot.Entries) != 12 {
				t.Fatalf("expected 12 entries, got %d", len(snapshot.Entries))
			}
			if snapshot.NewBalance != money.MustParse("40.00") {
				t.Fatalf("expected new balance 40.00, got %s", snapshot.NewBalance)
			}
			if snapshot.Scheme != "4-3-3" || snapshot.RoundID != "r1" || snapshot.TeamID != "team-1" {
				t.Fatalf("unexpected snapshot header: %+v", snapshot)
			}
		})
	}
}

func TestRestore_DoesNotDebitAgain(t *testing.T) {
	squad := fullSquad433()
	stored := money.MustParse("40.00")

	l := Restore("team-1", "r1", formation.Default(), squad, "mei2", stored)
	if l.Balance() != stored {
		t.Fatalf("expected stored balance %s, got %s", stored, l.Balance())
	}
	if l.Size() != 12 {
		t.Fatalf("expected 12 restored players, got %d", l.Size())
	}
	if l.CaptainID() != "mei2" {
		t.Fatalf("expected captain restored, got %q", l.CaptainID())
	}
	if err := l.Validate(); err != nil {
		t.Fatalf("restored squad should validate: %v", err)
	}

	orphan := Restore("team-1", "r1", formation.Default(), squad[:2], "ata1", stored)
	if orphan.CaptainID() != "" {
		t.Fatalf("expected captain outside squad to be dropped")
	}
}
