package standings

import (
	"testing"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/club"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/match"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/round"
)

func score(v int) *int {
	return &v
}

func played(id, roundID, home, away string, homeScore, awayScore int) match.Match {
	return match.Match{
		ID:         id,
		RoundID:    roundID,
		HomeClubID: home,
		AwayClubID: away,
		HomeScore:  score(homeScore),
		AwayScore:  score(awayScore),
	}
}

func rowByClub(t *testing.T, table Table, clubID string) Row {
	t.Helper()
	for _, row := range table.Rows {
		if row.ClubID == clubID {
			return row
		}
	}
	t.Fatalf("club %s missing from table %q", clubID, table.Group)
	return Row{}
}

func TestRecompute_HomeWinScenario(t *testing.T) {
	clubs := []club.Club{{ID: "home", Name: "Home"}, {ID: "away", Name: "Away"}}
	matches := []match.Match{played("m1", "r1", "home", "away", 2, 1)}

	tables := Recompute(clubs, matches)
	if len(tables) != 1 || tables[0].Group != "" {
		t.Fatalf("expected one ungrouped table, got %+v", tables)
	}

	home := rowByClub(t, tables[0], "home")
	if home.Points != 3 || home.Wins != 1 || home.GoalDifference != 1 || home.Played != 1 {
		t.Fatalf("unexpected home row: %+v", home)
	}
	away := rowByClub(t, tables[0], "away")
	if away.Points != 0 || away.Wins != 0 || away.GoalDifference != -1 || away.Played != 1 {
		t.Fatalf("unexpected away row: %+v", away)
	}
	if tables[0].Rows[0].ClubID != "home" || tables[0].Rows[0].Position != 1 {
		t.Fatalf("expected home club first, got %+v", tables[0].Rows[0])
	}
}

func TestRecompute_SkipsUnplayedMatches(t *testing.T) {
	clubs := []club.Club{{ID: "a"}, {ID: "b"}}
	matches := []match.Match{
		{ID: "m1", RoundID: "r1", HomeClubID: "a", AwayClubID: "b"},
		{ID: "m2", RoundID: "r1", HomeClubID: "a", AwayClubID: "b", HomeScore: score(1)},
	}

	tables := Recompute(clubs, matches)
	for _, row := range tables[0].Rows {
		if row.Played != 0 || row.Points != 0 {
			t.Fatalf("expected untouched row, got %+v", row)
		}
	}
}

func TestRecompute_GroupsAndOrdering(t *testing.T) {
	clubs := []club.Club{
		{ID: "a1", Group: "A"},
		{ID: "b1", Group: "B"},
		{ID: "a2", Group: "A"},
		{ID: "b2", Group: "B"},
		{ID: "a3", Group: "A"},
		{ID: "x", Group: ""},
	}
	matches := []match.Match{
		played("m1", "r1", "a1", "a2", 0, 0),
		played("m2", "r1", "a3", "a1", 3, 0),
		played("m3", "r1", "b2", "b1", 1, 0),
		played("m4", "r2", "a2", "a3", 1, 1),
	}

	tables := Recompute(clubs, matches)
	if len(tables) != 2 {
		t.Fatalf("expected groups A and B only, got %d tables", len(tables))
	}
	if tables[0].Group != "A" || tables[1].Group != "B" {
		t.Fatalf("unexpected group order: %q %q", tables[0].Group, tables[1].Group)
	}

	gotA := []string{tables[0].Rows[0].ClubID, tables[0].Rows[1].ClubID, tables[0].Rows[2].ClubID}
	wantA := []string{"a3", "a2", "a1"}
	for i := range wantA {
		if gotA[i] != wantA[i] {
			t.Fatalf("group A order: got %v want %v", gotA, wantA)
		}
	}
	if tables[1].Rows[0].ClubID != "b2" {
		t.Fatalf("expected b2 to lead group B, got %s", tables[1].Rows[0].ClubID)
	}
}

func TestRecompute_FullTiesKeepEncounterOrder(t *testing.T) {
	clubs := []club.Club{{ID: "c"}, {ID: "a"}, {ID: "b"}}
	matches := []match.Match{
		played("m1", "r1", "c", "a", 1, 1),
		played("m2", "r1", "a", "b", 1, 1),
		played("m3", "r1", "b", "c", 1, 1),
	}

	tables := Recompute(clubs, matches)
	got := []string{tables[0].Rows[0].ClubID, tables[0].Rows[1].ClubID, tables[0].Rows[2].ClubID}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tied order: got %v want %v", got, want)
		}
	}
}

func TestRecompute_TotalsInvariants(t *testing.T) {
	clubs := []club.Club{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	matches := []match.Match{
		played("m1", "r1", "a", "b", 3, 2),
		played("m2", "r1", "c", "d", 0, 0),
		played("m3", "r2", "a", "c", 1, 4),
		played("m4", "r2", "b", "d", 2, 2),
		played("m5", "r3", "d", "a", 5, 1),
	}

	tables := Recompute(clubs, matches)
	gdSum := 0
	for _, row := range tables[0].Rows {
		if row.Points != 3*row.Wins+row.Draws {
			t.Fatalf("points mismatch for %s: %+v", row.ClubID, row)
		}
		if row.Played != row.Wins+row.Draws+row.Losses {
			t.Fatalf("played mismatch for %s: %+v", row.ClubID, row)
		}
		gdSum += row.GoalDifference
	}
	if gdSum != 0 {
		t.Fatalf("expected goal differences to sum to 0, got %d", gdSum)
	}
}

func TestRecompute_EmptyInputs(t *testing.T) {
	if tables := Recompute(nil, nil); len(tables) != 0 {
		t.Fatalf("expected no tables without clubs, got %d", len(tables))
	}
	tables := Recompute([]club.Club{{ID: "a"}}, nil)
	if len(tables) != 1 || len(tables[0].Rows) != 1 || tables[0].Rows[0].Points != 0 {
		t.Fatalf("expected zeroed single-row table, got %+v", tables)
	}
}

func TestRegularMatches(t *testing.T) {
	rounds := []round.Round{
		{ID: "r1", Type: round.TypeRegular},
		{ID: "q1", Type: round.TypeQuarter},
	}
	matches := []match.Match{
		played("m1", "r1", "a", "b", 1, 0),
		played("m2", "q1", "a", "b", 0, 3),
		played("m3", "unknown", "a", "b", 0, 3),
	}

	got := RegularMatches(rounds, matches)
	if len(got) != 1 || got[0].ID != "m1" {
		t.Fatalf("expected only regular-round match, got %+v", got)
	}
}
