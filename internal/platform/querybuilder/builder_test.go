package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("players").
		Where(Eq("club_id", "cap"), In("position", []any{"gol", "zag"})).
		OrderBy("price_cents DESC", "name").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM players WHERE club_id = $1 AND position IN ($2, $3) ORDER BY price_cents DESC, name LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "cap" || args[2] != "zag" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("players").Where(In("id", nil), Eq("club_id", "cap")).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM players WHERE 1=0 AND club_id = $1" || len(args) != 1 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("clubs").
		Columns("id", "name").
		Values("cap", "Athletico").
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO clubs (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "cap" || args[1] != "Athletico" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		PlayerID  string `db:"player_id"`
		IsCaptain bool   `db:"is_captain"`
		internal  int
	}

	query, args, err := InsertModels("lineup_players", []row{
		{PlayerID: "p1", IsCaptain: true},
		{PlayerID: "p2"},
	}, "")
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}

	wantQuery := "INSERT INTO lineup_players (player_id, is_captain) VALUES ($1, $2), ($3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "p1" || args[1] != true || args[2] != "p2" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[row]("lineup_players", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("teams").
		Set("name", "new").
		SetExpr("balance_cents", "balance_cents + ?", int64(150)).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "team-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE teams SET name = $1, balance_cents = balance_cents + $2, updated_at = NOW() WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "new" || args[1] != int64(150) || args[2] != "team-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_ExtraMarksStayLiteral(t *testing.T) {
	query, args, err := Update("players").
		SetExpr("name", "name || '?'").
		Where(Eq("id", "p1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}
	if query != "UPDATE players SET name = name || '?' WHERE id = $1" || len(args) != 1 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("lineups").
		Where(Eq("team_id", "team-1"), Eq("round_id", "r1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM lineups WHERE team_id = $1 AND round_id = $2" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("lineups").ToSQL(); err == nil {
		t.Fatalf("expected error for unfiltered delete")
	}
}
