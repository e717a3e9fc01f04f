package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestUniqueViolation(t *testing.T) {
	t.Run("reports constraint of a wrapped unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert league: %w", &pq.Error{Code: "23505", Constraint: "uq_leagues_invite_code"})
		constraint, ok := uniqueViolation(err)
		if !ok || constraint != "uq_leagues_invite_code" {
			t.Fatalf("expected unique violation on uq_leagues_invite_code, got %q %v", constraint, ok)
		}
	})

	t.Run("ignores other postgres errors", func(t *testing.T) {
		if _, ok := uniqueViolation(&pq.Error{Code: "23503"}); ok {
			t.Fatalf("expected foreign key violation to be ignored")
		}
	})

	t.Run("ignores non postgres errors", func(t *testing.T) {
		if _, ok := uniqueViolation(sql.ErrConnDone); ok {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestForeignKeyViolation(t *testing.T) {
	err := fmt.Errorf("delete player: %w", &pq.Error{Code: "23503", Constraint: "lineup_players_player_id_fkey"})
	constraint, ok := foreignKeyViolation(err)
	if !ok || constraint != "lineup_players_player_id_fkey" {
		t.Fatalf("expected foreign key violation on lineup_players_player_id_fkey, got %q %v", constraint, ok)
	}
	if _, ok := foreignKeyViolation(&pq.Error{Code: "23505"}); ok {
		t.Fatalf("expected unique violation to be ignored")
	}
	if _, ok := foreignKeyViolation(sql.ErrConnDone); ok {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get team: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(sql.ErrTxDone) {
		t.Fatalf("expected false for unrelated error")
	}
}
