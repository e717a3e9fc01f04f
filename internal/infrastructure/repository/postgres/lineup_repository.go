package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/lineup"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	qb "github.com/edsoncmach/cartola-paranaense/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

const lineupUpsertSuffix = "ON CONFLICT (team_id, round_id) DO UPDATE SET " +
	"scheme = EXCLUDED.scheme, " +
	"balance_at_save_cents = EXCLUDED.balance_at_save_cents, " +
	"saved_at = EXCLUDED.saved_at"

// LineupRepository stores one lineup header per team and round plus its
// player rows. Writes also set the owning team's balance in the same
// transaction.
type LineupRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db, now: time.Now}
}

func (r *LineupRepository) Restore(ctx context.Context, teamID, roundID string) (lineup.Lineup, bool, error) {
	query, args, err := qb.Select("*").From("lineups").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("round_id", roundID),
		).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup query: %w", err)
	}

	var header lineupTableModel
	if err := r.db.GetContext(ctx, &header, query, args...); err != nil {
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("get lineup: %w", err)
	}

	query, args, err = qb.Select("*").From("lineup_players").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("round_id", roundID),
		).
		OrderBy("slot").
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build select lineup players query: %w", err)
	}

	var rows []lineupPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("select lineup players: %w", err)
	}
	return lineupFromRows(header, rows), true, nil
}

// Replace rewrites the lineup and sets the team's balance atomically.
func (r *LineupRepository) Replace(ctx context.Context, input lineup.ReplaceInput) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace lineup: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertModel("lineups", lineupTableModel{
		TeamID:             input.TeamID,
		RoundID:            input.RoundID,
		Scheme:             input.Scheme,
		BalanceAtSaveCents: input.NewBalance.Cents(),
		SavedAt:            r.now().UTC(),
	}, lineupUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert lineup query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert lineup: %w", err)
	}

	query, args, err = qb.DeleteFrom("lineup_players").
		Where(
			qb.Eq("team_id", input.TeamID),
			qb.Eq("round_id", input.RoundID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete lineup players query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete lineup players: %w", err)
	}

	if len(input.Entries) > 0 {
		rows := make([]lineupPlayerTableModel, 0, len(input.Entries))
		for i, entry := range input.Entries {
			rows = append(rows, lineupPlayerTableModel{
				TeamID:    input.TeamID,
				RoundID:   input.RoundID,
				PlayerID:  entry.PlayerID,
				Slot:      i + 1,
				IsCaptain: entry.IsCaptain,
			})
		}
		query, args, err = qb.InsertModels("lineup_players", rows, "")
		if err != nil {
			return fmt.Errorf("build insert lineup players query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert lineup players: %w", err)
		}
	}

	if err := setTeamBalance(ctx, tx, input.TeamID, input.NewBalance); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace lineup: %w", err)
	}
	return nil
}

func (r *LineupRepository) Delete(ctx context.Context, teamID, roundID string, newBalance money.Amount) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx delete lineup: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.DeleteFrom("lineups").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("round_id", roundID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete lineup query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete lineup: %w", err)
	}

	if err := setTeamBalance(ctx, tx, teamID, newBalance); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete lineup: %w", err)
	}
	return nil
}

func (r *LineupRepository) ListByRound(ctx context.Context, roundID string) ([]lineup.Lineup, error) {
	query, args, err := qb.Select("*").From("lineups").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select lineups by round query: %w", err)
	}

	var headers []lineupTableModel
	if err := r.db.SelectContext(ctx, &headers, query, args...); err != nil {
		return nil, fmt.Errorf("select lineups by round: %w", err)
	}
	if len(headers) == 0 {
		return []lineup.Lineup{}, nil
	}

	query, args, err = qb.Select("*").From("lineup_players").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("team_id", "slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select lineup players by round query: %w", err)
	}

	var rows []lineupPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select lineup players by round: %w", err)
	}

	byTeam := make(map[string][]lineupPlayerTableModel, len(headers))
	for _, row := range rows {
		byTeam[row.TeamID] = append(byTeam[row.TeamID], row)
	}

	out := make([]lineup.Lineup, 0, len(headers))
	for _, header := range headers {
		out = append(out, lineupFromRows(header, byTeam[header.TeamID]))
	}
	return out, nil
}

func setTeamBalance(ctx context.Context, tx *sqlx.Tx, teamID string, balance money.Amount) error {
	query, args, err := qb.Update("teams").
		Set("balance_cents", balance.Cents()).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set team balance query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set team balance: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected set team balance: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set team balance: team %s not found", teamID)
	}
	return nil
}

func lineupFromRows(header lineupTableModel, rows []lineupPlayerTableModel) lineup.Lineup {
	entries := make([]lineup.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, lineup.Entry{
			PlayerID:  row.PlayerID,
			IsCaptain: row.IsCaptain,
		})
	}
	return lineup.Lineup{
		TeamID:        header.TeamID,
		RoundID:       header.RoundID,
		Scheme:        header.Scheme,
		Entries:       entries,
		BalanceAtSave: money.FromCents(header.BalanceAtSaveCents),
		SavedAt:       header.SavedAt.UTC(),
	}
}
