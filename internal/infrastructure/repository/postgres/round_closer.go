package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/scoring"
	qb "github.com/edsoncmach/cartola-paranaense/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

// RoundCloser writes a round close in one transaction. The round row is
// flagged first so a concurrent close of the same round waits on its lock and
// then finds it finished.
type RoundCloser struct {
	db *sqlx.DB
}

func NewRoundCloser(db *sqlx.DB) *RoundCloser {
	return &RoundCloser{db: db}
}

func (c *RoundCloser) CloseRound(ctx context.Context, closure scoring.RoundClosure) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx close round: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := markRoundFinished(ctx, tx, closure.RoundID); err != nil {
		return err
	}

	for _, change := range closure.PriceChanges {
		query, args, err := qb.Update("players").
			Set("price_cents", change.NewPrice.Cents()).
			Set("last_variation_cents", change.Variation.Cents()).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("id", change.PlayerID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update player price query: %w", err)
		}
		if err := execOne(ctx, tx, query, args); err != nil {
			return fmt.Errorf("update price of player %s: %w", change.PlayerID, err)
		}
	}

	// Teams are updated in id order so concurrent writers lock rows consistently.
	teamIDs := make([]string, 0, len(closure.Refunds))
	for id := range closure.Refunds {
		teamIDs = append(teamIDs, id)
	}
	sort.Strings(teamIDs)

	for _, teamID := range teamIDs {
		query, args, err := qb.Update("teams").
			SetExpr("balance_cents", "balance_cents + ?", closure.Refunds[teamID].Cents()).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("id", teamID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build adjust balance query: %w", err)
		}
		if err := execOne(ctx, tx, query, args); err != nil {
			return fmt.Errorf("adjust balance of team %s: %w", teamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit close round: %w", err)
	}
	return nil
}

func markRoundFinished(ctx context.Context, tx *sqlx.Tx, roundID string) error {
	query, args, err := qb.Update("rounds").
		Set("finished", true).
		Where(qb.Eq("id", roundID), qb.Eq("finished", false)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark round finished query: %w", err)
	}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark round finished: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected mark round finished: %w", err)
	}
	if affected > 0 {
		return nil
	}

	query, args, err = qb.Select("finished").From("rounds").
		Where(qb.Eq("id", roundID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build get round state query: %w", err)
	}
	var finished bool
	if err := tx.GetContext(ctx, &finished, query, args...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("mark round finished: round %s not found", roundID)
		}
		return fmt.Errorf("get round state: %w", err)
	}
	return fmt.Errorf("%w: %s", scoring.ErrRoundFinished, roundID)
}

// execOne runs a statement that must touch exactly one existing row.
func execOne(ctx context.Context, tx *sqlx.Tx, query string, args []any) error {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("row not found")
	}
	return nil
}
