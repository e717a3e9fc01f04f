package postgres

import (
	"context"
	"fmt"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/scoring"
	qb "github.com/edsoncmach/cartola-paranaense/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// ReplaceMatchScores drops the earlier scores of the match before storing the new ones.
func (r *ScoreRepository) ReplaceMatchScores(ctx context.Context, roundID, matchID string, scores []scoring.PlayerScore) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace match scores: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.DeleteFrom("player_scores").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match scores query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match scores: %w", err)
	}

	if len(scores) > 0 {
		rows := make([]playerScoreTableModel, 0, len(scores))
		for _, sc := range scores {
			rows = append(rows, playerScoreTableModel{
				RoundID:  roundID,
				MatchID:  matchID,
				PlayerID: sc.PlayerID,
				ClubID:   sc.ClubID,
				Points:   int64(sc.Points),
				Played:   sc.Stats.Played,
				Goals:    sc.Stats.Goals,
				Assists:  sc.Stats.Assists,
				Yellow:   sc.Stats.Yellow,
				Red:      sc.Stats.Red,
			})
		}
		query, args, err = qb.InsertModels("player_scores", rows, "")
		if err != nil {
			return fmt.Errorf("build insert match scores query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert match scores: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace match scores: %w", err)
	}
	return nil
}

func (r *ScoreRepository) ListPlayerScoresByRound(ctx context.Context, roundID string) ([]scoring.PlayerScore, error) {
	query, args, err := qb.Select("*").From("player_scores").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("match_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player scores query: %w", err)
	}

	var rows []playerScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player scores: %w", err)
	}

	out := make([]scoring.PlayerScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.PlayerScore{
			PlayerID: row.PlayerID,
			RoundID:  row.RoundID,
			MatchID:  row.MatchID,
			ClubID:   row.ClubID,
			Points:   scoring.Points(row.Points),
			Stats: scoring.Stats{
				PlayerID: row.PlayerID,
				Played:   row.Played,
				Goals:    row.Goals,
				Assists:  row.Assists,
				Yellow:   row.Yellow,
				Red:      row.Red,
			},
		})
	}
	return out, nil
}

func (r *ScoreRepository) ReplaceTeamScores(ctx context.Context, roundID string, scores []scoring.TeamScore) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace team scores: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := replaceTeamScoresTx(ctx, tx, roundID, scores); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace team scores: %w", err)
	}
	return nil
}

func (r *ScoreRepository) ListTeamScoresByRound(ctx context.Context, roundID string) ([]scoring.TeamScore, error) {
	query, args, err := qb.Select("*").From("team_scores").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("points DESC", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team scores query: %w", err)
	}

	var rows []teamScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team scores: %w", err)
	}

	out := make([]scoring.TeamScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.TeamScore{
			TeamID:  row.TeamID,
			RoundID: row.RoundID,
			Points:  scoring.Points(row.Points),
		})
	}
	return out, nil
}

func replaceTeamScoresTx(ctx context.Context, tx *sqlx.Tx, roundID string, scores []scoring.TeamScore) error {
	query, args, err := qb.DeleteFrom("team_scores").
		Where(qb.Eq("round_id", roundID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete team scores query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete team scores: %w", err)
	}
	if len(scores) == 0 {
		return nil
	}

	rows := make([]teamScoreTableModel, 0, len(scores))
	for _, sc := range scores {
		rows = append(rows, teamScoreTableModel{
			RoundID: roundID,
			TeamID:  sc.TeamID,
			Points:  int64(sc.Points),
		})
	}
	query, args, err = qb.InsertModels("team_scores", rows, "")
	if err != nil {
		return fmt.Errorf("build insert team scores query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team scores: %w", err)
	}
	return nil
}
