package postgres

import (
	"context"
	"fmt"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/match"
	qb "github.com/edsoncmach/cartola-paranaense/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		OrderBy("round_id", "kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}
	return r.selectMatches(ctx, "select matches", query, args)
}

func (r *MatchRepository) ListByRound(ctx context.Context, roundID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by round query: %w", err)
	}
	return r.selectMatches(ctx, "select matches by round", query, args)
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	model := matchTableModel{
		ID:         m.ID,
		RoundID:    m.RoundID,
		HomeClubID: m.HomeClubID,
		AwayClubID: m.AwayClubID,
		KickoffAt:  toNullTime(m.KickoffAt),
	}
	if m.HomeScore != nil && m.AwayScore != nil {
		model.HomeScore.Int64, model.HomeScore.Valid = int64(*m.HomeScore), true
		model.AwayScore.Int64, model.AwayScore.Valid = int64(*m.AwayScore), true
	}

	query, args, err := qb.InsertModel("matches", model, "")
	if err != nil {
		return fmt.Errorf("build create match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create match: %w", err)
	}
	return nil
}

func (r *MatchRepository) SetScore(ctx context.Context, matchID string, homeScore, awayScore int) error {
	query, args, err := qb.Update("matches").
		Set("home_score", homeScore).
		Set("away_score", awayScore).
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set match score query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set match score: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected set match score: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set match score: match %s not found", matchID)
	}
	return nil
}

func (r *MatchRepository) selectMatches(ctx context.Context, op, query string, args []any) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:         row.ID,
		RoundID:    row.RoundID,
		HomeClubID: row.HomeClubID,
		AwayClubID: row.AwayClubID,
		KickoffAt:  fromNullTime(row.KickoffAt),
		HomeScore:  fromNullInt(row.HomeScore),
		AwayScore:  fromNullInt(row.AwayScore),
	}
}
