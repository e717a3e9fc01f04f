package postgres

import (
	"context"
	"fmt"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/round"
	qb "github.com/edsoncmach/cartola-paranaense/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type RoundRepository struct {
	db *sqlx.DB
}

func NewRoundRepository(db *sqlx.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

func (r *RoundRepository) List(ctx context.Context) ([]round.Round, error) {
	query, args, err := qb.Select("*").From("rounds").
		OrderBy("market_close_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select rounds query: %w", err)
	}

	var rows []roundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select rounds: %w", err)
	}

	out := make([]round.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, roundFromRow(row))
	}
	return out, nil
}

func (r *RoundRepository) GetByID(ctx context.Context, roundID string) (round.Round, bool, error) {
	query, args, err := qb.Select("*").From("rounds").
		Where(qb.Eq("id", roundID)).
		ToSQL()
	if err != nil {
		return round.Round{}, false, fmt.Errorf("build get round by id query: %w", err)
	}

	var row roundTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return round.Round{}, false, nil
		}
		return round.Round{}, false, fmt.Errorf("get round by id: %w", err)
	}
	return roundFromRow(row), true, nil
}

func (r *RoundRepository) Create(ctx context.Context, item round.Round) error {
	query, args, err := qb.InsertModel("rounds", roundTableModel{
		ID:            item.ID,
		Name:          item.Name,
		RoundType:     string(item.Type),
		Leg:           string(item.Leg),
		MarketCloseAt: item.MarketCloseAt.UTC(),
		EndsAt:        toNullTime(item.EndsAt),
		Finished:      item.Finished,
	}, "")
	if err != nil {
		return fmt.Errorf("build create round query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create round: %w", err)
	}
	return nil
}

func (r *RoundRepository) Update(ctx context.Context, item round.Round) error {
	query, args, err := qb.Update("rounds").
		Set("name", item.Name).
		Set("round_type", string(item.Type)).
		Set("leg", string(item.Leg)).
		Set("market_close_at", item.MarketCloseAt.UTC()).
		Set("ends_at", toNullTime(item.EndsAt)).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update round query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update round: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update round: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update round: round %s not found", item.ID)
	}
	return nil
}

func roundFromRow(row roundTableModel) round.Round {
	return round.Round{
		ID:            row.ID,
		Name:          row.Name,
		Type:          round.Type(row.RoundType),
		Leg:           round.Leg(row.Leg),
		MarketCloseAt: row.MarketCloseAt.UTC(),
		EndsAt:        fromNullTime(row.EndsAt),
		Finished:      row.Finished,
	}
}
