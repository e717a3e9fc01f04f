package postgres

import (
	"context"
	"fmt"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/fantasyteam"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	qb "github.com/edsoncmach/cartola-paranaense/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (fantasyteam.Team, bool, error) {
	return r.getOne(ctx, "id", teamID)
}

func (r *TeamRepository) GetByUserID(ctx context.Context, userID string) (fantasyteam.Team, bool, error) {
	return r.getOne(ctx, "user_id", userID)
}

func (r *TeamRepository) List(ctx context.Context) ([]fantasyteam.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]fantasyteam.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) Create(ctx context.Context, t fantasyteam.Team) error {
	query, args, err := qb.InsertModel("teams", teamTableModel{
		ID:           t.ID,
		UserID:       t.UserID,
		Name:         t.Name,
		CoachName:    t.CoachName,
		BadgeURL:     t.BadgeURL,
		BalanceCents: t.Balance.Cents(),
		CreatedAt:    t.CreatedAt.UTC(),
		UpdatedAt:    t.UpdatedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build create team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if _, ok := uniqueViolation(err); ok {
			return fmt.Errorf("%w: user=%s", fantasyteam.ErrDuplicateUser, t.UserID)
		}
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

func (r *TeamRepository) UpdateBadge(ctx context.Context, teamID, badgeURL string) error {
	query, args, err := qb.Update("teams").
		Set("badge_url", badgeURL).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team badge query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team badge: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update team badge: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update team badge: team %s not found", teamID)
	}
	return nil
}

func (r *TeamRepository) getOne(ctx context.Context, column, value string) (fantasyteam.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq(column, value)).
		ToSQL()
	if err != nil {
		return fantasyteam.Team{}, false, fmt.Errorf("build get team by %s query: %w", column, err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasyteam.Team{}, false, nil
		}
		return fantasyteam.Team{}, false, fmt.Errorf("get team by %s: %w", column, err)
	}
	return teamFromRow(row), true, nil
}

func teamFromRow(row teamTableModel) fantasyteam.Team {
	return fantasyteam.Team{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		CoachName: row.CoachName,
		BadgeURL:  row.BadgeURL,
		Balance:   money.FromCents(row.BalanceCents),
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}
