package postgres

import (
	"context"
	"fmt"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/club"
	qb "github.com/edsoncmach/cartola-paranaense/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	query, args, err := qb.Select("*").From("clubs").
		OrderBy("group_name", "name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubFromRow(row))
	}
	return out, nil
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	query, args, err := qb.Select("*").From("clubs").
		Where(qb.Eq("id", clubID)).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build get club by id query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club by id: %w", err)
	}
	return clubFromRow(row), true, nil
}

func (r *ClubRepository) Create(ctx context.Context, c club.Club) error {
	query, args, err := qb.InsertModel("clubs", clubInsertModel{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		ShieldURL: c.ShieldURL,
		GroupName: c.Group,
	}, "")
	if err != nil {
		return fmt.Errorf("build create club query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create club: %w", err)
	}
	return nil
}

func clubFromRow(row clubTableModel) club.Club {
	return club.Club{
		ID:        row.ID,
		Name:      row.Name,
		Slug:      row.Slug,
		ShieldURL: row.ShieldURL,
		Group:     row.GroupName,
	}
}
