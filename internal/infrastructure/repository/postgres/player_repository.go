package postgres

import (
	"context"
	"fmt"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/player"
	qb "github.com/edsoncmach/cartola-paranaense/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"club_id",
	"name",
	"position",
	"price_cents",
	"status",
	"last_variation_cents",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}
	return r.selectPlayers(ctx, "select players", query, args)
}

func (r *PlayerRepository) ListByClub(ctx context.Context, clubID string) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("club_id", clubID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by club query: %w", err)
	}
	return r.selectPlayers(ctx, "select players by club", query, args)
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}
	return playerFromRow(row), true, nil
}

// GetByIDs returns the existing players in the order of playerIDs.
func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.In("id", stringSliceToAny(playerIDs))).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	items, err := r.selectPlayers(ctx, "select players by ids", query, args)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]player.Player, len(items))
	for _, p := range items {
		byID[p.ID] = p
	}
	out := make([]player.Player, 0, len(items))
	for _, id := range playerIDs {
		p, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, p)
		delete(byID, id)
	}
	return out, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	query, args, err := qb.InsertModel("players", playerInsertModel{
		ID:         p.ID,
		ClubID:     p.ClubID,
		Name:       p.Name,
		Position:   string(p.Position),
		PriceCents: p.Price.Cents(),
		Status:     string(p.Status),
	}, "")
	if err != nil {
		return fmt.Errorf("build create player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	query, args, err := qb.Update("players").
		Set("club_id", p.ClubID).
		Set("name", p.Name).
		Set("position", string(p.Position)).
		Set("price_cents", p.Price.Cents()).
		Set("status", string(p.Status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", p.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update player: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update player: player %s not found", p.ID)
	}
	return nil
}

// Delete reports a player still held by a lineup or a settled score as
// player.ErrInUse.
func (r *PlayerRepository) Delete(ctx context.Context, playerID string) error {
	query, args, err := qb.DeleteFrom("players").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if constraint, ok := foreignKeyViolation(err); ok {
			return fmt.Errorf("%w: %s (%s)", player.ErrInUse, playerID, constraint)
		}
		return fmt.Errorf("delete player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected delete player: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete player: player %s not found", playerID)
	}
	return nil
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, op, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:            row.ID,
		ClubID:        row.ClubID,
		Name:          row.Name,
		Position:      player.Position(row.Position),
		Price:         money.FromCents(row.PriceCents),
		Status:        player.Status(row.Status),
		LastVariation: money.FromCents(row.LastVariationCents),
	}
}
