package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/infrastructure/repository/memory"
	"github.com/jmoiron/sqlx"
)

// BootstrapSeed loads the demo championship into an empty database. It is a
// no-op once any club exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, now time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM clubs`); err != nil {
		return fmt.Errorf("count clubs for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, c := range memory.SeedClubs() {
		if err := execNamed(ctx, tx, `
INSERT INTO clubs (id, name, slug, shield_url, group_name)
VALUES (:id, :name, :slug, :shield_url, :group_name)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":         c.ID,
			"name":       c.Name,
			"slug":       c.Slug,
			"shield_url": c.ShieldURL,
			"group_name": c.Group,
		}); err != nil {
			return fmt.Errorf("seed club %s: %w", c.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		if err := execNamed(ctx, tx, `
INSERT INTO players (id, club_id, name, position, price_cents, status)
VALUES (:id, :club_id, :name, :position, :price_cents, :status)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":          p.ID,
			"club_id":     p.ClubID,
			"name":        p.Name,
			"position":    string(p.Position),
			"price_cents": p.Price.Cents(),
			"status":      string(p.Status),
		}); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	for _, r := range memory.SeedRounds(now) {
		if err := execNamed(ctx, tx, `
INSERT INTO rounds (id, name, round_type, leg, market_close_at, ends_at, finished)
VALUES (:id, :name, :round_type, :leg, :market_close_at, :ends_at, :finished)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":              r.ID,
			"name":            r.Name,
			"round_type":      string(r.Type),
			"leg":             string(r.Leg),
			"market_close_at": r.MarketCloseAt.UTC(),
			"ends_at":         toNullTime(r.EndsAt),
			"finished":        r.Finished,
		}); err != nil {
			return fmt.Errorf("seed round %s: %w", r.ID, err)
		}
	}

	for _, m := range memory.SeedMatches() {
		if err := execNamed(ctx, tx, `
INSERT INTO matches (id, round_id, home_club_id, away_club_id, kickoff_at)
VALUES (:id, :round_id, :home_club_id, :away_club_id, :kickoff_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":           m.ID,
			"round_id":     m.RoundID,
			"home_club_id": m.HomeClubID,
			"away_club_id": m.AwayClubID,
			"kickoff_at":   toNullTime(m.KickoffAt),
		}); err != nil {
			return fmt.Errorf("seed match %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

func execNamed(ctx context.Context, tx *sqlx.Tx, query string, arg map[string]any) error {
	sqlQuery, args, err := sqlx.Named(query, arg)
	if err != nil {
		return fmt.Errorf("bind query: %w", err)
	}
	sqlQuery = tx.Rebind(sqlQuery)
	if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
		return err
	}
	return nil
}
