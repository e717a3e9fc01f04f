package postgres

import (
	"context"
	"fmt"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/league"
	qb "github.com/edsoncmach/cartola-paranaense/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League) error {
	code := league.NormalizeCode(item.InviteCode)
	query, args, err := qb.InsertModel("leagues", leagueTableModel{
		ID:          item.ID,
		Name:        item.Name,
		InviteCode:  code,
		OwnerUserID: item.OwnerUserID,
		CreatedAt:   item.CreatedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build create league query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == leagueInviteCodeConstraint {
			return fmt.Errorf("%w: %s", league.ErrDuplicateInviteCode, code)
		}
		return fmt.Errorf("create league: %w", err)
	}
	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return r.getOne(ctx, "id", leagueID)
}

func (r *LeagueRepository) GetByInviteCode(ctx context.Context, code string) (league.League, bool, error) {
	return r.getOne(ctx, "invite_code", league.NormalizeCode(code))
}

func (r *LeagueRepository) AddMember(ctx context.Context, membership league.Membership) error {
	query, args, err := qb.InsertModel("league_members", leagueMemberTableModel{
		LeagueID: membership.LeagueID,
		TeamID:   membership.TeamID,
		JoinedAt: membership.JoinedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build add league member query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == leagueMembersConstraint {
			return fmt.Errorf("%w: league=%s team=%s", league.ErrDuplicateMembership, membership.LeagueID, membership.TeamID)
		}
		return fmt.Errorf("add league member: %w", err)
	}
	return nil
}

func (r *LeagueRepository) IsMember(ctx context.Context, leagueID, teamID string) (bool, error) {
	query, args, err := qb.Select("COUNT(1)").From("league_members").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("team_id", teamID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build league member query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("count league member: %w", err)
	}
	return count > 0, nil
}

func (r *LeagueRepository) ListByTeam(ctx context.Context, teamID string) ([]league.League, error) {
	query, args, err := qb.Select("l.id", "l.name", "l.invite_code", "l.owner_user_id", "l.created_at").
		From("leagues l JOIN league_members m ON m.league_id = l.id").
		Where(qb.Eq("m.team_id", teamID)).
		OrderBy("l.created_at", "l.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues by team query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues by team: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]league.Membership, error) {
	query, args, err := qb.Select("*").From("league_members").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("joined_at", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select league members query: %w", err)
	}

	var rows []leagueMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select league members: %w", err)
	}

	out := make([]league.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, league.Membership{
			LeagueID: row.LeagueID,
			TeamID:   row.TeamID,
			JoinedAt: row.JoinedAt.UTC(),
		})
	}
	return out, nil
}

func (r *LeagueRepository) getOne(ctx context.Context, column, value string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Eq(column, value)).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by %s query: %w", column, err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by %s: %w", column, err)
	}
	return leagueFromRow(row), true, nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:          row.ID,
		Name:        row.Name,
		InviteCode:  row.InviteCode,
		OwnerUserID: row.OwnerUserID,
		CreatedAt:   row.CreatedAt.UTC(),
	}
}
