package postgres

import "time"

const (
	leagueInviteCodeConstraint = "uq_leagues_invite_code"
	leagueMembersConstraint    = "pk_league_members"
)

type leagueTableModel struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	InviteCode  string    `db:"invite_code"`
	OwnerUserID string    `db:"owner_user_id"`
	CreatedAt   time.Time `db:"created_at"`
}

type leagueMemberTableModel struct {
	LeagueID string    `db:"league_id"`
	TeamID   string    `db:"team_id"`
	JoinedAt time.Time `db:"joined_at"`
}
