package league

import "context"

// Repository describes league persistence needs from use cases. Create and
// AddMember report uniqueness violations as ErrDuplicateInviteCode and
// ErrDuplicateMembership.
type Repository interface {
	Create(ctx context.Context, item League) error
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	GetByInviteCode(ctx context.Context, code string) (League, bool, error)
	AddMember(ctx context.Context, membership Membership) error
	IsMember(ctx context.Context, leagueID, teamID string) (bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]League, error)
	ListMembers(ctx context.Context, leagueID string) ([]Membership, error)
}
