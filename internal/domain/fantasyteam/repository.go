package fantasyteam

import (
	"context"
	"errors"
)

var ErrDuplicateUser = errors.New("user already owns a team")

// Repository exposes fantasy team persistence operations. Create reports a
// second team for the same user as ErrDuplicateUser.
type Repository interface {
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	GetByUserID(ctx context.Context, userID string) (Team, bool, error)
	List(ctx context.Context) ([]Team, error)
	Create(ctx context.Context, t Team) error
	UpdateBadge(ctx context.Context, teamID, badgeURL string) error
}
