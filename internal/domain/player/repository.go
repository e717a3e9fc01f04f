package player

import (
	"context"
	"errors"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
)

// ErrInUse reports a delete of a player still referenced by a lineup or a
// settled score.
var ErrInUse = errors.New("player is in use")

// PriceChange is one valorization result to persist.
type PriceChange struct {
	PlayerID  string
	NewPrice  money.Amount
	Variation money.Amount
}

// Repository describes player persistence needs from use cases. Update
// rewrites club, name, position, price and status; the last variation is only
// written by a round close.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	ListByClub(ctx context.Context, clubID string) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	Create(ctx context.Context, p Player) error
	Update(ctx context.Context, p Player) error
	Delete(ctx context.Context, playerID string) error
}
