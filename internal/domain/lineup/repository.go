package lineup

import (
	"context"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
)

// Repository persists confirmed lineups. Replace writes the lineup rows, the
// lineup's balance at save and the team's balance as one unit.
type Repository interface {
	Restore(ctx context.Context, teamID, roundID string) (Lineup, bool, error)
	Replace(ctx context.Context, input ReplaceInput) error
	Delete(ctx context.Context, teamID, roundID string, newBalance money.Amount) error
	ListByRound(ctx context.Context, roundID string) ([]Lineup, error)
}
