package match

import "context"

// Repository exposes match persistence operations.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	ListByRound(ctx context.Context, roundID string) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Create(ctx context.Context, m Match) error
	SetScore(ctx context.Context, matchID string, homeScore, awayScore int) error
}
