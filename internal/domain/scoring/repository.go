package scoring

import "context"

// Repository stores settled scores.
type Repository interface {
	ReplaceMatchScores(ctx context.Context, roundID, matchID string, scores []PlayerScore) error
	ListPlayerScoresByRound(ctx context.Context, roundID string) ([]PlayerScore, error)
	ReplaceTeamScores(ctx context.Context, roundID string, scores []TeamScore) error
	ListTeamScoresByRound(ctx context.Context, roundID string) ([]TeamScore, error)
}
