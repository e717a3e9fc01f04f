package scoring

import "context"

// PlayerScore is one player's settled points for one match.
type PlayerScore struct {
	PlayerID string
	RoundID  string
	MatchID  string
	ClubID   string
	Points   Points
	Stats    Stats
}

// TeamScore is a fantasy team's total for one round.
type TeamScore struct {
	TeamID  string
	RoundID string
	Points  Points
}

// SettleInput is the administrative record of one finished match.
type SettleInput struct {
	RoundID   string
	MatchID   string
	HomeScore int
	AwayScore int
	Stats     []Stats
}

// Collaborator is the scoring and valorization procedure. Settle runs once per
// match; ApplyValorization runs after every match of the round is settled and
// marks the round finished.
type Collaborator interface {
	Settle(ctx context.Context, input SettleInput) error
	ApplyValorization(ctx context.Context, roundID string) error
}
