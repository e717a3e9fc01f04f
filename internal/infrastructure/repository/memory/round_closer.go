package memory

import (
	"context"
	"fmt"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/scoring"
)

// RoundCloser closes a round across the in-memory player, team and round
// repositories while holding all three locks, so readers never observe a
// half-closed round.
type RoundCloser struct {
	players *PlayerRepository
	teams   *TeamRepository
	rounds  *RoundRepository
}

func NewRoundCloser(players *PlayerRepository, teams *TeamRepository, rounds *RoundRepository) *RoundCloser {
	return &RoundCloser{players: players, teams: teams, rounds: rounds}
}

func (c *RoundCloser) CloseRound(_ context.Context, closure scoring.RoundClosure) error {
	c.rounds.mu.Lock()
	defer c.rounds.mu.Unlock()
	c.players.mu.Lock()
	defer c.players.mu.Unlock()
	c.teams.mu.Lock()
	defer c.teams.mu.Unlock()

	item, ok := c.rounds.rounds[closure.RoundID]
	if !ok {
		return fmt.Errorf("round %s not found", closure.RoundID)
	}
	if item.Finished {
		return fmt.Errorf("%w: %s", scoring.ErrRoundFinished, closure.RoundID)
	}
	for _, change := range closure.PriceChanges {
		if _, ok := c.players.players[change.PlayerID]; !ok {
			return fmt.Errorf("player %s not found", change.PlayerID)
		}
	}
	for teamID := range closure.Refunds {
		if _, ok := c.teams.teams[teamID]; !ok {
			return fmt.Errorf("team %s not found", teamID)
		}
	}

	for _, change := range closure.PriceChanges {
		p := c.players.players[change.PlayerID]
		p.Price = change.NewPrice
		p.LastVariation = change.Variation
		c.players.players[change.PlayerID] = p
	}
	for teamID, refund := range closure.Refunds {
		t := c.teams.teams[teamID]
		t.Balance += refund
		c.teams.teams[teamID] = t
	}
	item.Finished = true
	c.rounds.rounds[closure.RoundID] = item
	return nil
}
