package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/lineup"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
)

// LineupRepository keeps lineups and writes the owning team's balance under
// the same lock, so a save is never half applied.
type LineupRepository struct {
	mu    sync.RWMutex
	items map[string]lineup.Lineup
	teams *TeamRepository
	now   func() time.Time
}

func NewLineupRepository(teams *TeamRepository) *LineupRepository {
	return &LineupRepository{
		items: make(map[string]lineup.Lineup),
		teams: teams,
		now:   time.Now,
	}
}

func (r *LineupRepository) Restore(_ context.Context, teamID, roundID string) (lineup.Lineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[lineupKey(teamID, roundID)]
	if !ok {
		return lineup.Lineup{}, false, nil
	}
	return cloneLineup(item), true, nil
}

func (r *LineupRepository) Replace(_ context.Context, input lineup.ReplaceInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.teams.setBalance(input.TeamID, input.NewBalance); err != nil {
		return err
	}
	r.items[lineupKey(input.TeamID, input.RoundID)] = cloneLineup(lineup.Lineup{
		TeamID:        input.TeamID,
		RoundID:       input.RoundID,
		Scheme:        input.Scheme,
		Entries:       input.Entries,
		BalanceAtSave: input.NewBalance,
		SavedAt:       r.now().UTC(),
	})
	return nil
}

func (r *LineupRepository) Delete(_ context.Context, teamID, roundID string, newBalance money.Amount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.teams.setBalance(teamID, newBalance); err != nil {
		return err
	}
	delete(r.items, lineupKey(teamID, roundID))
	return nil
}

func (r *LineupRepository) ListByRound(_ context.Context, roundID string) ([]lineup.Lineup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lineup.Lineup, 0)
	for _, item := range r.items {
		if item.RoundID == roundID {
			out = append(out, cloneLineup(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out, nil
}

func (r *LineupRepository) referencesPlayer(playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		for _, e := range item.Entries {
			if e.PlayerID == playerID {
				return true
			}
		}
	}
	return false
}

func lineupKey(teamID, roundID string) string {
	return teamID + "::" + roundID
}

func cloneLineup(item lineup.Lineup) lineup.Lineup {
	copied := item
	copied.Entries = append([]lineup.Entry(nil), item.Entries...)
	return copied
}
