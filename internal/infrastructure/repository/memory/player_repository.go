package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	order   []string
	players map[string]player.Player
	refs    []playerReferences
}

// playerReferences is a store whose rows point at players.
type playerReferences interface {
	referencesPlayer(playerID string) bool
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{players: make(map[string]player.Player, len(players))}
	for _, p := range players {
		if _, ok := r.players[p.ID]; !ok {
			r.order = append(r.order, p.ID)
		}
		r.players[p.ID] = p
	}
	return r
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out, nil
}

func (r *PlayerRepository) ListByClub(_ context.Context, clubID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, id := range r.order {
		if p := r.players[id]; p.ClubID == clubID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	return p, ok, nil
}

// GetByIDs returns the known players in request order, skipping unknown and
// repeated ids.
func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(playerIDs))
	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := r.players[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[p.ID]; ok {
		return fmt.Errorf("player %s already exists", p.ID)
	}
	r.players[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

// GuardDeletes makes Delete refuse players still held by a lineup or a
// settled score, the way the lineup and score foreign keys do in postgres.
func (r *PlayerRepository) GuardDeletes(lineups *LineupRepository, scores *ScoreRepository) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lineups != nil {
		r.refs = append(r.refs, lineups)
	}
	if scores != nil {
		r.refs = append(r.refs, scores)
	}
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.players[p.ID]
	if !ok {
		return fmt.Errorf("player %s not found", p.ID)
	}
	p.LastVariation = current.LastVariation
	r.players[p.ID] = p
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[playerID]; !ok {
		return fmt.Errorf("player %s not found", playerID)
	}
	for _, refs := range r.refs {
		if refs.referencesPlayer(playerID) {
			return fmt.Errorf("%w: %s", player.ErrInUse, playerID)
		}
	}

	delete(r.players, playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
