package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/round"
)

type RoundRepository struct {
	mu     sync.RWMutex
	rounds map[string]round.Round
}

func NewRoundRepository(rounds []round.Round) *RoundRepository {
	r := &RoundRepository{rounds: make(map[string]round.Round, len(rounds))}
	for _, item := range rounds {
		r.rounds[item.ID] = item
	}
	return r
}

func (r *RoundRepository) List(_ context.Context) ([]round.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]round.Round, 0, len(r.rounds))
	for _, item := range r.rounds {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].MarketCloseAt.Equal(out[j].MarketCloseAt) {
			return out[i].MarketCloseAt.Before(out[j].MarketCloseAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *RoundRepository) GetByID(_ context.Context, roundID string) (round.Round, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.rounds[roundID]
	return item, ok, nil
}

func (r *RoundRepository) Create(_ context.Context, item round.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rounds[item.ID]; ok {
		return fmt.Errorf("round %s already exists", item.ID)
	}
	r.rounds[item.ID] = item
	return nil
}

func (r *RoundRepository) Update(_ context.Context, item round.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.rounds[item.ID]
	if !ok {
		return fmt.Errorf("round %s not found", item.ID)
	}
	item.Finished = current.Finished
	r.rounds[item.ID] = item
	return nil
}
