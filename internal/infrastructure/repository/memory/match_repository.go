package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	order   []string
	matches map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	r := &MatchRepository{matches: make(map[string]match.Match, len(matches))}
	for _, m := range matches {
		if _, ok := r.matches[m.ID]; !ok {
			r.order = append(r.order, m.ID)
		}
		r.matches[m.ID] = cloneMatch(m)
	}
	return r
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneMatch(r.matches[id]))
	}
	return out, nil
}

func (r *MatchRepository) ListByRound(_ context.Context, roundID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, id := range r.order {
		if m := r.matches[id]; m.RoundID == roundID {
			out = append(out, cloneMatch(m))
		}
	}
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(m), true, nil
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.matches[m.ID]; ok {
		return fmt.Errorf("match %s already exists", m.ID)
	}
	r.matches[m.ID] = cloneMatch(m)
	r.order = append(r.order, m.ID)
	return nil
}

func (r *MatchRepository) SetScore(_ context.Context, matchID string, homeScore, awayScore int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matches[matchID]
	if !ok {
		return fmt.Errorf("match %s not found", matchID)
	}
	m.HomeScore = &homeScore
	m.AwayScore = &awayScore
	r.matches[matchID] = m
	return nil
}

func cloneMatch(m match.Match) match.Match {
	copied := m
	if m.HomeScore != nil {
		v := *m.HomeScore
		copied.HomeScore = &v
	}
	if m.AwayScore != nil {
		v := *m.AwayScore
		copied.AwayScore = &v
	}
	return copied
}
