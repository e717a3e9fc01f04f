package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/fantasyteam"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
)

type TeamRepository struct {
	mu     sync.RWMutex
	teams  map[string]fantasyteam.Team
	byUser map[string]string
}

func NewTeamRepository(teams []fantasyteam.Team) *TeamRepository {
	r := &TeamRepository{
		teams:  make(map[string]fantasyteam.Team, len(teams)),
		byUser: make(map[string]string, len(teams)),
	}
	for _, t := range teams {
		r.teams[t.ID] = t
		r.byUser[t.UserID] = t.ID
	}
	return r
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (fantasyteam.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[teamID]
	return t, ok, nil
}

func (r *TeamRepository) GetByUserID(_ context.Context, userID string) (fantasyteam.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUser[userID]
	if !ok {
		return fantasyteam.Team{}, false, nil
	}
	return r.teams[id], true, nil
}

func (r *TeamRepository) List(_ context.Context) ([]fantasyteam.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasyteam.Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) Create(_ context.Context, t fantasyteam.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[t.UserID]; ok {
		return fantasyteam.ErrDuplicateUser
	}
	if _, ok := r.teams[t.ID]; ok {
		return fmt.Errorf("team %s already exists", t.ID)
	}
	r.teams[t.ID] = t
	r.byUser[t.UserID] = t.ID
	return nil
}

func (r *TeamRepository) UpdateBadge(_ context.Context, teamID, badgeURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.teams[teamID]
	if !ok {
		return fmt.Errorf("team %s not found", teamID)
	}
	t.BadgeURL = badgeURL
	r.teams[teamID] = t
	return nil
}

func (r *TeamRepository) setBalance(teamID string, balance money.Amount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.teams[teamID]
	if !ok {
		return fmt.Errorf("team %s not found", teamID)
	}
	t.Balance = balance
	r.teams[teamID] = t
	return nil
}
