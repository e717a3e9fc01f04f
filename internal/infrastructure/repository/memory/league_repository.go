package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/league"
)

type LeagueRepository struct {
	mu          sync.RWMutex
	leagues     map[string]league.League
	byCode      map[string]string
	memberships map[string][]league.Membership
}

func NewLeagueRepository() *LeagueRepository {
	return &LeagueRepository{
		leagues:     make(map[string]league.League),
		byCode:      make(map[string]string),
		memberships: make(map[string][]league.Membership),
	}
}

func (r *LeagueRepository) Create(_ context.Context, item league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := league.NormalizeCode(item.InviteCode)
	if _, ok := r.byCode[code]; ok {
		return fmt.Errorf("%w: %s", league.ErrDuplicateInviteCode, code)
	}
	if _, ok := r.leagues[item.ID]; ok {
		return fmt.Errorf("league %s already exists", item.ID)
	}
	item.InviteCode = code
	r.leagues[item.ID] = item
	r.byCode[code] = item.ID
	return nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.leagues[leagueID]
	return item, ok, nil
}

func (r *LeagueRepository) GetByInviteCode(_ context.Context, code string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCode[league.NormalizeCode(code)]
	if !ok {
		return league.League{}, false, nil
	}
	return r.leagues[id], true, nil
}

func (r *LeagueRepository) AddMember(_ context.Context, membership league.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leagues[membership.LeagueID]; !ok {
		return fmt.Errorf("league %s not found", membership.LeagueID)
	}
	for _, m := range r.memberships[membership.LeagueID] {
		if m.TeamID == membership.TeamID {
			return fmt.Errorf("%w: league=%s team=%s", league.ErrDuplicateMembership, membership.LeagueID, membership.TeamID)
		}
	}
	r.memberships[membership.LeagueID] = append(r.memberships[membership.LeagueID], membership)
	return nil
}

func (r *LeagueRepository) IsMember(_ context.Context, leagueID, teamID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.memberships[leagueID] {
		if m.TeamID == teamID {
			return true, nil
		}
	}
	return false, nil
}

func (r *LeagueRepository) ListByTeam(_ context.Context, teamID string) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0)
	for leagueID, members := range r.memberships {
		for _, m := range members {
			if m.TeamID == teamID {
				out = append(out, r.leagues[leagueID])
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *LeagueRepository) ListMembers(_ context.Context, leagueID string) ([]league.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]league.Membership(nil), r.memberships[leagueID]...), nil
}
