package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/club"
)

type ClubRepository struct {
	mu    sync.RWMutex
	order []string
	clubs map[string]club.Club
}

func NewClubRepository(clubs []club.Club) *ClubRepository {
	r := &ClubRepository{clubs: make(map[string]club.Club, len(clubs))}
	for _, c := range clubs {
		if _, ok := r.clubs[c.ID]; !ok {
			r.order = append(r.order, c.ID)
		}
		r.clubs[c.ID] = c
	}
	return r
}

func (r *ClubRepository) List(_ context.Context) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]club.Club, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.clubs[id])
	}
	return out, nil
}

func (r *ClubRepository) GetByID(_ context.Context, clubID string) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clubs[clubID]
	return c, ok, nil
}

func (r *ClubRepository) Create(_ context.Context, c club.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clubs[c.ID]; ok {
		return fmt.Errorf("club %s already exists", c.ID)
	}
	for _, existing := range r.clubs {
		if existing.Slug == c.Slug {
			return fmt.Errorf("club slug %s already exists", c.Slug)
		}
	}
	r.clubs[c.ID] = c
	r.order = append(r.order, c.ID)
	return nil
}
