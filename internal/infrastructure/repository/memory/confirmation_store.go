package memory

import (
	"context"
	"sync"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/confirmation"
)

type ConfirmationStore struct {
	mu    sync.Mutex
	items map[string]confirmation.Pending
}

func NewConfirmationStore() *ConfirmationStore {
	return &ConfirmationStore{items: make(map[string]confirmation.Pending)}
}

func (s *ConfirmationStore) Save(_ context.Context, item confirmation.Pending) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[item.Token] = item
	return nil
}

func (s *ConfirmationStore) Get(_ context.Context, token string) (confirmation.Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[token]
	if !ok {
		return confirmation.Pending{}, confirmation.ErrNotFound
	}
	return item, nil
}

func (s *ConfirmationStore) Take(_ context.Context, token string) (confirmation.Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[token]
	if !ok {
		return confirmation.Pending{}, confirmation.ErrNotFound
	}
	delete(s.items, token)
	return item, nil
}

func (s *ConfirmationStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, item := range s.items {
		if item.Expired(now) {
			delete(s.items, token)
			removed++
		}
	}
	return removed, nil
}
