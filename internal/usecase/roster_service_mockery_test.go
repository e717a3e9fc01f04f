package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/confirmation"
	confirmationmock "github.com/edsoncmach/cartola-paranaense/internal/mocks/domain/confirmation"
	"github.com/stretchr/testify/mock"
)

func TestRosterService_ConfirmDestructiveChangeStoreFailureUsingMockery(t *testing.T) {
	f := newRosterFixture(t)
	store := confirmationmock.NewStore(t)
	f.service.pending = store

	store.On("Get", mock.Anything, "tok-1").
		Return(confirmation.Pending{}, errors.New("connection reset")).
		Once()

	_, err := f.service.ConfirmDestructiveChange(t.Context(), "user-1", "tok-1")
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestRosterService_ConfirmDestructiveChangeLeavesForeignTokenUsingMockery(t *testing.T) {
	f := newRosterFixture(t)
	store := confirmationmock.NewStore(t)
	f.service.pending = store

	store.On("Get", mock.Anything, "tok-1").Return(confirmation.Pending{
		Token:     "tok-1",
		UserID:    "user-1",
		TeamID:    "team-1",
		RoundID:   "r1",
		Kind:      confirmation.KindSellAll,
		ExpiresAt: fixtureNow.Add(time.Minute),
	}, nil).Once()

	_, err := f.service.ConfirmDestructiveChange(t.Context(), "user-2", "tok-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	store.AssertNotCalled(t, "Take", mock.Anything, "tok-1")
}

func TestRosterService_SweepExpiredUsingMockery(t *testing.T) {
	f := newRosterFixture(t)
	store := confirmationmock.NewStore(t)
	f.service.pending = store

	cutoff := fixtureNow.Add(-confirmation.Retention)
	store.On("DeleteExpired", mock.Anything, cutoff).Return(3, nil).Once()
	swept, err := f.service.SweepExpired(t.Context())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if swept.Confirmations != 3 {
		t.Fatalf("expected 3 removed, got %d", swept.Confirmations)
	}

	store.On("DeleteExpired", mock.Anything, cutoff).Return(0, errors.New("redis down")).Once()
	if _, err := f.service.SweepExpired(t.Context()); err == nil {
		t.Fatalf("expected sweep error")
	}
}
