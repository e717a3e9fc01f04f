package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/round"
)

// ActiveRound is the round currently accepting or awaiting transfers together
// with its window state at the time of the call.
type ActiveRound struct {
	Round  round.Round
	Exists bool
	Window round.WindowState
}

type RoundService struct {
	roundRepo round.Repository
	now       func() time.Time
}

func NewRoundService(roundRepo round.Repository) *RoundService {
	return &RoundService{
		roundRepo: roundRepo,
		now:       time.Now,
	}
}

func (s *RoundService) List(ctx context.Context) ([]round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.List")
	defer span.End()

	items, err := s.roundRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	return items, nil
}

// Active resolves the earliest unfinished round. A missing round is not an
// error; the window is simply CLOSED.
func (s *RoundService) Active(ctx context.Context) (ActiveRound, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.Active")
	defer span.End()

	items, err := s.roundRepo.List(ctx)
	if err != nil {
		return ActiveRound{}, fmt.Errorf("list rounds: %w", err)
	}

	active, ok := round.Active(items)
	if !ok {
		return ActiveRound{Window: round.WindowClosed}, nil
	}
	return ActiveRound{
		Round:  active,
		Exists: true,
		Window: round.State(&active, s.now()),
	}, nil
}

func (s *RoundService) DefaultDisplay(ctx context.Context) (round.Round, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.DefaultDisplay")
	defer span.End()

	items, err := s.roundRepo.List(ctx)
	if err != nil {
		return round.Round{}, false, fmt.Errorf("list rounds: %w", err)
	}
	item, ok := round.DefaultDisplay(items)
	return item, ok, nil
}

func (a ActiveRound) roundPtr() *round.Round {
	if !a.Exists {
		return nil
	}
	r := a.Round
	return &r
}
