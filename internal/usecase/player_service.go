package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/club"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/player"
)

type PlayerFilter struct {
	Position string
	ClubID   string
}

// PlayerService serves the market catalog: clubs and their players.
type PlayerService struct {
	clubRepo   club.Repository
	playerRepo player.Repository
}

func NewPlayerService(clubRepo club.Repository, playerRepo player.Repository) *PlayerService {
	return &PlayerService{
		clubRepo:   clubRepo,
		playerRepo: playerRepo,
	}
}

func (s *PlayerService) ListClubs(ctx context.Context) ([]club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListClubs")
	defer span.End()

	items, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	return items, nil
}

// ListPlayers returns players ordered by price descending, optionally narrowed
// to one position and one club.
func (s *PlayerService) ListPlayers(ctx context.Context, filter PlayerFilter) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	filter.ClubID = strings.TrimSpace(filter.ClubID)
	var position player.Position
	if strings.TrimSpace(filter.Position) != "" {
		parsed, ok := player.ParsePosition(filter.Position)
		if !ok {
			return nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, filter.Position)
		}
		position = parsed
	}

	var (
		items []player.Player
		err   error
	)
	if filter.ClubID != "" {
		items, err = s.playerRepo.ListByClub(ctx, filter.ClubID)
	} else {
		items, err = s.playerRepo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(items))
	for _, p := range items {
		if position != "" && p.Position != position {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			return out[i].Price > out[j].Price
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
