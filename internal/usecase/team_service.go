package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/fantasyteam"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	idgen "github.com/edsoncmach/cartola-paranaense/internal/platform/id"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/logging"
)

const maxTeamNameLength = 40

type CreateTeamInput struct {
	UserID    string
	Name      string
	CoachName string
	BadgeURL  string
}

type TeamService struct {
	teamRepo       fantasyteam.Repository
	idGen          idgen.Generator
	initialBalance money.Amount
	logger         *logging.Logger
	now            func() time.Time
}

func NewTeamService(
	teamRepo fantasyteam.Repository,
	idGen idgen.Generator,
	initialBalance money.Amount,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{
		teamRepo:       teamRepo,
		idGen:          idGen,
		initialBalance: initialBalance,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (fantasyteam.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)
	input.CoachName = strings.TrimSpace(input.CoachName)
	input.BadgeURL = strings.TrimSpace(input.BadgeURL)
	if input.UserID == "" {
		return fantasyteam.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return fantasyteam.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if len([]rune(input.Name)) > maxTeamNameLength {
		return fantasyteam.Team{}, fmt.Errorf("%w: team name must be at most %d characters", ErrInvalidInput, maxTeamNameLength)
	}

	_, exists, err := s.teamRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return fantasyteam.Team{}, fmt.Errorf("get team by user: %w", err)
	}
	if exists {
		return fantasyteam.Team{}, fmt.Errorf("%w: user already owns a team", ErrInvalidInput)
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return fantasyteam.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	item := fantasyteam.Team{
		ID:        teamID,
		UserID:    input.UserID,
		Name:      input.Name,
		CoachName: input.CoachName,
		BadgeURL:  input.BadgeURL,
		Balance:   s.initialBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return fantasyteam.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, item); err != nil {
		if errors.Is(err, fantasyteam.ErrDuplicateUser) {
			return fantasyteam.Team{}, fmt.Errorf("%w: user already owns a team", ErrInvalidInput)
		}
		return fantasyteam.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created",
		"team_id", item.ID,
		"user_id", item.UserID,
		"balance", item.Balance.String(),
	)
	return item, nil
}

func (s *TeamService) GetMine(ctx context.Context, userID string) (fantasyteam.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetMine")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fantasyteam.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fantasyteam.Team{}, fmt.Errorf("get team by user: %w", err)
	}
	if !exists {
		return fantasyteam.Team{}, fmt.Errorf("%w: user has no team", ErrNotFound)
	}
	return item, nil
}

// UpdateBadge replaces the badge reference of the caller's team. An empty
// reference clears it.
func (s *TeamService) UpdateBadge(ctx context.Context, userID, badgeURL string) (fantasyteam.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.UpdateBadge")
	defer span.End()

	item, err := s.GetMine(ctx, userID)
	if err != nil {
		return fantasyteam.Team{}, err
	}

	item.BadgeURL = strings.TrimSpace(badgeURL)
	if err := s.teamRepo.UpdateBadge(ctx, item.ID, item.BadgeURL); err != nil {
		return fantasyteam.Team{}, fmt.Errorf("update team badge: %w", err)
	}
	item.UpdatedAt = s.now().UTC()

	s.logger.InfoContext(ctx, "team badge updated", "team_id", item.ID, "user_id", item.UserID)
	return item, nil
}
