package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/fantasyteam"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/league"
	idgen "github.com/edsoncmach/cartola-paranaense/internal/platform/id"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/logging"
)

const (
	inviteCodeAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	inviteCodeMaxAttempts = 5
	maxLeagueNameLength   = 60
)

type CreateLeagueInput struct {
	UserID string
	Name   string
}

type JoinLeagueInput struct {
	UserID string
	Code   string
}

type LeagueService struct {
	leagueRepo league.Repository
	teamRepo   fantasyteam.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
	newCode    func(ctx context.Context) (string, error)
}

func NewLeagueService(
	leagueRepo league.Repository,
	teamRepo fantasyteam.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
		newCode: func(ctx context.Context) (string, error) {
			return generateInviteCode(ctx, league.InviteCodeLength)
		},
	}
}

// Create opens a league owned by the caller and enrolls the caller's team.
// Invite code collisions are retried with a fresh code.
func (s *LeagueService) Create(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Create")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)
	if input.UserID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}
	if len([]rune(input.Name)) > maxLeagueNameLength {
		return league.League{}, fmt.Errorf("%w: league name must be at most %d characters", ErrInvalidInput, maxLeagueNameLength)
	}

	team, err := s.teamOf(ctx, input.UserID)
	if err != nil {
		return league.League{}, err
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}

	now := s.now().UTC()
	item := league.League{
		ID:          leagueID,
		Name:        input.Name,
		OwnerUserID: input.UserID,
		CreatedAt:   now,
	}

	created := false
	for attempt := 1; attempt <= inviteCodeMaxAttempts; attempt++ {
		code, err := s.newCode(ctx)
		if err != nil {
			return league.League{}, fmt.Errorf("generate invite code: %w", err)
		}
		item.InviteCode = code

		err = s.leagueRepo.Create(ctx, item)
		if err == nil {
			created = true
			break
		}
		if !errors.Is(err, league.ErrDuplicateInviteCode) {
			return league.League{}, fmt.Errorf("create league: %w", err)
		}
		s.logger.WarnContext(ctx, "invite code collision, retrying",
			"league_id", item.ID,
			"attempt", attempt,
		)
	}
	if !created {
		return league.League{}, fmt.Errorf("%w: could not allocate a unique invite code", ErrDependencyUnavailable)
	}

	if err := s.leagueRepo.AddMember(ctx, league.Membership{
		LeagueID: item.ID,
		TeamID:   team.ID,
		JoinedAt: now,
	}); err != nil {
		return league.League{}, fmt.Errorf("add league owner: %w", err)
	}

	s.logger.InfoContext(ctx, "league created",
		"league_id", item.ID,
		"owner_user_id", item.OwnerUserID,
		"team_id", team.ID,
	)
	return item, nil
}

func (s *LeagueService) JoinByCode(ctx context.Context, input JoinLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.JoinByCode")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Code = league.NormalizeCode(input.Code)
	if input.UserID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Code == "" {
		return league.League{}, fmt.Errorf("%w: invite code is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByInviteCode(ctx, input.Code)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by invite code: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: code=%s", ErrInvalidCode, input.Code)
	}

	team, err := s.teamOf(ctx, input.UserID)
	if err != nil {
		return league.League{}, err
	}

	err = s.leagueRepo.AddMember(ctx, league.Membership{
		LeagueID: item.ID,
		TeamID:   team.ID,
		JoinedAt: s.now().UTC(),
	})
	if errors.Is(err, league.ErrDuplicateMembership) {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrAlreadyMember, item.ID)
	}
	if err != nil {
		return league.League{}, fmt.Errorf("add league member: %w", err)
	}

	s.logger.InfoContext(ctx, "league joined",
		"league_id", item.ID,
		"team_id", team.ID,
	)
	return item, nil
}

func (s *LeagueService) ListMine(ctx context.Context, userID string) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMine")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	team, exists, err := s.teamRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get team by user: %w", err)
	}
	if !exists {
		return []league.League{}, nil
	}

	items, err := s.leagueRepo.ListByTeam(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("list leagues by team: %w", err)
	}
	return items, nil
}

// Get returns a league the caller's team belongs to.
func (s *LeagueService) Get(ctx context.Context, userID, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" || leagueID == "" {
		return league.League{}, fmt.Errorf("%w: user id and league id are required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	team, err := s.teamOf(ctx, userID)
	if err != nil {
		return league.League{}, err
	}
	isMember, err := s.leagueRepo.IsMember(ctx, leagueID, team.ID)
	if err != nil {
		return league.League{}, fmt.Errorf("check league member: %w", err)
	}
	if !isMember {
		return league.League{}, fmt.Errorf("%w: you are not a member of this league", ErrUnauthorized)
	}
	return item, nil
}

func (s *LeagueService) teamOf(ctx context.Context, userID string) (fantasyteam.Team, error) {
	team, exists, err := s.teamRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fantasyteam.Team{}, fmt.Errorf("get team by user: %w", err)
	}
	if !exists {
		return fantasyteam.Team{}, fmt.Errorf("%w: create a team before joining leagues", ErrInvalidInput)
	}
	return team, nil
}

func generateInviteCode(ctx context.Context, length int) (string, error) {
	_ = ctx
	if length <= 0 {
		length = league.InviteCodeLength
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes for invite code: %w", err)
	}

	out := make([]byte, length)
	for i, b := range buf {
		out[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(out), nil
}
