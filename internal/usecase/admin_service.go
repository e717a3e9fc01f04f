package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/club"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/match"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/player"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/round"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/scoring"
	idgen "github.com/edsoncmach/cartola-paranaense/internal/platform/id"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/logging"
	"github.com/gosimple/slug"
)

type CreateClubInput struct {
	Name      string
	ShieldURL string
	Group     string
}

type CreatePlayerInput struct {
	ClubID   string
	Name     string
	Position string
	Price    money.Amount
	Status   string
}

// UpdatePlayerInput changes only the fields that are set. A new ClubID is a
// transfer.
type UpdatePlayerInput struct {
	PlayerID string
	ClubID   *string
	Name     *string
	Position *string
	Price    *money.Amount
	Status   *string
}

type CreateRoundInput struct {
	ID            string
	Name          string
	Type          string
	Leg           string
	MarketCloseAt time.Time
	EndsAt        time.Time
}

type UpdateRoundInput struct {
	RoundID       string
	Name          *string
	Type          *string
	Leg           *string
	MarketCloseAt *time.Time
	EndsAt        *time.Time
}

type CreateMatchInput struct {
	RoundID    string
	HomeClubID string
	AwayClubID string
	KickoffAt  time.Time
}

// standingsRefresher is notified after results change.
type standingsRefresher interface {
	Refresh(ctx context.Context) error
}

// AdminService manages the competition catalog and drives settlement.
type AdminService struct {
	clubRepo   club.Repository
	playerRepo player.Repository
	roundRepo  round.Repository
	matchRepo  match.Repository
	scorer     scoring.Collaborator
	standings  standingsRefresher
	idGen      idgen.Generator
	logger     *logging.Logger
}

func NewAdminService(
	clubRepo club.Repository,
	playerRepo player.Repository,
	roundRepo round.Repository,
	matchRepo match.Repository,
	scorer scoring.Collaborator,
	standings standingsRefresher,
	idGen idgen.Generator,
	logger *logging.Logger,
) *AdminService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminService{
		clubRepo:   clubRepo,
		playerRepo: playerRepo,
		roundRepo:  roundRepo,
		matchRepo:  matchRepo,
		scorer:     scorer,
		standings:  standings,
		idGen:      idGen,
		logger:     logger,
	}
}

func (s *AdminService) CreateClub(ctx context.Context, input CreateClubInput) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.CreateClub")
	defer span.End()

	id, err := s.idGen.NewID()
	if err != nil {
		return club.Club{}, fmt.Errorf("generate club id: %w", err)
	}

	item := club.Club{
		ID:        id,
		Name:      strings.TrimSpace(input.Name),
		Slug:      slug.Make(input.Name),
		ShieldURL: strings.TrimSpace(input.ShieldURL),
		Group:     club.NormalizeGroup(input.Group),
	}
	if err := item.Validate(); err != nil {
		return club.Club{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.clubRepo.Create(ctx, item); err != nil {
		return club.Club{}, fmt.Errorf("create club: %w", err)
	}

	s.logger.InfoContext(ctx, "club created", "club_id", item.ID, "slug", item.Slug)
	return item, nil
}

func (s *AdminService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.CreatePlayer")
	defer span.End()

	input.ClubID = strings.TrimSpace(input.ClubID)
	position, ok := player.ParsePosition(input.Position)
	if !ok {
		return player.Player{}, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, input.Position)
	}
	status := player.Status(strings.ToLower(strings.TrimSpace(input.Status)))
	if status == "" {
		status = player.StatusLikely
	}

	if _, exists, err := s.clubRepo.GetByID(ctx, input.ClubID); err != nil {
		return player.Player{}, fmt.Errorf("get club: %w", err)
	} else if !exists {
		return player.Player{}, fmt.Errorf("%w: club=%s", ErrNotFound, input.ClubID)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	item := player.Player{
		ID:       id,
		ClubID:   input.ClubID,
		Name:     strings.TrimSpace(input.Name),
		Position: position,
		Price:    input.Price,
		Status:   status,
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Create(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created",
		"player_id", item.ID,
		"club_id", item.ClubID,
		"position", string(item.Position),
		"price", item.Price.String(),
	)
	return item, nil
}

func (s *AdminService) UpdatePlayer(ctx context.Context, input UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.UpdatePlayer")
	defer span.End()

	item, err := s.getPlayer(ctx, input.PlayerID)
	if err != nil {
		return player.Player{}, err
	}
	previousClub := item.ClubID

	if input.ClubID != nil {
		item.ClubID = strings.TrimSpace(*input.ClubID)
	}
	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Position != nil {
		position, ok := player.ParsePosition(*input.Position)
		if !ok {
			return player.Player{}, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, *input.Position)
		}
		item.Position = position
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Status != nil {
		item.Status = player.Status(strings.ToLower(strings.TrimSpace(*input.Status)))
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if item.ClubID != previousClub {
		if _, exists, err := s.clubRepo.GetByID(ctx, item.ClubID); err != nil {
			return player.Player{}, fmt.Errorf("get club: %w", err)
		} else if !exists {
			return player.Player{}, fmt.Errorf("%w: club=%s", ErrNotFound, item.ClubID)
		}
	}
	if err := s.playerRepo.Update(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}

	s.logger.InfoContext(ctx, "player updated",
		"player_id", item.ID,
		"club_id", item.ClubID,
		"transferred", item.ClubID != previousClub,
		"price", item.Price.String(),
		"status", string(item.Status),
	)
	return item, nil
}

// DeletePlayer removes a player from the market. A player held by a saved
// lineup or a settled score cannot be removed.
func (s *AdminService) DeletePlayer(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.DeletePlayer")
	defer span.End()

	item, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	if err := s.playerRepo.Delete(ctx, item.ID); err != nil {
		if errors.Is(err, player.ErrInUse) {
			return fmt.Errorf("%w: player %s is part of a saved lineup or a settled score", ErrPlayerInUse, item.ID)
		}
		return fmt.Errorf("delete player: %w", err)
	}

	s.logger.InfoContext(ctx, "player deleted", "player_id", item.ID, "club_id", item.ClubID)
	return nil
}

func (s *AdminService) getPlayer(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return item, nil
}

func (s *AdminService) CreateRound(ctx context.Context, input CreateRoundInput) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.CreateRound")
	defer span.End()

	item := round.Round{
		ID:            strings.TrimSpace(input.ID),
		Name:          strings.TrimSpace(input.Name),
		Type:          round.Type(strings.ToLower(strings.TrimSpace(input.Type))),
		Leg:           round.Leg(strings.ToLower(strings.TrimSpace(input.Leg))),
		MarketCloseAt: input.MarketCloseAt.UTC(),
		EndsAt:        input.EndsAt.UTC(),
	}
	if item.Type == "" {
		item.Type = round.TypeRegular
	}
	if item.Leg == "" {
		item.Leg = round.LegSingle
	}
	if item.ID == "" {
		id, err := s.idGen.NewID()
		if err != nil {
			return round.Round{}, fmt.Errorf("generate round id: %w", err)
		}
		item.ID = id
	}
	if err := item.Validate(); err != nil {
		return round.Round{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, exists, err := s.roundRepo.GetByID(ctx, item.ID); err != nil {
		return round.Round{}, fmt.Errorf("get round: %w", err)
	} else if exists {
		return round.Round{}, fmt.Errorf("%w: round %s already exists", ErrInvalidInput, item.ID)
	}
	if err := s.roundRepo.Create(ctx, item); err != nil {
		return round.Round{}, fmt.Errorf("create round: %w", err)
	}

	s.logger.InfoContext(ctx, "round created",
		"round_id", item.ID,
		"type", string(item.Type),
		"market_close_at", item.MarketCloseAt,
	)
	return item, nil
}

// UpdateRound edits the calendar data of a round. Whether it is finished is
// decided by the round close alone.
func (s *AdminService) UpdateRound(ctx context.Context, input UpdateRoundInput) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.UpdateRound")
	defer span.End()

	roundID := strings.TrimSpace(input.RoundID)
	if roundID == "" {
		return round.Round{}, fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}
	item, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return round.Round{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return round.Round{}, fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Type != nil {
		item.Type = round.Type(strings.ToLower(strings.TrimSpace(*input.Type)))
	}
	if input.Leg != nil {
		item.Leg = round.Leg(strings.ToLower(strings.TrimSpace(*input.Leg)))
	}
	if input.MarketCloseAt != nil {
		item.MarketCloseAt = input.MarketCloseAt.UTC()
	}
	if input.EndsAt != nil {
		item.EndsAt = input.EndsAt.UTC()
	}
	if err := item.Validate(); err != nil {
		return round.Round{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.roundRepo.Update(ctx, item); err != nil {
		return round.Round{}, fmt.Errorf("update round: %w", err)
	}

	s.logger.InfoContext(ctx, "round updated",
		"round_id", item.ID,
		"type", string(item.Type),
		"market_close_at", item.MarketCloseAt,
	)
	return item, nil
}

func (s *AdminService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.CreateMatch")
	defer span.End()

	input.RoundID = strings.TrimSpace(input.RoundID)
	input.HomeClubID = strings.TrimSpace(input.HomeClubID)
	input.AwayClubID = strings.TrimSpace(input.AwayClubID)

	if _, exists, err := s.roundRepo.GetByID(ctx, input.RoundID); err != nil {
		return match.Match{}, fmt.Errorf("get round: %w", err)
	} else if !exists {
		return match.Match{}, fmt.Errorf("%w: round=%s", ErrNotFound, input.RoundID)
	}
	for _, clubID := range []string{input.HomeClubID, input.AwayClubID} {
		if _, exists, err := s.clubRepo.GetByID(ctx, clubID); err != nil {
			return match.Match{}, fmt.Errorf("get club: %w", err)
		} else if !exists {
			return match.Match{}, fmt.Errorf("%w: club=%s", ErrNotFound, clubID)
		}
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}
	item := match.Match{
		ID:         id,
		RoundID:    input.RoundID,
		HomeClubID: input.HomeClubID,
		AwayClubID: input.AwayClubID,
		KickoffAt:  input.KickoffAt.UTC(),
	}
	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.matchRepo.Create(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match created", "match_id", item.ID, "round_id", item.RoundID)
	return item, nil
}

// SettleMatch hands a result to the scoring collaborator and refreshes the
// standings. A refresh failure is logged; the cached tables expire on their own.
func (s *AdminService) SettleMatch(ctx context.Context, input scoring.SettleInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.SettleMatch")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	if strings.TrimSpace(input.RoundID) == "" {
		item, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
		if err != nil {
			return fmt.Errorf("get match: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
		}
		input.RoundID = item.RoundID
	}

	if err := s.scorer.Settle(ctx, input); err != nil {
		return s.collaboratorError("settle match", err)
	}
	s.refreshStandings(ctx)
	return nil
}

func (s *AdminService) CloseRound(ctx context.Context, roundID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.CloseRound")
	defer span.End()

	if err := s.scorer.ApplyValorization(ctx, strings.TrimSpace(roundID)); err != nil {
		return s.collaboratorError("apply valorization", err)
	}
	s.refreshStandings(ctx)
	return nil
}

func (s *AdminService) collaboratorError(op string, err error) error {
	for _, known := range []error{ErrInvalidInput, ErrNotFound, ErrDependencyUnavailable, ErrPersistenceFailure} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrDependencyUnavailable, op, err)
}

func (s *AdminService) refreshStandings(ctx context.Context) {
	if s.standings == nil {
		return
	}
	if err := s.standings.Refresh(ctx); err != nil {
		s.logger.WarnContext(ctx, "refresh standings failed", "error", err)
	}
}
