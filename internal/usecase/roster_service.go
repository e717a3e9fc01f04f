package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/confirmation"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/fantasyteam"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/formation"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/lineup"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/player"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/roster"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/round"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/logging"
	"github.com/google/uuid"
)

const (
	defaultConfirmationTTL = 2 * time.Minute
	defaultSessionIdleTTL  = 30 * time.Minute
)

// RosterConfig bounds the lifetime of tokens and idle working squads.
type RosterConfig struct {
	ConfirmationTTL time.Duration
	SessionIdleTTL  time.Duration
}

// SweepResult counts what one SweepExpired pass dropped.
type SweepResult struct {
	Confirmations int
	Sessions      int
}

// RosterView is the working squad as shown to its owner.
type RosterView struct {
	TeamID        string
	RoundID       string
	Scheme        formation.Scheme
	Players       []player.Player
	CaptainID     string
	Balance       money.Amount
	Spent         money.Amount
	Window        round.WindowState
	MarketCloseAt time.Time
}

type ToggleResult struct {
	Action roster.ToggleResult
	View   RosterView
}

type DestructiveChangeInput struct {
	UserID string
	Kind   string
	Scheme string
}

// DestructiveChangeResult either carries a pending confirmation or, when the
// change destroys nothing, reports that it was applied immediately.
type DestructiveChangeResult struct {
	Applied bool
	Pending *confirmation.Pending
	View    RosterView
}

type rosterSession struct {
	mu     sync.Mutex
	ledger *roster.Ledger

	// guarded by RosterService.mu
	refs     int
	roundID  string
	lastUsed time.Time
}

// RosterService keeps one working ledger per user for the active round.
// Persisted state changes only on Confirm and on a confirmed sell-all.
type RosterService struct {
	teamRepo   fantasyteam.Repository
	playerRepo player.Repository
	lineupRepo lineup.Repository
	rounds     *RoundService
	pending    confirmation.Store
	ttl        time.Duration
	idleTTL    time.Duration
	logger     *logging.Logger
	now        func() time.Time
	newToken   func() string

	mu       sync.Mutex
	sessions map[string]*rosterSession
}

func NewRosterService(
	teamRepo fantasyteam.Repository,
	playerRepo player.Repository,
	lineupRepo lineup.Repository,
	rounds *RoundService,
	pending confirmation.Store,
	cfg RosterConfig,
	logger *logging.Logger,
) *RosterService {
	if cfg.ConfirmationTTL <= 0 {
		cfg.ConfirmationTTL = defaultConfirmationTTL
	}
	if cfg.SessionIdleTTL <= 0 {
		cfg.SessionIdleTTL = defaultSessionIdleTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		lineupRepo: lineupRepo,
		rounds:     rounds,
		pending:    pending,
		ttl:        cfg.ConfirmationTTL,
		idleTTL:    cfg.SessionIdleTTL,
		logger:     logger,
		now:        time.Now,
		newToken:   uuid.NewString,
		sessions:   make(map[string]*rosterSession),
	}
}

func (s *RosterService) Open(ctx context.Context, userID string) (RosterView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Open")
	defer span.End()

	var view RosterView
	err := s.withLedger(ctx, userID, func(active ActiveRound, session *rosterSession) error {
		view = s.view(session.ledger, active)
		return nil
	})
	return view, err
}

func (s *RosterService) Toggle(ctx context.Context, userID, playerID string) (ToggleResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Toggle")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return ToggleResult{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return ToggleResult{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return ToggleResult{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	var out ToggleResult
	err = s.withLedger(ctx, userID, func(active ActiveRound, session *rosterSession) error {
		action, err := session.ledger.Toggle(active.roundPtr(), s.now(), item)
		if err != nil {
			return err
		}
		out = ToggleResult{Action: action, View: s.view(session.ledger, active)}
		return nil
	})
	return out, err
}

func (s *RosterService) SetCaptain(ctx context.Context, userID, playerID string) (RosterView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SetCaptain")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return RosterView{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	var view RosterView
	err := s.withLedger(ctx, userID, func(active ActiveRound, session *rosterSession) error {
		if err := session.ledger.SetCaptain(active.roundPtr(), s.now(), playerID); err != nil {
			return err
		}
		view = s.view(session.ledger, active)
		return nil
	})
	return view, err
}

// Confirm validates the squad and replaces the persisted lineup. A failed
// write leaves the working ledger as it was so the caller can retry.
func (s *RosterService) Confirm(ctx context.Context, userID string) (RosterView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Confirm")
	defer span.End()

	var view RosterView
	err := s.withLedger(ctx, userID, func(active ActiveRound, session *rosterSession) error {
		input, err := session.ledger.Confirm(active.roundPtr(), s.now())
		if err != nil {
			return err
		}
		if err := s.lineupRepo.Replace(ctx, input); err != nil {
			s.logger.ErrorContext(ctx, "lineup replace failed",
				"team_id", input.TeamID,
				"round_id", input.RoundID,
				"error", err,
			)
			return fmt.Errorf("%w: replace lineup: %v", ErrPersistenceFailure, err)
		}

		s.logger.InfoContext(ctx, "lineup confirmed",
			"team_id", input.TeamID,
			"round_id", input.RoundID,
			"scheme", input.Scheme,
			"balance", input.NewBalance.String(),
		)
		view = s.view(session.ledger, active)
		return nil
	})
	return view, err
}

// RequestDestructiveChange issues a single-use token for a change that would
// discard the squad. A scheme change on an empty squad is applied at once.
func (s *RosterService) RequestDestructiveChange(ctx context.Context, input DestructiveChangeInput) (DestructiveChangeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RequestDestructiveChange")
	defer span.End()

	kind, ok := confirmation.ParseKind(strings.TrimSpace(input.Kind))
	if !ok {
		return DestructiveChangeResult{}, fmt.Errorf("%w: unknown change kind %q", ErrInvalidInput, input.Kind)
	}

	var scheme formation.Scheme
	if kind == confirmation.KindChangeScheme {
		resolved, err := formation.Resolve(strings.TrimSpace(input.Scheme))
		if err != nil {
			return DestructiveChangeResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		scheme = resolved
	}

	var out DestructiveChangeResult
	err := s.withLedger(ctx, input.UserID, func(active ActiveRound, session *rosterSession) error {
		now := s.now()
		ledger := session.ledger

		if kind == confirmation.KindChangeScheme {
			err := ledger.ChangeScheme(active.roundPtr(), now, scheme)
			if err == nil {
				out = DestructiveChangeResult{Applied: true, View: s.view(ledger, active)}
				return nil
			}
			if !errors.Is(err, roster.ErrConfirmationRequired) {
				return err
			}
		} else if !round.IsOpen(active.roundPtr(), now) || active.Round.ID != ledger.RoundID() {
			return fmt.Errorf("%w: market is not open", roster.ErrMarketClosed)
		}

		item := confirmation.Pending{
			Token:     s.newToken(),
			UserID:    strings.TrimSpace(input.UserID),
			TeamID:    ledger.TeamID(),
			RoundID:   ledger.RoundID(),
			Kind:      kind,
			Scheme:    scheme.Name,
			ExpiresAt: now.Add(s.ttl).UTC(),
		}
		if err := s.pending.Save(ctx, item); err != nil {
			return fmt.Errorf("%w: save pending confirmation: %v", ErrDependencyUnavailable, err)
		}

		s.logger.InfoContext(ctx, "destructive change requested",
			"team_id", item.TeamID,
			"round_id", item.RoundID,
			"kind", string(item.Kind),
			"expires_at", item.ExpiresAt,
		)
		out = DestructiveChangeResult{Pending: &item, View: s.view(ledger, active)}
		return nil
	})
	return out, err
}

// ConfirmDestructiveChange consumes a token and applies its change. Sell-all
// also deletes the persisted lineup and restores the team balance. A token is
// only consumed by its owner; anyone else is told it does not exist.
func (s *RosterService) ConfirmDestructiveChange(ctx context.Context, userID, token string) (RosterView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ConfirmDestructiveChange")
	defer span.End()

	userID = strings.TrimSpace(userID)
	token = strings.TrimSpace(token)
	if token == "" {
		return RosterView{}, fmt.Errorf("%w: confirmation token is required", ErrInvalidInput)
	}

	var view RosterView
	err := s.withLedger(ctx, userID, func(active ActiveRound, session *rosterSession) error {
		item, err := s.pending.Get(ctx, token)
		if err != nil {
			return pendingError("get", err)
		}
		if item.UserID != userID {
			return fmt.Errorf("%w: confirmation token not found", ErrNotFound)
		}

		now := s.now()
		if item.Expired(now) {
			return fmt.Errorf("%w: token expired at %s", ErrConfirmationExpired, item.ExpiresAt.Format(time.RFC3339))
		}
		if item, err = s.pending.Take(ctx, token); err != nil {
			return pendingError("take", err)
		}
		if item.RoundID != session.ledger.RoundID() || item.TeamID != session.ledger.TeamID() {
			return fmt.Errorf("%w: confirmation was issued for another round", roster.ErrMarketClosed)
		}

		staged := session.ledger.Clone()
		switch item.Kind {
		case confirmation.KindChangeScheme:
			scheme, err := item.TargetScheme()
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if err := staged.ApplySchemeChange(active.roundPtr(), now, scheme); err != nil {
				return err
			}
		case confirmation.KindSellAll:
			if err := staged.SellAll(active.roundPtr(), now); err != nil {
				return err
			}
			if err := s.lineupRepo.Delete(ctx, staged.TeamID(), staged.RoundID(), staged.Balance()); err != nil {
				s.logger.ErrorContext(ctx, "lineup delete failed",
					"team_id", staged.TeamID(),
					"round_id", staged.RoundID(),
					"error", err,
				)
				return fmt.Errorf("%w: delete lineup: %v", ErrPersistenceFailure, err)
			}
		}

		session.ledger = staged
		s.logger.InfoContext(ctx, "destructive change applied",
			"team_id", staged.TeamID(),
			"round_id", staged.RoundID(),
			"kind", string(item.Kind),
			"balance", staged.Balance().String(),
		)
		view = s.view(staged, active)
		return nil
	})
	return view, err
}

// SweepExpired drops confirmations whose retention past the deadline ran out,
// then forgets working squads that sat idle past the idle limit or belong to a
// round that is no longer active. Unconfirmed changes in a dropped squad are
// lost; the next call restores the persisted lineup.
func (s *RosterService) SweepExpired(ctx context.Context) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SweepExpired")
	defer span.End()

	removed, err := s.pending.DeleteExpired(ctx, s.now().Add(-confirmation.Retention))
	if err != nil {
		return SweepResult{}, fmt.Errorf("delete expired confirmations: %w", err)
	}

	activeRoundID, hasActive := "", false
	if active, err := s.rounds.Active(ctx); err != nil {
		s.logger.WarnContext(ctx, "resolve active round for session sweep failed", "error", err)
	} else {
		activeRoundID, hasActive = active.Round.ID, true
	}

	return SweepResult{
		Confirmations: removed,
		Sessions:      s.pruneSessions(activeRoundID, hasActive),
	}, nil
}

func (s *RosterService) pruneSessions(activeRoundID string, hasActive bool) int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for userID, session := range s.sessions {
		if session.refs > 0 {
			continue
		}
		stale := hasActive && session.roundID != activeRoundID
		if stale || !session.lastUsed.After(cutoff) {
			delete(s.sessions, userID)
			pruned++
		}
	}
	return pruned
}

func pendingError(op string, err error) error {
	if errors.Is(err, confirmation.ErrNotFound) {
		return fmt.Errorf("%w: confirmation token not found", ErrNotFound)
	}
	return fmt.Errorf("%w: %s pending confirmation: %v", ErrDependencyUnavailable, op, err)
}

// withLedger resolves the active round, loads or reuses the caller's ledger and
// runs fn while holding the session lock.
func (s *RosterService) withLedger(ctx context.Context, userID string, fn func(active ActiveRound, session *rosterSession) error) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	active, err := s.rounds.Active(ctx)
	if err != nil {
		return err
	}

	session := s.acquire(userID)
	session.mu.Lock()
	defer func() {
		roundID := ""
		if session.ledger != nil {
			roundID = session.ledger.RoundID()
		}
		session.mu.Unlock()
		s.release(session, roundID)
	}()

	if session.ledger == nil || session.ledger.RoundID() != active.Round.ID {
		ledger, err := s.restore(ctx, userID, active)
		if err != nil {
			return err
		}
		session.ledger = ledger
	}

	return fn(active, session)
}

// acquire returns the caller's session and pins it so a sweep cannot drop it
// while a call is waiting for or holding its lock.
func (s *RosterService) acquire(userID string) *rosterSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		session = &rosterSession{}
		s.sessions[userID] = session
	}
	session.refs++
	return session
}

func (s *RosterService) release(session *rosterSession, roundID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.refs--
	session.roundID = roundID
	session.lastUsed = s.now()
}

// restore seeds a ledger from the team's persisted lineup for the active
// round. The stored team balance already excludes the lineup's cost.
func (s *RosterService) restore(ctx context.Context, userID string, active ActiveRound) (*roster.Ledger, error) {
	team, exists, err := s.teamRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get team by user: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: user has no team", ErrNotFound)
	}

	if !active.Exists {
		return roster.New(team.ID, "", formation.Default(), team.Balance), nil
	}

	saved, exists, err := s.lineupRepo.Restore(ctx, team.ID, active.Round.ID)
	if err != nil {
		return nil, fmt.Errorf("restore lineup: %w", err)
	}
	if !exists {
		return roster.New(team.ID, active.Round.ID, formation.Default(), team.Balance), nil
	}

	scheme, ok := formation.Lookup(saved.Scheme)
	if !ok {
		scheme = formation.Default()
	}

	players, err := s.playerRepo.GetByIDs(ctx, saved.PlayerIDs())
	if err != nil {
		return nil, fmt.Errorf("get lineup players: %w", err)
	}
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	ordered := make([]player.Player, 0, len(saved.Entries))
	for _, e := range saved.Entries {
		if p, ok := byID[e.PlayerID]; ok {
			ordered = append(ordered, p)
		}
	}

	return roster.Restore(team.ID, active.Round.ID, scheme, ordered, saved.CaptainID(), team.Balance), nil
}

func (s *RosterService) view(ledger *roster.Ledger, active ActiveRound) RosterView {
	window := round.WindowClosed
	if active.Exists && active.Round.ID == ledger.RoundID() {
		window = round.State(active.roundPtr(), s.now())
	}
	return RosterView{
		TeamID:        ledger.TeamID(),
		RoundID:       ledger.RoundID(),
		Scheme:        ledger.Scheme(),
		Players:       ledger.Selected(),
		CaptainID:     ledger.CaptainID(),
		Balance:       ledger.Balance(),
		Spent:         ledger.Spent(),
		Window:        window,
		MarketCloseAt: active.Round.MarketCloseAt,
	}
}
