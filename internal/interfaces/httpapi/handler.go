package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/user"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/logging"
	"github.com/edsoncmach/cartola-paranaense/internal/usecase"
	"github.com/go-playground/validator/v10"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	roundService     *usecase.RoundService
	playerService    *usecase.PlayerService
	teamService      *usecase.TeamService
	rosterService    *usecase.RosterService
	leagueService    *usecase.LeagueService
	standingsService *usecase.StandingsService
	rankingService   *usecase.RankingService
	adminService     *usecase.AdminService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	roundService *usecase.RoundService,
	playerService *usecase.PlayerService,
	teamService *usecase.TeamService,
	rosterService *usecase.RosterService,
	leagueService *usecase.LeagueService,
	standingsService *usecase.StandingsService,
	rankingService *usecase.RankingService,
	adminService *usecase.AdminService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		roundService:     roundService,
		playerService:    playerService,
		teamService:      teamService,
		rosterService:    rosterService,
		leagueService:    leagueService,
		standingsService: standingsService,
		rankingService:   rankingService,
		adminService:     adminService,
		logger:           logger,
		validator:        validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest reads a JSON body into dst and runs the struct validators.
func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func requirePrincipal(ctx context.Context, w http.ResponseWriter) (user.Principal, bool) {
	principal, ok := principalFromContext(ctx)
	if !ok || strings.TrimSpace(principal.UserID) == "" {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return user.Principal{}, false
	}
	return principal, true
}
