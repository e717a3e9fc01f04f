package httpapi

import (
	"net/http"
	"strings"

	"github.com/edsoncmach/cartola-paranaense/internal/usecase"
)

type createLeagueRequest struct {
	Name string `json:"name" validate:"required,max=60"`
}

type joinLeagueRequest struct {
	Code string `json:"code" validate:"required"`
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req createLeagueRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.Create(ctx, usecase.CreateLeagueInput{
		UserID: principal.UserID,
		Name:   req.Name,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(item))
}

func (h *Handler) ListMyLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyLeagues")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	items, err := h.leagueService.ListMine(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my leagues failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]leagueDTO, 0, len(items))
	for _, item := range items {
		out = append(out, leagueToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) JoinLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinLeague")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req joinLeagueRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.JoinByCode(ctx, usecase.JoinLeagueInput{
		UserID: principal.UserID,
		Code:   req.Code,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "join league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(item))
}

// GetLeagueRanking ranks the league's members; only members may read it.
func (h *Handler) GetLeagueRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueRanking")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	leagueID := r.PathValue("leagueID")
	if _, err := h.leagueService.Get(ctx, principal.UserID, leagueID); err != nil {
		writeError(ctx, w, err)
		return
	}

	roundID := strings.TrimSpace(r.URL.Query().Get("round_id"))
	ranking, err := h.rankingService.League(ctx, leagueID, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league ranking failed", "league_id", leagueID, "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, rankingToDTO(ranking))
}
