package httpapi

import (
	"net/http"
	"strings"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/formation"
	"github.com/edsoncmach/cartola-paranaense/internal/usecase"
)

func (h *Handler) ListFormations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFormations")
	defer span.End()

	schemes := formation.All()
	items := make([]formationDTO, 0, len(schemes))
	for _, s := range schemes {
		items = append(items, formationToDTO(s))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRounds")
	defer span.End()

	rounds, err := h.roundService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list rounds failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]roundDTO, 0, len(rounds))
	for _, item := range rounds {
		items = append(items, roundToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetActiveRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetActiveRound")
	defer span.End()

	active, err := h.roundService.Active(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get active round failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := activeRoundDTO{Window: string(active.Window)}
	if active.Exists {
		dto := roundToDTO(active.Round)
		out.Round = &dto
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	clubs, err := h.playerService.ListClubs(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list clubs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]clubDTO, 0, len(clubs))
	for _, c := range clubs {
		items = append(items, clubToDTO(c))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query := r.URL.Query()
	players, err := h.playerService.ListPlayers(ctx, usecase.PlayerFilter{
		Position: strings.TrimSpace(query.Get("position")),
		ClubID:   strings.TrimSpace(query.Get("club_id")),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	tables, err := h.standingsService.Tables(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(tables))
}

func (h *Handler) GetRoundRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoundRanking")
	defer span.End()

	roundID := strings.TrimSpace(r.URL.Query().Get("round_id"))
	ranking, err := h.rankingService.Round(ctx, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "get round ranking failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, rankingToDTO(ranking))
}
