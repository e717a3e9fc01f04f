package httpapi

import (
	"net/http"

	"github.com/edsoncmach/cartola-paranaense/internal/usecase"
)

type createTeamRequest struct {
	Name      string `json:"name" validate:"required,max=40"`
	CoachName string `json:"coach_name" validate:"omitempty,max=40"`
	BadgeURL  string `json:"badge_url" validate:"omitempty,url"`
}

// updateTeamRequest edits the badge reference; an empty value clears it.
type updateTeamRequest struct {
	BadgeURL string `json:"badge_url" validate:"omitempty,url"`
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req createTeamRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	team, err := h.teamService.Create(ctx, usecase.CreateTeamInput{
		UserID:    principal.UserID,
		Name:      req.Name,
		CoachName: req.CoachName,
		BadgeURL:  req.BadgeURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(team))
}

func (h *Handler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeam")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	team, err := h.teamService.GetMine(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get my team failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamToDTO(team))
}

func (h *Handler) UpdateMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMyTeam")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req updateTeamRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	team, err := h.teamService.UpdateBadge(ctx, principal.UserID, req.BadgeURL)
	if err != nil {
		h.logger.WarnContext(ctx, "update team badge failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamToDTO(team))
}
