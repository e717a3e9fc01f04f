package httpapi

import (
	"net/http"

	"github.com/edsoncmach/cartola-paranaense/internal/usecase"
)

type rosterPlayerRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type destructiveChangeRequest struct {
	Kind   string `json:"kind" validate:"required,oneof=change_scheme sell_all"`
	Scheme string `json:"scheme" validate:"required_if=Kind change_scheme"`
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	view, err := h.rosterService.Open(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "open roster failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(view))
}

func (h *Handler) TogglePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TogglePlayer")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req rosterPlayerRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rosterService.Toggle(ctx, principal.UserID, req.PlayerID)
	if err != nil {
		h.logger.InfoContext(ctx, "toggle player rejected", "user_id", principal.UserID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toggleDTO{
		Action: string(result.Action),
		Roster: rosterToDTO(result.View),
	})
}

func (h *Handler) SetCaptain(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetCaptain")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req rosterPlayerRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.rosterService.SetCaptain(ctx, principal.UserID, req.PlayerID)
	if err != nil {
		h.logger.InfoContext(ctx, "set captain rejected", "user_id", principal.UserID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(view))
}

func (h *Handler) ConfirmRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmRoster")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	view, err := h.rosterService.Confirm(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "confirm roster failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(view))
}

func (h *Handler) RequestDestructiveChange(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RequestDestructiveChange")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req destructiveChangeRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rosterService.RequestDestructiveChange(ctx, usecase.DestructiveChangeInput{
		UserID: principal.UserID,
		Kind:   req.Kind,
		Scheme: req.Scheme,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "request destructive change failed", "user_id", principal.UserID, "kind", req.Kind, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusAccepted
	if result.Applied {
		status = http.StatusOK
	}
	writeSuccess(ctx, w, status, destructiveChangeDTO{
		Applied: result.Applied,
		Pending: pendingToDTO(result.Pending),
		Roster:  rosterToDTO(result.View),
	})
}

func (h *Handler) ConfirmDestructiveChange(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmDestructiveChange")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	token := r.PathValue("token")
	view, err := h.rosterService.ConfirmDestructiveChange(ctx, principal.UserID, token)
	if err != nil {
		h.logger.WarnContext(ctx, "confirm destructive change failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(view))
}
