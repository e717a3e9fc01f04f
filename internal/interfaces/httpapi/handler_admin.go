package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/scoring"
	"github.com/edsoncmach/cartola-paranaense/internal/usecase"
)

type adminCreateClubRequest struct {
	Name      string `json:"name" validate:"required,max=60"`
	ShieldURL string `json:"shield_url" validate:"omitempty,url"`
	Group     string `json:"group" validate:"omitempty,max=1"`
}

type adminCreatePlayerRequest struct {
	ClubID   string `json:"club_id" validate:"required"`
	Name     string `json:"name" validate:"required,max=60"`
	Position string `json:"position" validate:"required"`
	Price    string `json:"price" validate:"required"`
	Status   string `json:"status" validate:"omitempty,oneof=likely doubt injured suspended"`
}

// adminUpdatePlayerRequest leaves absent fields unchanged.
type adminUpdatePlayerRequest struct {
	ClubID   *string `json:"club_id" validate:"omitempty,min=1"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=60"`
	Position *string `json:"position"`
	Price    *string `json:"price"`
	Status   *string `json:"status" validate:"omitempty,oneof=likely doubt injured suspended"`
}

type adminCreateRoundRequest struct {
	ID            string `json:"id"`
	Name          string `json:"name" validate:"required"`
	Type          string `json:"type" validate:"omitempty,oneof=regular quarter semi final relegation"`
	Leg           string `json:"leg"`
	MarketCloseAt string `json:"market_close_at" validate:"required"`
	EndsAt        string `json:"ends_at"`
}

type adminUpdateRoundRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1"`
	Type          *string `json:"type" validate:"omitempty,oneof=regular quarter semi final relegation"`
	Leg           *string `json:"leg"`
	MarketCloseAt *string `json:"market_close_at"`
	EndsAt        *string `json:"ends_at"`
}

type adminCreateMatchRequest struct {
	RoundID    string `json:"round_id" validate:"required"`
	HomeClubID string `json:"home_club_id" validate:"required"`
	AwayClubID string `json:"away_club_id" validate:"required,nefield=HomeClubID"`
	KickoffAt  string `json:"kickoff_at"`
}

type adminPlayerStatsRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Played   bool   `json:"played"`
	Goals    int    `json:"goals" validate:"gte=0"`
	Assists  int    `json:"assists" validate:"gte=0"`
	Yellow   int    `json:"yellow" validate:"gte=0,lte=2"`
	Red      int    `json:"red" validate:"gte=0,lte=1"`
}

type adminSettleMatchRequest struct {
	RoundID   string                    `json:"round_id"`
	HomeScore int                       `json:"home_score" validate:"gte=0"`
	AwayScore int                       `json:"away_score" validate:"gte=0"`
	Stats     []adminPlayerStatsRequest `json:"stats" validate:"dive"`
}

func (h *Handler) AdminCreateClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreateClub")
	defer span.End()

	var req adminCreateClubRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.adminService.CreateClub(ctx, usecase.CreateClubInput{
		Name:      req.Name,
		ShieldURL: req.ShieldURL,
		Group:     req.Group,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "admin create club failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, clubToDTO(item))
}

func (h *Handler) AdminCreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreatePlayer")
	defer span.End()

	var req adminCreatePlayerRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	price, err := money.Parse(req.Price)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.adminService.CreatePlayer(ctx, usecase.CreatePlayerInput{
		ClubID:   req.ClubID,
		Name:     req.Name,
		Position: req.Position,
		Price:    price,
		Status:   req.Status,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "admin create player failed", "club_id", req.ClubID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) AdminUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminUpdatePlayer")
	defer span.End()

	var req adminUpdatePlayerRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	playerID := r.PathValue("playerID")
	input := usecase.UpdatePlayerInput{
		PlayerID: playerID,
		ClubID:   req.ClubID,
		Name:     req.Name,
		Position: req.Position,
		Status:   req.Status,
	}
	if req.Price != nil {
		price, err := money.Parse(*req.Price)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		input.Price = &price
	}

	item, err := h.adminService.UpdatePlayer(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "admin update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) AdminDeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminDeletePlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	if err := h.adminService.DeletePlayer(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "admin delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"player_id": playerID, "status": "deleted"})
}

func (h *Handler) AdminCreateRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreateRound")
	defer span.End()

	var req adminCreateRoundRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	marketCloseAt, err := parseTimestamp("market_close_at", req.MarketCloseAt)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	endsAt, err := parseTimestamp("ends_at", req.EndsAt)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.adminService.CreateRound(ctx, usecase.CreateRoundInput{
		ID:            req.ID,
		Name:          req.Name,
		Type:          req.Type,
		Leg:           req.Leg,
		MarketCloseAt: marketCloseAt,
		EndsAt:        endsAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "admin create round failed", "round_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, roundToDTO(item))
}

func (h *Handler) AdminUpdateRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminUpdateRound")
	defer span.End()

	var req adminUpdateRoundRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	roundID := r.PathValue("roundID")
	input := usecase.UpdateRoundInput{
		RoundID: roundID,
		Name:    req.Name,
		Type:    req.Type,
		Leg:     req.Leg,
	}
	if req.MarketCloseAt != nil {
		marketCloseAt, err := parseTimestamp("market_close_at", *req.MarketCloseAt)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		input.MarketCloseAt = &marketCloseAt
	}
	if req.EndsAt != nil {
		endsAt, err := parseTimestamp("ends_at", *req.EndsAt)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		input.EndsAt = &endsAt
	}

	item, err := h.adminService.UpdateRound(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "admin update round failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, roundToDTO(item))
}

func (h *Handler) AdminCreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreateMatch")
	defer span.End()

	var req adminCreateMatchRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	kickoffAt, err := parseTimestamp("kickoff_at", req.KickoffAt)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.adminService.CreateMatch(ctx, usecase.CreateMatchInput{
		RoundID:    req.RoundID,
		HomeClubID: req.HomeClubID,
		AwayClubID: req.AwayClubID,
		KickoffAt:  kickoffAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "admin create match failed", "round_id", req.RoundID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(item))
}

func (h *Handler) AdminSettleMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminSettleMatch")
	defer span.End()

	var req adminSettleMatchRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	input := scoring.SettleInput{
		RoundID:   req.RoundID,
		MatchID:   matchID,
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
		Stats:     make([]scoring.Stats, 0, len(req.Stats)),
	}
	for _, st := range req.Stats {
		input.Stats = append(input.Stats, scoring.Stats{
			PlayerID: st.PlayerID,
			Played:   st.Played,
			Goals:    st.Goals,
			Assists:  st.Assists,
			Yellow:   st.Yellow,
			Red:      st.Red,
		})
	}

	if err := h.adminService.SettleMatch(ctx, input); err != nil {
		h.logger.WarnContext(ctx, "admin settle match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"match_id": matchID, "status": "settled"})
}

func (h *Handler) AdminCloseRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCloseRound")
	defer span.End()

	roundID := r.PathValue("roundID")
	if err := h.adminService.CloseRound(ctx, roundID); err != nil {
		h.logger.WarnContext(ctx, "admin close round failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"round_id": roundID, "status": "finished"})
}

// parseTimestamp accepts RFC3339 values; an empty value is the zero time.
func parseTimestamp(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be RFC3339", usecase.ErrInvalidInput, field)
	}
	return t, nil
}
