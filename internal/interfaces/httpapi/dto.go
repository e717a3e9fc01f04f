package httpapi

import (
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/club"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/confirmation"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/fantasyteam"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/formation"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/league"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/match"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/player"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/round"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/standings"
	"github.com/edsoncmach/cartola-paranaense/internal/usecase"
)

type formationDTO struct {
	Name   string         `json:"name"`
	Limits map[string]int `json:"limits"`
	Total  int            `json:"total"`
}

type roundDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Leg           string `json:"leg"`
	MarketCloseAt string `json:"market_close_at"`
	EndsAt        string `json:"ends_at,omitempty"`
	Finished      bool   `json:"finished"`
}

type activeRoundDTO struct {
	Round  *roundDTO `json:"round,omitempty"`
	Window string    `json:"window"`
}

type clubDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ShieldURL string `json:"shield_url,omitempty"`
	Group     string `json:"group,omitempty"`
}

type playerDTO struct {
	ID            string `json:"id"`
	ClubID        string `json:"club_id"`
	Name          string `json:"name"`
	Position      string `json:"position"`
	Price         string `json:"price"`
	Status        string `json:"status"`
	LastVariation string `json:"last_variation"`
}

type matchDTO struct {
	ID         string `json:"id"`
	RoundID    string `json:"round_id"`
	HomeClubID string `json:"home_club_id"`
	AwayClubID string `json:"away_club_id"`
	KickoffAt  string `json:"kickoff_at,omitempty"`
	HomeScore  *int   `json:"home_score,omitempty"`
	AwayScore  *int   `json:"away_score,omitempty"`
}

type standingsRowDTO struct {
	Position       int    `json:"position"`
	ClubID         string `json:"club_id"`
	ClubName       string `json:"club_name"`
	Played         int    `json:"played"`
	Points         int    `json:"points"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
}

type standingsTableDTO struct {
	Group string            `json:"group"`
	Rows  []standingsRowDTO `json:"rows"`
}

type rankingEntryDTO struct {
	Position  int    `json:"position"`
	TeamID    string `json:"team_id"`
	TeamName  string `json:"team_name"`
	CoachName string `json:"coach_name,omitempty"`
	BadgeURL  string `json:"badge_url,omitempty"`
	Points    string `json:"points"`
}

type rankingDTO struct {
	RoundID string            `json:"round_id,omitempty"`
	Entries []rankingEntryDTO `json:"entries"`
}

type teamDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CoachName string `json:"coach_name,omitempty"`
	BadgeURL  string `json:"badge_url,omitempty"`
	Balance   string `json:"balance"`
}

type rosterDTO struct {
	TeamID        string      `json:"team_id"`
	RoundID       string      `json:"round_id"`
	Scheme        string      `json:"scheme"`
	Players       []playerDTO `json:"players"`
	CaptainID     string      `json:"captain_id,omitempty"`
	Balance       string      `json:"balance"`
	Spent         string      `json:"spent"`
	Window        string      `json:"window"`
	MarketCloseAt string      `json:"market_close_at,omitempty"`
}

type toggleDTO struct {
	Action string    `json:"action"`
	Roster rosterDTO `json:"roster"`
}

type pendingConfirmationDTO struct {
	Token     string `json:"token"`
	Kind      string `json:"kind"`
	Scheme    string `json:"scheme,omitempty"`
	ExpiresAt string `json:"expires_at"`
}

type destructiveChangeDTO struct {
	Applied bool                    `json:"applied"`
	Pending *pendingConfirmationDTO `json:"pending,omitempty"`
	Roster  rosterDTO               `json:"roster"`
}

type leagueDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	InviteCode  string `json:"invite_code"`
	OwnerUserID string `json:"owner_user_id"`
	CreatedAt   string `json:"created_at"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formationToDTO(s formation.Scheme) formationDTO {
	limits := make(map[string]int, len(player.DisplayOrder))
	for _, pos := range player.DisplayOrder {
		limits[string(pos)] = s.Limit(pos)
	}
	return formationDTO{Name: s.Name, Limits: limits, Total: s.Total()}
}

func roundToDTO(r round.Round) roundDTO {
	return roundDTO{
		ID:            r.ID,
		Name:          r.Name,
		Type:          string(r.Type),
		Leg:           string(r.Leg),
		MarketCloseAt: formatTime(r.MarketCloseAt),
		EndsAt:        formatTime(r.EndsAt),
		Finished:      r.Finished,
	}
}

func clubToDTO(c club.Club) clubDTO {
	return clubDTO{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		ShieldURL: c.ShieldURL,
		Group:     c.Group,
	}
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:            p.ID,
		ClubID:        p.ClubID,
		Name:          p.Name,
		Position:      string(p.Position),
		Price:         p.Price.String(),
		Status:        string(p.Status),
		LastVariation: p.LastVariation.String(),
	}
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:         m.ID,
		RoundID:    m.RoundID,
		HomeClubID: m.HomeClubID,
		AwayClubID: m.AwayClubID,
		KickoffAt:  formatTime(m.KickoffAt),
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
	}
}

func standingsToDTO(tables []standings.Table) []standingsTableDTO {
	out := make([]standingsTableDTO, 0, len(tables))
	for _, table := range tables {
		rows := make([]standingsRowDTO, 0, len(table.Rows))
		for _, row := range table.Rows {
			rows = append(rows, standingsRowDTO{
				Position:       row.Position,
				ClubID:         row.ClubID,
				ClubName:       row.ClubName,
				Played:         row.Played,
				Points:         row.Points,
				Wins:           row.Wins,
				Draws:          row.Draws,
				Losses:         row.Losses,
				GoalsFor:       row.GoalsFor,
				GoalsAgainst:   row.GoalsAgainst,
				GoalDifference: row.GoalDifference,
			})
		}
		out = append(out, standingsTableDTO{Group: table.Group, Rows: rows})
	}
	return out
}

func rankingToDTO(r usecase.Ranking) rankingDTO {
	entries := make([]rankingEntryDTO, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, rankingEntryDTO{
			Position:  e.Position,
			TeamID:    e.TeamID,
			TeamName:  e.TeamName,
			CoachName: e.CoachName,
			BadgeURL:  e.BadgeURL,
			Points:    e.Points.String(),
		})
	}
	return rankingDTO{RoundID: r.Round.ID, Entries: entries}
}

func teamToDTO(t fantasyteam.Team) teamDTO {
	return teamDTO{
		ID:        t.ID,
		Name:      t.Name,
		CoachName: t.CoachName,
		BadgeURL:  t.BadgeURL,
		Balance:   t.Balance.String(),
	}
}

func rosterToDTO(v usecase.RosterView) rosterDTO {
	players := make([]playerDTO, 0, len(v.Players))
	for _, p := range v.Players {
		players = append(players, playerToDTO(p))
	}
	return rosterDTO{
		TeamID:        v.TeamID,
		RoundID:       v.RoundID,
		Scheme:        v.Scheme.Name,
		Players:       players,
		CaptainID:     v.CaptainID,
		Balance:       v.Balance.String(),
		Spent:         v.Spent.String(),
		Window:        string(v.Window),
		MarketCloseAt: formatTime(v.MarketCloseAt),
	}
}

func pendingToDTO(p *confirmation.Pending) *pendingConfirmationDTO {
	if p == nil {
		return nil
	}
	return &pendingConfirmationDTO{
		Token:     p.Token,
		Kind:      string(p.Kind),
		Scheme:    p.Scheme,
		ExpiresAt: formatTime(p.ExpiresAt),
	}
}

func leagueToDTO(l league.League) leagueDTO {
	return leagueDTO{
		ID:          l.ID,
		Name:        l.Name,
		InviteCode:  l.InviteCode,
		OwnerUserID: l.OwnerUserID,
		CreatedAt:   formatTime(l.CreatedAt),
	}
}
