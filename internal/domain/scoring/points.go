package scoring

import (
	"fmt"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/lineup"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/player"
)

// Points is a round score in hundredths of a point.
type Points int64

func FromWhole(v int64) Points {
	return Points(v * 100)
}

func (p Points) String() string {
	v := int64(p)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

const (
	PointsGoal         Points = 800
	PointsAssist       Points = 500
	PointsYellowCard   Points = -200
	PointsRedCard      Points = -500
	PointsCleanSheet   Points = 500
	PointsGoalConceded Points = -100
	PointsTeamWin      Points = 100
	PointsTeamLoss     Points = -100
)

const CaptainMultiplier = 2

// Stats are one player's events in one match.
type Stats struct {
	PlayerID string
	Played   bool
	Goals    int
	Assists  int
	Yellow   int
	Red      int
}

// PlayerPoints scores one player in one match. goalsFor and goalsAgainst are
// from the player's club's point of view. Players who did not play score 0.
func PlayerPoints(position player.Position, stats Stats, goalsFor, goalsAgainst int) Points {
	if !stats.Played {
		return 0
	}

	total := Points(stats.Goals)*PointsGoal +
		Points(stats.Assists)*PointsAssist +
		Points(stats.Yellow)*PointsYellowCard +
		Points(stats.Red)*PointsRedCard

	if goalsAgainst == 0 && earnsCleanSheet(position) {
		total += PointsCleanSheet
	}
	if position == player.PositionGoalkeeper {
		total += Points(goalsAgainst) * PointsGoalConceded
	}

	switch {
	case goalsFor > goalsAgainst:
		total += PointsTeamWin
	case goalsFor < goalsAgainst:
		total += PointsTeamLoss
	}

	return total
}

func earnsCleanSheet(position player.Position) bool {
	switch position {
	case player.PositionGoalkeeper, player.PositionCenterBack, player.PositionFullback:
		return true
	default:
		return false
	}
}

// ApplyCaptain doubles a finished additive total for the captain.
func ApplyCaptain(total Points, isCaptain bool) Points {
	if isCaptain {
		return total * CaptainMultiplier
	}
	return total
}

// TeamRoundPoints sums a lineup's player points for the round, doubling the captain once.
func TeamRoundPoints(entries []lineup.Entry, playerPoints map[string]Points) Points {
	var total Points
	for _, e := range entries {
		total += ApplyCaptain(playerPoints[e.PlayerID], e.IsCaptain)
	}
	return total
}
