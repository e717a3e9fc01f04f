package player

import (
	"fmt"
	"strings"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
)

// Position represents the slot categories a scheme allocates.
type Position string

const (
	PositionGoalkeeper Position = "gol"
	PositionCenterBack Position = "zag"
	PositionFullback   Position = "lat"
	PositionMidfielder Position = "mei"
	PositionForward    Position = "ata"
	PositionCoach      Position = "tec"
)

// DisplayOrder is the order positions are listed on a squad sheet.
var DisplayOrder = []Position{
	PositionGoalkeeper,
	PositionFullback,
	PositionCenterBack,
	PositionMidfielder,
	PositionForward,
	PositionCoach,
}

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionCenterBack: {},
	PositionFullback:   {},
	PositionMidfielder: {},
	PositionForward:    {},
	PositionCoach:      {},
}

func ParsePosition(v string) (Position, bool) {
	p := Position(strings.ToLower(strings.TrimSpace(v)))
	_, ok := AllPositions[p]
	return p, ok
}

// Status is the availability flag shown next to a player.
type Status string

const (
	StatusLikely    Status = "likely"
	StatusDoubt     Status = "doubt"
	StatusInjured   Status = "injured"
	StatusSuspended Status = "suspended"
)

var AllStatuses = map[Status]struct{}{
	StatusLikely:    {},
	StatusDoubt:     {},
	StatusInjured:   {},
	StatusSuspended: {},
}

// Player is a selectable athlete.
type Player struct {
	ID            string
	ClubID        string
	Name          string
	Position      Position
	Price         money.Amount
	Status        Status
	LastVariation money.Amount
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.ClubID == "" {
		return fmt.Errorf("player club id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if _, ok := AllStatuses[p.Status]; !ok {
		return fmt.Errorf("invalid player status: %s", p.Status)
	}
	if p.Price < 0 {
		return fmt.Errorf("player price cannot be negative")
	}

	return nil
}
