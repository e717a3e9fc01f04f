package round

import (
	"fmt"
	"strings"
	"time"
)

// Type distinguishes group-phase rounds from knockout stages.
type Type string

const (
	TypeRegular    Type = "regular"
	TypeQuarter    Type = "quarter"
	TypeSemi       Type = "semi"
	TypeFinal      Type = "final"
	TypeRelegation Type = "relegation"
)

var AllTypes = map[Type]struct{}{
	TypeRegular:    {},
	TypeQuarter:    {},
	TypeSemi:       {},
	TypeFinal:      {},
	TypeRelegation: {},
}

// Leg marks the position of a round inside a two-legged tie.
type Leg string

const (
	LegSingle Leg = "single"
	LegFirst  Leg = "first"
	LegSecond Leg = "second"
)

var AllLegs = map[Leg]struct{}{
	LegSingle: {},
	LegFirst:  {},
	LegSecond: {},
}

// Round is the unit of transfer-window gating and scoring settlement.
type Round struct {
	ID            string
	Name          string
	Type          Type
	Leg           Leg
	MarketCloseAt time.Time
	EndsAt        time.Time
	Finished      bool
}

func (r Round) IsRegular() bool {
	return r.Type == TypeRegular
}

func (r Round) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("round id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("round name is required")
	}
	if _, ok := AllTypes[r.Type]; !ok {
		return fmt.Errorf("invalid round type: %s", r.Type)
	}
	if _, ok := AllLegs[r.Leg]; !ok {
		return fmt.Errorf("invalid round leg: %s", r.Leg)
	}
	if r.MarketCloseAt.IsZero() {
		return fmt.Errorf("round market close time is required")
	}
	if !r.EndsAt.IsZero() && r.EndsAt.Before(r.MarketCloseAt) {
		return fmt.Errorf("round end time must not precede market close")
	}

	return nil
}
