package lineup

import (
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
)

// Entry is one selected player in a confirmed lineup.
type Entry struct {
	PlayerID  string
	IsCaptain bool
}

// Lineup is the confirmed squad and captain of one team in one round.
type Lineup struct {
	TeamID        string
	RoundID       string
	Scheme        string
	Entries       []Entry
	BalanceAtSave money.Amount
	SavedAt       time.Time
}

func (l Lineup) CaptainID() string {
	for _, e := range l.Entries {
		if e.IsCaptain {
			return e.PlayerID
		}
	}
	return ""
}

func (l Lineup) PlayerIDs() []string {
	out := make([]string, 0, len(l.Entries))
	for _, e := range l.Entries {
		out = append(out, e.PlayerID)
	}
	return out
}

// ReplaceInput is the full state written by one save.
type ReplaceInput struct {
	TeamID     string
	RoundID    string
	Scheme     string
	Entries    []Entry
	NewBalance money.Amount
}
