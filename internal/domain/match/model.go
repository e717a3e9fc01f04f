package match

import (
	"fmt"
	"time"
)

// Match is a real fixture between two clubs inside a round.
type Match struct {
	ID         string
	RoundID    string
	HomeClubID string
	AwayClubID string
	KickoffAt  time.Time
	HomeScore  *int
	AwayScore  *int
}

// Completed reports whether both scores are set.
func (m Match) Completed() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.RoundID == "" {
		return fmt.Errorf("match round id is required")
	}
	if m.HomeClubID == "" || m.AwayClubID == "" {
		return fmt.Errorf("match home and away clubs are required")
	}
	if m.HomeClubID == m.AwayClubID {
		return fmt.Errorf("match home and away clubs must differ")
	}
	if m.HomeScore != nil && *m.HomeScore < 0 {
		return fmt.Errorf("home score cannot be negative")
	}
	if m.AwayScore != nil && *m.AwayScore < 0 {
		return fmt.Errorf("away score cannot be negative")
	}

	return nil
}
