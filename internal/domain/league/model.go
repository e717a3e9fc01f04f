package league

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrDuplicateInviteCode = errors.New("duplicate invite code")
	ErrDuplicateMembership = errors.New("duplicate league membership")
)

// InviteCodeLength is the number of characters in a league invite code.
const InviteCodeLength = 5

// League is a private competition between fantasy teams.
type League struct {
	ID          string
	Name        string
	InviteCode  string
	OwnerUserID string
	CreatedAt   time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if len(l.InviteCode) != InviteCodeLength {
		return fmt.Errorf("league invite code must have %d characters", InviteCodeLength)
	}
	if l.OwnerUserID == "" {
		return fmt.Errorf("league owner is required")
	}

	return nil
}

// Membership links a fantasy team to a league.
type Membership struct {
	LeagueID string
	TeamID   string
	JoinedAt time.Time
}

// NormalizeCode makes invite codes case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
