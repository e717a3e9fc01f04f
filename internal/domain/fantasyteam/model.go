package fantasyteam

import (
	"fmt"
	"strings"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
)

// Team is a user's fantasy side; Balance is the authoritative available budget.
type Team struct {
	ID        string
	UserID    string
	Name      string
	CoachName string
	BadgeURL  string
	Balance   money.Amount
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.UserID == "" {
		return fmt.Errorf("team user id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Balance < 0 {
		return fmt.Errorf("team balance cannot be negative")
	}

	return nil
}
