package confirmation

import (
	"context"
	"errors"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/formation"
)

var ErrNotFound = errors.New("pending confirmation not found")

// Retention is how long a store keeps a token past its deadline, so a late
// confirmation is reported as expired rather than unknown.
const Retention = 5 * time.Minute

// Kind is the destructive roster change awaiting confirmation.
type Kind string

const (
	KindChangeScheme Kind = "change_scheme"
	KindSellAll      Kind = "sell_all"
)

func ParseKind(raw string) (Kind, bool) {
	switch Kind(raw) {
	case KindChangeScheme, KindSellAll:
		return Kind(raw), true
	default:
		return "", false
	}
}

// Pending is a single-use token that authorizes one destructive change.
type Pending struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	TeamID    string    `json:"team_id"`
	RoundID   string    `json:"round_id"`
	Kind      Kind      `json:"kind"`
	Scheme    string    `json:"scheme,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (p Pending) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// TargetScheme resolves the scheme of a change_scheme confirmation.
func (p Pending) TargetScheme() (formation.Scheme, error) {
	return formation.Resolve(p.Scheme)
}

// Store keeps pending confirmations until they are consumed or swept. Get
// reads without consuming; Take removes the token atomically so it can be
// used once.
type Store interface {
	Save(ctx context.Context, item Pending) error
	Get(ctx context.Context, token string) (Pending, error)
	Take(ctx context.Context, token string) (Pending, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
