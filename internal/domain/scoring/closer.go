package scoring

import (
	"context"
	"errors"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/player"
)

var ErrRoundFinished = errors.New("round already finished")

// RoundClosure is everything closing a round writes: the new prices of the
// players who scored, the lineup value returned to each team and the finished
// flag of the round.
type RoundClosure struct {
	RoundID      string
	PriceChanges []player.PriceChange
	Refunds      map[string]money.Amount
}

// RoundCloser persists a RoundClosure as one unit. Either every price, every
// refund and the finished flag are written or nothing is. A round that is
// already finished is reported as ErrRoundFinished and left untouched.
type RoundCloser interface {
	CloseRound(ctx context.Context, closure RoundClosure) error
}
