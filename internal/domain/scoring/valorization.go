package scoring

import "github.com/edsoncmach/cartola-paranaense/internal/domain/money"

// ValorizationPolicy turns a player's round points into a signed price delta.
// Implementations must be monotonic in points and return a delta <= 0 when
// points are below half of the price.
type ValorizationPolicy interface {
	Delta(price money.Amount, points Points) money.Amount
}

// FairPricePolicy moves the price by the distance between the round points and
// half of the price, scaled down by Damping.
type FairPricePolicy struct {
	Damping int64
}

func DefaultValorizationPolicy() FairPricePolicy {
	return FairPricePolicy{Damping: 10}
}

// Threshold is the points needed for a non-negative delta.
func Threshold(price money.Amount) Points {
	return Points(price.Cents() / 2)
}

func (p FairPricePolicy) Delta(price money.Amount, points Points) money.Amount {
	damping := p.Damping
	if damping <= 0 {
		damping = 1
	}
	excess := int64(points) - int64(Threshold(price))
	return money.FromCents(excess / damping)
}

// Revalue applies a policy and keeps the new price non-negative. The returned
// variation is the delta actually applied.
func Revalue(policy ValorizationPolicy, price money.Amount, points Points) (money.Amount, money.Amount) {
	newPrice := price + policy.Delta(price, points)
	if newPrice < 0 {
		newPrice = 0
	}
	return newPrice, newPrice - price
}
