package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// Breaker stops calling a dependency after FailureThreshold consecutive
// failures. Once OpenTimeout has passed it lets HalfOpenProbes calls through
// and closes again when all of them succeed.
type Breaker struct {
	mu sync.Mutex

	cfg      BreakerConfig
	state    State
	failures int
	openedAt time.Time
	inFlight int
	passed   int

	onChange func(from, to State)
	now      func() time.Time
}

// NewBreaker returns a breaker; a disabled config yields a breaker that
// always lets calls through.
func NewBreaker(cfg BreakerConfig) *Breaker {
	return &Breaker{
		cfg:   cfg.normalized(),
		state: StateClosed,
		now:   time.Now,
	}
}

// OnStateChange registers a hook invoked under the breaker lock on every
// transition. It must not call back into the breaker.
func (b *Breaker) OnStateChange(fn func(from, to State)) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// Do runs fn unless the breaker is open. Context cancellation by the caller
// is not counted as a dependency failure.
func (b *Breaker) Do(ctx context.Context, fn func(context.Context) error) error {
	if !b.cfg.Enabled {
		return fn(ctx)
	}
	if err := b.acquire(); err != nil {
		return err
	}

	err := fn(ctx)
	switch {
	case err == nil:
		b.succeed()
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		b.release()
	default:
		b.fail()
	}
	return err
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) acquire() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrOpen
		}
		b.transition(StateHalfOpen)
	}
	if b.state == StateHalfOpen {
		if b.inFlight >= b.cfg.HalfOpenProbes {
			return ErrOpen
		}
		b.inFlight++
	}
	return nil
}

func (b *Breaker) succeed() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		b.inFlight = max(b.inFlight-1, 0)
		b.passed++
		if b.passed >= b.cfg.HalfOpenProbes && b.inFlight == 0 {
			b.transition(StateClosed)
		}
	}
}

func (b *Breaker) fail() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.transition(StateOpen)
		}
	case StateHalfOpen:
		b.transition(StateOpen)
	case StateOpen:
		b.openedAt = b.now()
	}
}

func (b *Breaker) release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen {
		b.inFlight = max(b.inFlight-1, 0)
	}
}

func (b *Breaker) transition(to State) {
	from := b.state
	b.state = to
	b.inFlight = 0
	b.passed = 0
	switch to {
	case StateOpen:
		b.openedAt = b.now()
	case StateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	}
	if b.onChange != nil && from != to {
		b.onChange(from, to)
	}
}
