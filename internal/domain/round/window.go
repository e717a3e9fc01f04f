package round

import (
	"sort"
	"time"
)

// WindowState is the transfer market state derived from a round and the clock.
type WindowState string

const (
	WindowOpen   WindowState = "OPEN"
	WindowClosed WindowState = "CLOSED"
)

// State reports OPEN while now is strictly before the round's market close.
// A nil or finished round is always CLOSED.
func State(active *Round, now time.Time) WindowState {
	if active == nil || active.Finished {
		return WindowClosed
	}
	if now.Before(active.MarketCloseAt) {
		return WindowOpen
	}
	return WindowClosed
}

func IsOpen(active *Round, now time.Time) bool {
	return State(active, now) == WindowOpen
}

// Active returns the earliest unfinished round.
func Active(rounds []Round) (Round, bool) {
	sorted := chronological(rounds)
	for _, r := range sorted {
		if !r.Finished {
			return r, true
		}
	}
	return Round{}, false
}

// DefaultDisplay returns the most recently finished round, else the earliest round.
func DefaultDisplay(rounds []Round) (Round, bool) {
	sorted := chronological(rounds)
	if len(sorted) == 0 {
		return Round{}, false
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Finished {
			return sorted[i], true
		}
	}
	return sorted[0], true
}

func chronological(rounds []Round) []Round {
	out := append([]Round(nil), rounds...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].MarketCloseAt.Equal(out[j].MarketCloseAt) {
			return out[i].MarketCloseAt.Before(out[j].MarketCloseAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
