package roster

import (
	"errors"
	"fmt"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/formation"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/lineup"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/player"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/round"
)

var (
	ErrMarketClosed         = errors.New("market closed")
	ErrSquadFull            = errors.New("squad full")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrSlotLimitExceeded    = errors.New("slot limit exceeded")
	ErrIncompleteSquad      = errors.New("incomplete squad")
	ErrNoCaptain            = errors.New("no captain")
	ErrConfirmationRequired = errors.New("destructive change requires confirmation")
)

// ToggleResult tells the caller which way a toggle went.
type ToggleResult string

const (
	ToggleAdded   ToggleResult = "added"
	ToggleRemoved ToggleResult = "removed"
)

// Ledger is the working squad of one team for one round. It is not safe for
// concurrent use; callers serialize access per team.
type Ledger struct {
	teamID    string
	roundID   string
	scheme    formation.Scheme
	selected  []player.Player
	captainID string
	balance   money.Amount
}

// New returns an empty ledger holding the given available balance.
func New(teamID, roundID string, scheme formation.Scheme, balance money.Amount) *Ledger {
	if scheme.IsZero() {
		scheme = formation.Default()
	}
	return &Ledger{
		teamID:  teamID,
		roundID: roundID,
		scheme:  scheme,
		balance: balance,
	}
}

// Restore seeds a ledger from a persisted lineup. storedBalance already
// reflects the cost of the players, so nothing is debited again.
func Restore(teamID, roundID string, scheme formation.Scheme, players []player.Player, captainID string, storedBalance money.Amount) *Ledger {
	l := New(teamID, roundID, scheme, storedBalance)
	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		l.selected = append(l.selected, p)
	}
	if l.has(captainID) {
		l.captainID = captainID
	}
	return l
}

func (l *Ledger) TeamID() string {
	return l.teamID
}

func (l *Ledger) RoundID() string {
	return l.roundID
}

func (l *Ledger) Scheme() formation.Scheme {
	return l.scheme
}

func (l *Ledger) Balance() money.Amount {
	return l.balance
}

func (l *Ledger) CaptainID() string {
	return l.captainID
}

func (l *Ledger) Size() int {
	return len(l.selected)
}

func (l *Ledger) Selected() []player.Player {
	return append([]player.Player(nil), l.selected...)
}

func (l *Ledger) IsSelected(playerID string) bool {
	return l.has(playerID)
}

// Count returns how many selected players occupy the position.
func (l *Ledger) Count(position player.Position) int {
	n := 0
	for _, p := range l.selected {
		if p.Position == position {
			n++
		}
	}
	return n
}

// Spent is the sum of the selected players' prices.
func (l *Ledger) Spent() money.Amount {
	var total money.Amount
	for _, p := range l.selected {
		total += p.Price
	}
	return total
}

// Toggle removes a selected player or adds an unselected one. Every
// precondition is checked before any state changes.
func (l *Ledger) Toggle(active *round.Round, now time.Time, p player.Player) (ToggleResult, error) {
	if err := l.gate(active, now); err != nil {
		return "", err
	}

	if idx := l.indexOf(p.ID); idx >= 0 {
		removed := l.selected[idx]
		l.selected = append(l.selected[:idx], l.selected[idx+1:]...)
		l.balance += removed.Price
		if l.captainID == removed.ID {
			l.captainID = ""
		}
		return ToggleRemoved, nil
	}

	if len(l.selected) >= formation.SquadSize {
		return "", fmt.Errorf("%w: %d players already selected", ErrSquadFull, len(l.selected))
	}
	if p.Price > l.balance {
		return "", fmt.Errorf("%w: price %s exceeds balance %s", ErrInsufficientFunds, p.Price, l.balance)
	}
	limit := l.scheme.Limit(p.Position)
	if l.Count(p.Position) >= limit {
		return "", fmt.Errorf("%w: scheme %s allows %d %s", ErrSlotLimitExceeded, l.scheme.Name, limit, p.Position)
	}

	l.selected = append(l.selected, p)
	l.balance -= p.Price
	return ToggleAdded, nil
}

// SetCaptain makes playerID the only captain. Unknown players are ignored.
func (l *Ledger) SetCaptain(active *round.Round, now time.Time, playerID string) error {
	if err := l.gate(active, now); err != nil {
		return err
	}
	if !l.has(playerID) {
		return nil
	}
	l.captainID = playerID
	return nil
}

// SellAll clears the squad and refunds every selected price.
func (l *Ledger) SellAll(active *round.Round, now time.Time) error {
	if err := l.gate(active, now); err != nil {
		return err
	}
	l.clear()
	return nil
}

// ChangeScheme switches scheme directly when the squad is empty. A non-empty
// squad needs ApplySchemeChange after the caller confirmed the reset.
func (l *Ledger) ChangeScheme(active *round.Round, now time.Time, scheme formation.Scheme) error {
	if err := l.gate(active, now); err != nil {
		return err
	}
	if scheme.IsZero() {
		return formation.ErrUnknownScheme
	}
	if len(l.selected) > 0 && scheme.Name != l.scheme.Name {
		return fmt.Errorf("%w: squad has %d players", ErrConfirmationRequired, len(l.selected))
	}
	l.scheme = scheme
	return nil
}

// ApplySchemeChange clears the squad, refunds it and switches scheme.
func (l *Ledger) ApplySchemeChange(active *round.Round, now time.Time, scheme formation.Scheme) error {
	if err := l.gate(active, now); err != nil {
		return err
	}
	if scheme.IsZero() {
		return formation.ErrUnknownScheme
	}
	l.clear()
	l.scheme = scheme
	return nil
}

// Confirm validates the squad for saving and returns what must be persisted.
func (l *Ledger) Confirm(active *round.Round, now time.Time) (lineup.ReplaceInput, error) {
	if err := l.gate(active, now); err != nil {
		return lineup.ReplaceInput{}, err
	}
	if err := l.Validate(); err != nil {
		return lineup.ReplaceInput{}, err
	}
	return l.Snapshot(), nil
}

// Validate checks the confirm preconditions without the window gate.
func (l *Ledger) Validate() error {
	if len(l.selected) != formation.SquadSize {
		return fmt.Errorf("%w: %d of %d players selected", ErrIncompleteSquad, len(l.selected), formation.SquadSize)
	}
	if l.captainID == "" || !l.has(l.captainID) {
		return ErrNoCaptain
	}
	return nil
}

func (l *Ledger) Snapshot() lineup.ReplaceInput {
	entries := make([]lineup.Entry, 0, len(l.selected))
	for _, p := range l.selected {
		entries = append(entries, lineup.Entry{
			PlayerID:  p.ID,
			IsCaptain: p.ID == l.captainID,
		})
	}
	return lineup.ReplaceInput{
		TeamID:     l.teamID,
		RoundID:    l.roundID,
		Scheme:     l.scheme.Name,
		Entries:    entries,
		NewBalance: l.balance,
	}
}

// Clone returns an independent copy, used to stage changes that may be discarded.
func (l *Ledger) Clone() *Ledger {
	copied := *l
	copied.selected = append([]player.Player(nil), l.selected...)
	return &copied
}

func (l *Ledger) gate(active *round.Round, now time.Time) error {
	if active == nil || active.ID != l.roundID {
		return fmt.Errorf("%w: round %s is not the active round", ErrMarketClosed, l.roundID)
	}
	if !round.IsOpen(active, now) {
		return fmt.Errorf("%w: market closed at %s", ErrMarketClosed, active.MarketCloseAt.UTC().Format(time.RFC3339))
	}
	return nil
}

func (l *Ledger) clear() {
	l.balance += l.Spent()
	l.selected = nil
	l.captainID = ""
}

func (l *Ledger) has(playerID string) bool {
	return playerID != "" && l.indexOf(playerID) >= 0
}

func (l *Ledger) indexOf(playerID string) int {
	for i, p := range l.selected {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}
