package formation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/player"
)

var ErrUnknownScheme = errors.New("unknown formation scheme")

// SquadSize is the number of slots every scheme allocates, coach included.
const SquadSize = 12

const DefaultSchemeName = "4-3-3"

// Scheme maps each position to the maximum number of selectable players.
type Scheme struct {
	Name   string
	limits map[player.Position]int
}

func (s Scheme) Limit(position player.Position) int {
	return s.limits[position]
}

func (s Scheme) Limits() map[player.Position]int {
	out := make(map[player.Position]int, len(player.AllPositions))
	for position := range player.AllPositions {
		out[position] = s.limits[position]
	}
	return out
}

func (s Scheme) Total() int {
	total := 0
	for _, limit := range s.limits {
		total += limit
	}
	return total
}

func (s Scheme) IsZero() bool {
	return s.Name == ""
}

var catalog = []Scheme{
	newScheme("4-3-3", 1, 2, 2, 3, 3, 1),
	newScheme("4-4-2", 1, 2, 2, 4, 2, 1),
	newScheme("3-5-2", 1, 3, 0, 5, 2, 1),
	newScheme("3-4-3", 1, 3, 0, 4, 3, 1),
	newScheme("4-5-1", 1, 2, 2, 5, 1, 1),
}

func newScheme(name string, gol, zag, lat, mei, ata, tec int) Scheme {
	return Scheme{
		Name: name,
		limits: map[player.Position]int{
			player.PositionGoalkeeper: gol,
			player.PositionCenterBack: zag,
			player.PositionFullback:   lat,
			player.PositionMidfielder: mei,
			player.PositionForward:    ata,
			player.PositionCoach:      tec,
		},
	}
}

// All returns every scheme in catalog order.
func All() []Scheme {
	return append([]Scheme(nil), catalog...)
}

func Lookup(name string) (Scheme, bool) {
	name = strings.TrimSpace(name)
	for _, scheme := range catalog {
		if scheme.Name == name {
			return scheme, true
		}
	}
	return Scheme{}, false
}

func MustLookup(name string) Scheme {
	scheme, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("formation: unknown scheme %q", name))
	}
	return scheme
}

// Resolve is Lookup with an error suitable for wrapping.
func Resolve(name string) (Scheme, error) {
	scheme, ok := Lookup(name)
	if !ok {
		return Scheme{}, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
	return scheme, nil
}

func Default() Scheme {
	return MustLookup(DefaultSchemeName)
}
