package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for teams, leagues and catalog entries.
type Generator interface {
	NewID() (string, error)
}

// TimeOrderedGenerator issues UUIDv7 strings. They sort by creation time,
// which keeps primary key inserts append-only in Postgres.
type TimeOrderedGenerator struct {
	newUUID func() (uuid.UUID, error)
}

func NewTimeOrderedGenerator() *TimeOrderedGenerator {
	return &TimeOrderedGenerator{newUUID: uuid.NewV7}
}

func (g *TimeOrderedGenerator) NewID() (string, error) {
	value, err := g.newUUID()
	if err != nil {
		return "", fmt.Errorf("generate uuid v7: %w", err)
	}
	return value.String(), nil
}
