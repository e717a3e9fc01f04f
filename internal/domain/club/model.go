package club

import (
	"fmt"
	"strings"
)

// Group labels split clubs into separate regular-phase tables.
const (
	GroupA    = "A"
	GroupB    = "B"
	GroupNone = ""
)

// Club is a real football club whose players can be selected.
type Club struct {
	ID        string
	Name      string
	Slug      string
	ShieldURL string
	Group     string
}

func NormalizeGroup(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

func (c Club) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("club id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("club name is required")
	}
	if c.Slug == "" {
		return fmt.Errorf("club slug is required")
	}
	switch c.Group {
	case GroupA, GroupB, GroupNone:
	default:
		return fmt.Errorf("invalid club group: %s", c.Group)
	}

	return nil
}
