package group

import (
	"strings"
	"time"
)

// Group is a reporting group: a named slice of the organisation that
// mappings attach entities to, e.g. regulatory vs internal reporting.
type Group struct {
	code        string
	name        string
	description string
	active      bool
	createdAt   time.Time
}

func New(code, name, description string) Group {
	return Group{
		code:        NormalizeCode(code),
		name:        strings.TrimSpace(name),
		description: strings.TrimSpace(description),
		active:      true,
	}
}

func Hydrate(code, name, description string, active bool, createdAt time.Time) Group {
	return Group{
		code:        NormalizeCode(code),
		name:        strings.TrimSpace(name),
		description: strings.TrimSpace(description),
		active:      active,
		createdAt:   createdAt,
	}
}

func (g Group) Code() string         { return g.code }
func (g Group) Name() string         { return g.name }
func (g Group) Description() string  { return g.description }
func (g Group) IsActive() bool       { return g.active }
func (g Group) CreatedAt() time.Time { return g.createdAt }
func (g Group) IsZero() bool         { return g.code == "" && g.name == "" }

func (g Group) WithName(name string) Group {
	g.name = strings.TrimSpace(name)
	return g
}

func (g Group) WithDescription(description string) Group {
	g.description = strings.TrimSpace(description)
	return g
}

func (g Group) WithActive(active bool) Group {
	g.active = active
	return g
}

func NormalizeCode(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}
