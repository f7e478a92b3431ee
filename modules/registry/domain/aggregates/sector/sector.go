package sector

import (
	"strings"
	"time"
)

// Sector is a sector code from the classification scheme entities are
// mapped into, e.g. F1N01 for financial services.
type Sector struct {
	code        string
	name        string
	description string
	active      bool
	createdAt   time.Time
}

func New(code, name, description string) Sector {
	return Sector{
		code:        NormalizeCode(code),
		name:        strings.TrimSpace(name),
		description: strings.TrimSpace(description),
		active:      true,
	}
}

func Hydrate(code, name, description string, active bool, createdAt time.Time) Sector {
	return Sector{
		code:        NormalizeCode(code),
		name:        strings.TrimSpace(name),
		description: strings.TrimSpace(description),
		active:      active,
		createdAt:   createdAt,
	}
}

func (s Sector) Code() string         { return s.code }
func (s Sector) Name() string         { return s.name }
func (s Sector) Description() string  { return s.description }
func (s Sector) IsActive() bool       { return s.active }
func (s Sector) CreatedAt() time.Time { return s.createdAt }
func (s Sector) IsZero() bool         { return s.code == "" && s.name == "" }

func (s Sector) WithName(name string) Sector {
	s.name = strings.TrimSpace(name)
	return s
}

func (s Sector) WithDescription(description string) Sector {
	s.description = strings.TrimSpace(description)
	return s
}

func (s Sector) WithActive(active bool) Sector {
	s.active = active
	return s
}

func NormalizeCode(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}
