package mapping

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FullConsolidation is the default consolidation percentage: the entity's
// results roll up into the reporting group in full.
var FullConsolidation = decimal.NewFromInt(100)

// Mapping assigns a legal entity to a sector code within a reporting group,
// with an effective window and a consolidation percentage.
type Mapping struct {
	id            string
	groupCode     string
	sectorCode    string
	abn           string
	consolidation decimal.Decimal
	effectiveDate time.Time
	endDate       time.Time
	active        bool
	createdBy     string
	createdAt     time.Time
	modifiedBy    string
	modifiedAt    time.Time
}

// NewID mints a mapping identifier: "MAP" followed by the first eight hex
// characters of a random UUID, uppercased.
func NewID() string {
	return "MAP" + strings.ToUpper(uuid.NewString()[:8])
}

func New(id, groupCode, sectorCode, abn string, consolidation decimal.Decimal, effectiveDate time.Time) Mapping {
	return Mapping{
		id:            strings.TrimSpace(id),
		groupCode:     strings.ToUpper(strings.TrimSpace(groupCode)),
		sectorCode:    strings.ToUpper(strings.TrimSpace(sectorCode)),
		abn:           strings.TrimSpace(abn),
		consolidation: consolidation,
		effectiveDate: effectiveDate,
		active:        true,
	}
}

func Hydrate(
	id string,
	groupCode string,
	sectorCode string,
	abn string,
	consolidation decimal.Decimal,
	effectiveDate time.Time,
	endDate time.Time,
	active bool,
	createdBy string,
	createdAt time.Time,
	modifiedBy string,
	modifiedAt time.Time,
) Mapping {
	return Mapping{
		id:            strings.TrimSpace(id),
		groupCode:     strings.ToUpper(strings.TrimSpace(groupCode)),
		sectorCode:    strings.ToUpper(strings.TrimSpace(sectorCode)),
		abn:           strings.TrimSpace(abn),
		consolidation: consolidation,
		effectiveDate: effectiveDate,
		endDate:       endDate,
		active:        active,
		createdBy:     createdBy,
		createdAt:     createdAt,
		modifiedBy:    modifiedBy,
		modifiedAt:    modifiedAt,
	}
}

func (m Mapping) ID() string                     { return m.id }
func (m Mapping) GroupCode() string              { return m.groupCode }
func (m Mapping) SectorCode() string             { return m.sectorCode }
func (m Mapping) ABN() string                    { return m.abn }
func (m Mapping) Consolidation() decimal.Decimal { return m.consolidation }
func (m Mapping) EffectiveDate() time.Time       { return m.effectiveDate }
func (m Mapping) EndDate() time.Time             { return m.endDate }
func (m Mapping) IsActive() bool                 { return m.active }
func (m Mapping) CreatedBy() string              { return m.createdBy }
func (m Mapping) CreatedAt() time.Time           { return m.createdAt }
func (m Mapping) ModifiedBy() string             { return m.modifiedBy }
func (m Mapping) ModifiedAt() time.Time          { return m.modifiedAt }
func (m Mapping) IsZero() bool                   { return m.id == "" }

func (m Mapping) WithConsolidation(v decimal.Decimal) Mapping {
	m.consolidation = v
	return m
}

func (m Mapping) WithEndDate(endDate time.Time) Mapping {
	m.endDate = endDate
	return m
}

func (m Mapping) WithActive(active bool) Mapping {
	m.active = active
	return m
}

func (m Mapping) WithAudit(modifiedBy string, modifiedAt time.Time) Mapping {
	m.modifiedBy = modifiedBy
	m.modifiedAt = modifiedAt
	return m
}

func (m Mapping) WithCreator(createdBy string) Mapping {
	m.createdBy = createdBy
	return m
}

// ValidConsolidation reports whether v lies in [0, 100].
func ValidConsolidation(v decimal.Decimal) bool {
	return !v.IsNegative() && v.LessThanOrEqual(FullConsolidation)
}
