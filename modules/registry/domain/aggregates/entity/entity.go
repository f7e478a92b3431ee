package entity

import (
	"strings"
	"time"
)

type Kind string

const (
	KindParent       Kind = "Parent"
	KindSubsidiary   Kind = "Subsidiary"
	KindJointVenture Kind = "JV"
	KindBranch       Kind = "Branch"
	KindOther        Kind = "Other"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusPending  Status = "Pending"
)

// Kinds lists the accepted entity kinds in presentation order.
func Kinds() []Kind {
	return []Kind{KindParent, KindSubsidiary, KindJointVenture, KindBranch, KindOther}
}

// Statuses lists the accepted lifecycle statuses in presentation order.
func Statuses() []Status {
	return []Status{StatusActive, StatusInactive, StatusPending}
}

// ParseKind maps stored and user-facing spellings onto a Kind. "JV" is the
// stored form for joint ventures; the longhand spellings are accepted too.
func ParseKind(v string) (Kind, bool) {
	switch strings.TrimSpace(v) {
	case string(KindParent):
		return KindParent, true
	case string(KindSubsidiary):
		return KindSubsidiary, true
	case string(KindJointVenture), "JointVenture", "Joint Venture":
		return KindJointVenture, true
	case string(KindBranch):
		return KindBranch, true
	case string(KindOther):
		return KindOther, true
	}
	return "", false
}

func ParseStatus(v string) (Status, bool) {
	switch strings.TrimSpace(v) {
	case string(StatusActive):
		return StatusActive, true
	case string(StatusInactive):
		return StatusInactive, true
	case string(StatusPending):
		return StatusPending, true
	}
	return "", false
}

// Entity is a legal entity in the corporate hierarchy, keyed by its ABN.
// The ABN and the parent link are fixed at creation time.
type Entity struct {
	abn           string
	name          string
	parentABN     string
	kind          Kind
	status        Status
	effectiveDate time.Time
	endDate       time.Time
	createdBy     string
	createdAt     time.Time
	modifiedBy    string
	modifiedAt    time.Time
}

func New(abn, name, parentABN string, kind Kind, status Status, effectiveDate time.Time) Entity {
	if status == "" {
		status = StatusActive
	}
	return Entity{
		abn:           NormalizeABN(abn),
		name:          strings.TrimSpace(name),
		parentABN:     NormalizeABN(parentABN),
		kind:          kind,
		status:        status,
		effectiveDate: effectiveDate,
	}
}

func Hydrate(
	abn string,
	name string,
	parentABN string,
	kind Kind,
	status Status,
	effectiveDate time.Time,
	endDate time.Time,
	createdBy string,
	createdAt time.Time,
	modifiedBy string,
	modifiedAt time.Time,
) Entity {
	return Entity{
		abn:           NormalizeABN(abn),
		name:          strings.TrimSpace(name),
		parentABN:     NormalizeABN(parentABN),
		kind:          kind,
		status:        status,
		effectiveDate: effectiveDate,
		endDate:       endDate,
		createdBy:     createdBy,
		createdAt:     createdAt,
		modifiedBy:    modifiedBy,
		modifiedAt:    modifiedAt,
	}
}

func (e Entity) ABN() string              { return e.abn }
func (e Entity) Name() string             { return e.name }
func (e Entity) ParentABN() string        { return e.parentABN }
func (e Entity) Kind() Kind               { return e.kind }
func (e Entity) Status() Status           { return e.status }
func (e Entity) EffectiveDate() time.Time { return e.effectiveDate }
func (e Entity) EndDate() time.Time       { return e.endDate }
func (e Entity) CreatedBy() string        { return e.createdBy }
func (e Entity) CreatedAt() time.Time     { return e.createdAt }
func (e Entity) ModifiedBy() string       { return e.modifiedBy }
func (e Entity) ModifiedAt() time.Time    { return e.modifiedAt }

func (e Entity) IsZero() bool   { return e.abn == "" && e.name == "" }
func (e Entity) IsRoot() bool   { return e.parentABN == "" }
func (e Entity) IsActive() bool { return e.status == StatusActive }

func (e Entity) WithName(name string) Entity {
	e.name = strings.TrimSpace(name)
	return e
}

func (e Entity) WithKind(kind Kind) Entity {
	e.kind = kind
	return e
}

func (e Entity) WithStatus(status Status) Entity {
	e.status = status
	return e
}

func (e Entity) WithEffectiveDate(effectiveDate time.Time) Entity {
	e.effectiveDate = effectiveDate
	return e
}

func (e Entity) WithEndDate(endDate time.Time) Entity {
	e.endDate = endDate
	return e
}

func (e Entity) WithAudit(modifiedBy string, modifiedAt time.Time) Entity {
	e.modifiedBy = modifiedBy
	e.modifiedAt = modifiedAt
	return e
}

func (e Entity) WithCreator(createdBy string) Entity {
	e.createdBy = createdBy
	return e
}

// NormalizeABN strips whitespace, including interior grouping spaces, so
// "91 000 000 001" and "91000000001" compare equal.
func NormalizeABN(v string) string {
	return strings.ReplaceAll(strings.TrimSpace(v), " ", "")
}

// ValidABN reports whether v is an eleven-digit identifier.
func ValidABN(v string) bool {
	if len(v) != 11 {
		return false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
