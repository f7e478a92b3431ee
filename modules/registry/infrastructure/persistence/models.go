package persistence

import (
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/entity"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/group"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/mapping"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/sector"
)

const entityColumns = `abn, entity_name, parent_abn, entity_type, status, effective_date, end_date, created_by, created_date, modified_by, modified_date`

func scanEntity(s pgx.Row) (entity.Entity, error) {
	var (
		abn           string
		name          string
		parentABN     pgtype.Text
		kind          string
		status        string
		effectiveDate time.Time
		endDate       pgtype.Date
		createdBy     pgtype.Text
		createdAt     time.Time
		modifiedBy    pgtype.Text
		modifiedAt    pgtype.Timestamptz
	)
	if err := s.Scan(
		&abn,
		&name,
		&parentABN,
		&kind,
		&status,
		&effectiveDate,
		&endDate,
		&createdBy,
		&createdAt,
		&modifiedBy,
		&modifiedAt,
	); err != nil {
		return entity.Entity{}, err
	}
	return entity.Hydrate(
		abn,
		name,
		textOrEmpty(parentABN),
		entity.Kind(kind),
		entity.Status(status),
		effectiveDate,
		dateOrZero(endDate),
		textOrEmpty(createdBy),
		createdAt,
		textOrEmpty(modifiedBy),
		timeOrZero(modifiedAt),
	), nil
}

const groupColumns = `reporting_group_code, reporting_group_name, description, is_active, created_date`

func scanGroup(s pgx.Row) (group.Group, error) {
	var (
		code        string
		name        string
		description pgtype.Text
		active      bool
		createdAt   time.Time
	)
	if err := s.Scan(&code, &name, &description, &active, &createdAt); err != nil {
		return group.Group{}, err
	}
	return group.Hydrate(code, name, textOrEmpty(description), active, createdAt), nil
}

const sectorColumns = `sector_code, sector_name, sector_description, is_active, created_date`

func scanSector(s pgx.Row) (sector.Sector, error) {
	var (
		code        string
		name        string
		description pgtype.Text
		active      bool
		createdAt   time.Time
	)
	if err := s.Scan(&code, &name, &description, &active, &createdAt); err != nil {
		return sector.Sector{}, err
	}
	return sector.Hydrate(code, name, textOrEmpty(description), active, createdAt), nil
}

const mappingColumns = `mapping_id, reporting_group_code, sector_code, abn, consolidation_percentage, effective_date, end_date, is_active, created_by, created_date, modified_by, modified_date`

func scanMapping(s pgx.Row) (mapping.Mapping, error) {
	var (
		id            string
		groupCode     string
		sectorCode    string
		abn           string
		consolidation decimal.Decimal
		effectiveDate time.Time
		endDate       pgtype.Date
		active        bool
		createdBy     pgtype.Text
		createdAt     time.Time
		modifiedBy    pgtype.Text
		modifiedAt    pgtype.Timestamptz
	)
	if err := s.Scan(
		&id,
		&groupCode,
		&sectorCode,
		&abn,
		&consolidation,
		&effectiveDate,
		&endDate,
		&active,
		&createdBy,
		&createdAt,
		&modifiedBy,
		&modifiedAt,
	); err != nil {
		return mapping.Mapping{}, err
	}
	return mapping.Hydrate(
		id,
		groupCode,
		sectorCode,
		abn,
		consolidation,
		effectiveDate,
		dateOrZero(endDate),
		active,
		textOrEmpty(createdBy),
		createdAt,
		textOrEmpty(modifiedBy),
		timeOrZero(modifiedAt),
	), nil
}
