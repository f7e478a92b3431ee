package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/mapping"
	"github.com/alphaholdings/entity-registry/pkg/composables"
)

type MappingRepository struct{}

func NewMappingRepository() mapping.Repository {
	return &MappingRepository{}
}

func (r *MappingRepository) GetAll(ctx context.Context, filter *mapping.Filter) ([]mapping.Mapping, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		filter = &mapping.Filter{}
	}

	where, args := buildMappingFilters(filter)
	query := `SELECT ` + mappingColumns + ` FROM sector_abn_mapping`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY mapping_id`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]mapping.Mapping, 0)
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MappingRepository) GetByID(ctx context.Context, id string) (mapping.Mapping, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return mapping.Mapping{}, err
	}

	m, err := scanMapping(tx.QueryRow(ctx, `
SELECT `+mappingColumns+`
FROM sector_abn_mapping
WHERE mapping_id = $1
`, strings.TrimSpace(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mapping.Mapping{}, mapping.ErrNotFound
		}
		return mapping.Mapping{}, err
	}
	return m, nil
}

func (r *MappingRepository) Create(ctx context.Context, m mapping.Mapping) (mapping.Mapping, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return mapping.Mapping{}, err
	}

	created, err := scanMapping(tx.QueryRow(ctx, `
INSERT INTO sector_abn_mapping (mapping_id, reporting_group_code, sector_code, abn, consolidation_percentage, effective_date, end_date, is_active, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING `+mappingColumns+`
`,
		m.ID(),
		m.GroupCode(),
		m.SectorCode(),
		m.ABN(),
		m.Consolidation(),
		m.EffectiveDate(),
		pgNullableDate(m.EndDate()),
		m.IsActive(),
		pgNullableText(m.CreatedBy()),
	))
	if err != nil {
		if mapped := mapMappingWriteError(err); mapped != err {
			return mapping.Mapping{}, mapped
		}
		return mapping.Mapping{}, fmt.Errorf("create mapping: %w", err)
	}
	return created, nil
}

// Update writes the mutable attributes. The referenced group, sector and
// entity are fixed at creation time; a re-mapping is a new row.
func (r *MappingRepository) Update(ctx context.Context, m mapping.Mapping) (mapping.Mapping, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return mapping.Mapping{}, err
	}

	updated, err := scanMapping(tx.QueryRow(ctx, `
UPDATE sector_abn_mapping
SET consolidation_percentage = $2, end_date = $3, is_active = $4, modified_by = $5, modified_date = $6
WHERE mapping_id = $1
RETURNING `+mappingColumns+`
`,
		m.ID(),
		m.Consolidation(),
		pgNullableDate(m.EndDate()),
		m.IsActive(),
		pgNullableText(m.ModifiedBy()),
		pgNullableTimestamptz(m.ModifiedAt()),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mapping.Mapping{}, mapping.ErrNotFound
		}
		return mapping.Mapping{}, fmt.Errorf("update mapping: %w", err)
	}
	return updated, nil
}

func (r *MappingRepository) Delete(ctx context.Context, id string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
DELETE FROM sector_abn_mapping WHERE mapping_id = $1
`, strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("delete mapping: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return mapping.ErrNotFound
	}
	return nil
}

// mapMappingWriteError translates constraint violations into domain errors.
// The constraint name tells which foreign key rejected the row.
func mapMappingWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505":
		return mapping.ErrIDTaken
	case "23503":
		switch pgErr.ConstraintName {
		case "sector_abn_mapping_reporting_group_code_fkey":
			return mapping.ErrGroupMissing
		case "sector_abn_mapping_sector_code_fkey":
			return mapping.ErrSectorMissing
		case "sector_abn_mapping_abn_fkey":
			return mapping.ErrEntityMissing
		}
	}
	return err
}

func buildMappingFilters(filter *mapping.Filter) ([]string, []interface{}) {
	var where []string
	var args []interface{}

	if len(filter.GroupCodes) > 0 {
		args = append(args, upperAll(filter.GroupCodes))
		where = append(where, fmt.Sprintf("reporting_group_code = ANY($%d)", len(args)))
	}
	if len(filter.SectorCodes) > 0 {
		args = append(args, upperAll(filter.SectorCodes))
		where = append(where, fmt.Sprintf("sector_code = ANY($%d)", len(args)))
	}
	if len(filter.ABNs) > 0 {
		trimmed := make([]string, 0, len(filter.ABNs))
		for _, v := range filter.ABNs {
			trimmed = append(trimmed, strings.TrimSpace(v))
		}
		args = append(args, trimmed)
		where = append(where, fmt.Sprintf("abn = ANY($%d)", len(args)))
	}
	if filter.ActiveOnly {
		where = append(where, "is_active")
	}
	return where, args
}

func upperAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToUpper(strings.TrimSpace(v)))
	}
	return out
}
