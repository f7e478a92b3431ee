package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/entity"
	"github.com/alphaholdings/entity-registry/pkg/composables"
)

type EntityRepository struct{}

func NewEntityRepository() entity.Repository {
	return &EntityRepository{}
}

func (r *EntityRepository) GetAll(ctx context.Context, params *entity.FindParams) ([]entity.Entity, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if params == nil {
		params = &entity.FindParams{}
	}

	where, args := buildEntityFilters(params)
	query := `SELECT ` + entityColumns + ` FROM legal_entities`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY entity_name, abn`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Entity, 0)
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EntityRepository) GetByABN(ctx context.Context, abn string) (entity.Entity, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return entity.Entity{}, err
	}

	e, err := scanEntity(tx.QueryRow(ctx, `
SELECT `+entityColumns+`
FROM legal_entities
WHERE abn = $1
`, entity.NormalizeABN(abn)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Entity{}, entity.ErrNotFound
		}
		return entity.Entity{}, err
	}
	return e, nil
}

func (r *EntityRepository) CountChildren(ctx context.Context, abn string) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.QueryRow(ctx, `
SELECT COUNT(*) FROM legal_entities WHERE parent_abn = $1
`, entity.NormalizeABN(abn)).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *EntityRepository) Create(ctx context.Context, e entity.Entity) (entity.Entity, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return entity.Entity{}, err
	}

	created, err := scanEntity(tx.QueryRow(ctx, `
INSERT INTO legal_entities (abn, entity_name, parent_abn, entity_type, status, effective_date, end_date, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING `+entityColumns+`
`,
		e.ABN(),
		e.Name(),
		pgNullableText(e.ParentABN()),
		string(e.Kind()),
		string(e.Status()),
		e.EffectiveDate(),
		pgNullableDate(e.EndDate()),
		pgNullableText(e.CreatedBy()),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return entity.Entity{}, entity.ErrABNTaken
			case "23503":
				return entity.Entity{}, entity.ErrParentMissing
			}
		}
		return entity.Entity{}, fmt.Errorf("create entity: %w", err)
	}
	return created, nil
}

// Update writes the mutable attributes. The ABN and parent link are fixed
// at creation time and stay untouched; a re-parent is a delete plus insert.
func (r *EntityRepository) Update(ctx context.Context, e entity.Entity) (entity.Entity, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return entity.Entity{}, err
	}

	updated, err := scanEntity(tx.QueryRow(ctx, `
UPDATE legal_entities
SET entity_name = $2, entity_type = $3, status = $4, effective_date = $5, end_date = $6, modified_by = $7, modified_date = $8
WHERE abn = $1
RETURNING `+entityColumns+`
`,
		e.ABN(),
		e.Name(),
		string(e.Kind()),
		string(e.Status()),
		e.EffectiveDate(),
		pgNullableDate(e.EndDate()),
		pgNullableText(e.ModifiedBy()),
		pgNullableTimestamptz(e.ModifiedAt()),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Entity{}, entity.ErrNotFound
		}
		return entity.Entity{}, fmt.Errorf("update entity: %w", err)
	}
	return updated, nil
}

func (r *EntityRepository) Delete(ctx context.Context, abn string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM legal_entities WHERE abn = $1`, entity.NormalizeABN(abn))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return entity.ErrReferenced
		}
		return fmt.Errorf("delete entity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func buildEntityFilters(params *entity.FindParams) ([]string, []interface{}) {
	var where []string
	var args []interface{}

	if len(params.Statuses) > 0 {
		statuses := make([]string, 0, len(params.Statuses))
		for _, s := range params.Statuses {
			statuses = append(statuses, string(s))
		}
		args = append(args, statuses)
		where = append(where, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if len(params.Kinds) > 0 {
		kinds := make([]string, 0, len(params.Kinds))
		for _, k := range params.Kinds {
			kinds = append(kinds, string(k))
		}
		args = append(args, kinds)
		where = append(where, fmt.Sprintf("entity_type = ANY($%d)", len(args)))
	}
	if params.ParentABN != nil {
		if *params.ParentABN == "" {
			where = append(where, "parent_abn IS NULL")
		} else {
			args = append(args, entity.NormalizeABN(*params.ParentABN))
			where = append(where, fmt.Sprintf("parent_abn = $%d", len(args)))
		}
	}
	return where, args
}
