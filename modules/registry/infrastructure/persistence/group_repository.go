package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/group"
	"github.com/alphaholdings/entity-registry/pkg/composables"
)

type GroupRepository struct{}

func NewGroupRepository() group.Repository {
	return &GroupRepository{}
}

func (r *GroupRepository) GetAll(ctx context.Context, activeOnly bool) ([]group.Group, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + groupColumns + ` FROM reporting_groups`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY reporting_group_code`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]group.Group, 0)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *GroupRepository) GetByCode(ctx context.Context, code string) (group.Group, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return group.Group{}, err
	}

	g, err := scanGroup(tx.QueryRow(ctx, `
SELECT `+groupColumns+`
FROM reporting_groups
WHERE reporting_group_code = $1
`, group.NormalizeCode(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return group.Group{}, group.ErrNotFound
		}
		return group.Group{}, err
	}
	return g, nil
}

func (r *GroupRepository) Create(ctx context.Context, g group.Group) (group.Group, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return group.Group{}, err
	}

	created, err := scanGroup(tx.QueryRow(ctx, `
INSERT INTO reporting_groups (reporting_group_code, reporting_group_name, description, is_active)
VALUES ($1, $2, $3, $4)
RETURNING `+groupColumns+`
`,
		g.Code(),
		g.Name(),
		pgNullableText(g.Description()),
		g.IsActive(),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return group.Group{}, group.ErrCodeTaken
		}
		return group.Group{}, fmt.Errorf("create reporting group: %w", err)
	}
	return created, nil
}

func (r *GroupRepository) Update(ctx context.Context, g group.Group) (group.Group, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return group.Group{}, err
	}

	updated, err := scanGroup(tx.QueryRow(ctx, `
UPDATE reporting_groups
SET reporting_group_name = $2, description = $3, is_active = $4
WHERE reporting_group_code = $1
RETURNING `+groupColumns+`
`,
		g.Code(),
		g.Name(),
		pgNullableText(g.Description()),
		g.IsActive(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return group.Group{}, group.ErrNotFound
		}
		return group.Group{}, fmt.Errorf("update reporting group: %w", err)
	}
	return updated, nil
}

func (r *GroupRepository) Delete(ctx context.Context, code string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
DELETE FROM reporting_groups WHERE reporting_group_code = $1
`, group.NormalizeCode(code))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return group.ErrReferenced
		}
		return fmt.Errorf("delete reporting group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return group.ErrNotFound
	}
	return nil
}
