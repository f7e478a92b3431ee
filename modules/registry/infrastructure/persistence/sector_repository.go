package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/sector"
	"github.com/alphaholdings/entity-registry/pkg/composables"
)

type SectorRepository struct{}

func NewSectorRepository() sector.Repository {
	return &SectorRepository{}
}

func (r *SectorRepository) GetAll(ctx context.Context, activeOnly bool) ([]sector.Sector, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + sectorColumns + ` FROM sector_codes`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY sector_code`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]sector.Sector, 0)
	for rows.Next() {
		s, err := scanSector(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SectorRepository) GetByCode(ctx context.Context, code string) (sector.Sector, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return sector.Sector{}, err
	}

	s, err := scanSector(tx.QueryRow(ctx, `
SELECT `+sectorColumns+`
FROM sector_codes
WHERE sector_code = $1
`, sector.NormalizeCode(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sector.Sector{}, sector.ErrNotFound
		}
		return sector.Sector{}, err
	}
	return s, nil
}

func (r *SectorRepository) Create(ctx context.Context, s sector.Sector) (sector.Sector, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return sector.Sector{}, err
	}

	created, err := scanSector(tx.QueryRow(ctx, `
INSERT INTO sector_codes (sector_code, sector_name, sector_description, is_active)
VALUES ($1, $2, $3, $4)
RETURNING `+sectorColumns+`
`,
		s.Code(),
		s.Name(),
		pgNullableText(s.Description()),
		s.IsActive(),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sector.Sector{}, sector.ErrCodeTaken
		}
		return sector.Sector{}, fmt.Errorf("create sector code: %w", err)
	}
	return created, nil
}

func (r *SectorRepository) Update(ctx context.Context, s sector.Sector) (sector.Sector, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return sector.Sector{}, err
	}

	updated, err := scanSector(tx.QueryRow(ctx, `
UPDATE sector_codes
SET sector_name = $2, sector_description = $3, is_active = $4
WHERE sector_code = $1
RETURNING `+sectorColumns+`
`,
		s.Code(),
		s.Name(),
		pgNullableText(s.Description()),
		s.IsActive(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sector.Sector{}, sector.ErrNotFound
		}
		return sector.Sector{}, fmt.Errorf("update sector code: %w", err)
	}
	return updated, nil
}

func (r *SectorRepository) Delete(ctx context.Context, code string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
DELETE FROM sector_codes WHERE sector_code = $1
`, sector.NormalizeCode(code))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return sector.ErrReferenced
		}
		return fmt.Errorf("delete sector code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sector.ErrNotFound
	}
	return nil
}
