package application

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// MigrationManager applies the versioned schema registered by modules.
// Schemas are embedded SQL directories; versions run in order across all
// registered filesystems.
type MigrationManager interface {
	RegisterSchema(fsys fs.FS)
	Up(ctx context.Context) error
	Down(ctx context.Context) error
	Redo(ctx context.Context) error
	Status(ctx context.Context) ([]*goose.MigrationStatus, error)
}

func NewMigrationManager(pool *pgxpool.Pool) MigrationManager {
	return &migrationManager{pool: pool}
}

type migrationManager struct {
	pool    *pgxpool.Pool
	schemas []fs.FS

	mu sync.Mutex
	db *sql.DB
}

func (m *migrationManager) RegisterSchema(fsys fs.FS) {
	m.schemas = append(m.schemas, fsys)
}

// openDB opens a database/sql handle for goose on the pool's DSN. goose
// drives plain *sql.DB, so pq serves here while pgx serves the application.
func (m *migrationManager) openDB() (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db != nil {
		return m.db, nil
	}
	if m.pool == nil {
		return nil, errors.New("migrations: no database pool")
	}
	db, err := sql.Open("postgres", m.pool.Config().ConnString())
	if err != nil {
		return nil, err
	}
	m.db = db
	return db, nil
}

func (m *migrationManager) providers() ([]*goose.Provider, error) {
	if len(m.schemas) == 0 {
		return nil, errors.New("migrations: no schema registered")
	}
	db, err := m.openDB()
	if err != nil {
		return nil, err
	}
	providers := make([]*goose.Provider, 0, len(m.schemas))
	for _, fsys := range m.schemas {
		p, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, nil
}

func (m *migrationManager) Up(ctx context.Context) error {
	providers, err := m.providers()
	if err != nil {
		return err
	}
	for _, p := range providers {
		if _, err := p.Up(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (m *migrationManager) Down(ctx context.Context) error {
	providers, err := m.providers()
	if err != nil {
		return err
	}
	for _, p := range providers {
		if _, err := p.Down(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (m *migrationManager) Redo(ctx context.Context) error {
	providers, err := m.providers()
	if err != nil {
		return err
	}
	for _, p := range providers {
		if _, err := p.Down(ctx); err != nil {
			return err
		}
		if _, err := p.Up(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (m *migrationManager) Status(ctx context.Context) ([]*goose.MigrationStatus, error) {
	providers, err := m.providers()
	if err != nil {
		return nil, err
	}
	var out []*goose.MigrationStatus
	for _, p := range providers {
		statuses, err := p.Status(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, statuses...)
	}
	return out, nil
}
