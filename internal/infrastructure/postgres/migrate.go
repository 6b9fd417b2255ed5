package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.up.sql
var migrationsFS embed.FS

const migrationsTableSQL = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		name       TEXT        NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// Migration archivo NNNN_nombre.up.sql embebido en el binario.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// MigrationStatus estado del esquema.
type MigrationStatus struct {
	CurrentVersion int
	Pending        []Migration
}

// LoadMigrations lee las migraciones embebidas ordenadas por versión.
func LoadMigrations() ([]Migration, error) {
	return loadMigrations(migrationsFS, "migrations")
}

func loadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("leer migraciones: %w", err)
	}
	var list []Migration
	seen := map[int]string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		prefix, rest, ok := strings.Cut(strings.TrimSuffix(name, ".up.sql"), "_")
		if !ok {
			return nil, fmt.Errorf("migración con nombre inválido: %s", name)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migración con versión inválida: %s", name)
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("versión %d duplicada: %s y %s", version, prev, name)
		}
		seen[version] = name
		body, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", name, err)
		}
		list = append(list, Migration{Version: version, Name: rest, SQL: string(body)})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Version < list[j].Version })
	return list, nil
}

// Migrator aplica las migraciones embebidas, cada una en su propia transacción.
type Migrator struct {
	pool       *pgxpool.Pool
	migrations []Migration
}

// NewMigrator construye el migrador con las migraciones embebidas.
func NewMigrator(pool *pgxpool.Pool) (*Migrator, error) {
	list, err := LoadMigrations()
	if err != nil {
		return nil, err
	}
	return &Migrator{pool: pool, migrations: list}, nil
}

// Status devuelve la versión aplicada y las migraciones pendientes.
func (m *Migrator) Status(ctx context.Context) (*MigrationStatus, error) {
	if _, err := m.pool.Exec(ctx, migrationsTableSQL); err != nil {
		return nil, fmt.Errorf("crear schema_migrations: %w", err)
	}
	var current int
	if err := m.pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return nil, fmt.Errorf("versión actual: %w", err)
	}
	return &MigrationStatus{CurrentVersion: current, Pending: pendingAfter(m.migrations, current)}, nil
}

// Up aplica todas las migraciones pendientes y devuelve las aplicadas.
func (m *Migrator) Up(ctx context.Context) ([]Migration, error) {
	status, err := m.Status(ctx)
	if err != nil {
		return nil, err
	}
	var applied []Migration
	for _, mig := range status.Pending {
		err := pgx.BeginFunc(ctx, m.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, mig.SQL); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, mig.Version, mig.Name)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("migración %04d_%s: %w", mig.Version, mig.Name, err)
		}
		applied = append(applied, mig)
	}
	return applied, nil
}

func pendingAfter(list []Migration, current int) []Migration {
	var pending []Migration
	for _, m := range list {
		if m.Version > current {
			pending = append(pending, m)
		}
	}
	return pending
}
