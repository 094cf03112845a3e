package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/migrations"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/users"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories sharing one
// connection pool.
type PostgresRepositoryManager struct {
	db    *sqlx.DB
	users *users.PostgresRepository
	tasks *tasks.PostgresRepository
}

// NewPostgresRepositoryManager binds the repositories to db. The pool is
// owned by the manager from here on and released by Close.
func NewPostgresRepositoryManager(db *sqlx.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{
		db:    db,
		users: users.NewPostgresRepository(db),
		tasks: tasks.NewPostgresRepository(db),
	}
}

func (m *PostgresRepositoryManager) Mode() Mode              { return ModeDatabase }
func (m *PostgresRepositoryManager) Users() users.Repository { return m.users }
func (m *PostgresRepositoryManager) Tasks() tasks.Repository { return m.tasks }

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations. Every migration is
// create-if-absent, so running it against an existing schema is a no-op.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db.DB, "."); err != nil {
		return err
	}
	return nil
}

// Info lists the non-template databases and the tables of the public schema.
func (m *PostgresRepositoryManager) Info(ctx context.Context) (*models.StoreInfo, error) {
	info := &models.StoreInfo{Databases: []string{}, Tables: []string{}, Status: "PostgreSQL connected"}

	if err := m.db.SelectContext(ctx, &info.Databases,
		`SELECT datname FROM pg_database WHERE NOT datistemplate ORDER BY datname`); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := m.db.SelectContext(ctx, &info.Tables,
		`SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name`); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return info, nil
}

type columnRow struct {
	Field       string         `db:"field"`
	Type        string         `db:"type"`
	Nullable    string         `db:"nullable"`
	Constraints string         `db:"constraints"`
	Default     sql.NullString `db:"default_value"`
}

// Describe reads the column list from information_schema and renders it in
// the Field/Type/Null/Key/Default/Extra shape.
func (m *PostgresRepositoryManager) Describe(ctx context.Context, table string) (*models.TableDescription, error) {
	if err := checkDescribable(table); err != nil {
		return nil, err
	}

	query, args, err := sq.Select(
		"c.column_name AS field",
		"c.data_type AS type",
		"c.is_nullable AS nullable",
		`COALESCE((SELECT string_agg(tc.constraint_type, ',')
			FROM information_schema.key_column_usage kcu
			JOIN information_schema.table_constraints tc
			  ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
			WHERE kcu.table_schema = c.table_schema AND kcu.table_name = c.table_name AND kcu.column_name = c.column_name), '') AS constraints`,
		"c.column_default AS default_value",
	).
		From("information_schema.columns c").
		Where(sq.Eq{"c.table_schema": "public", "c.table_name": table}).
		OrderBy("c.ordinal_position").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build describe: %w", err)
	}

	var rows []columnRow
	if err := m.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if len(rows) == 0 {
		return nil, common.ErrNotFound
	}

	desc := &models.TableDescription{Table: table, Columns: make([]models.Column, 0, len(rows))}
	for _, r := range rows {
		desc.Columns = append(desc.Columns, r.column())
	}
	return desc, nil
}

func (r columnRow) column() models.Column {
	c := models.Column{Field: r.Field, Type: r.Type, Null: r.Nullable}

	switch {
	case strings.Contains(r.Constraints, "PRIMARY KEY"):
		c.Key = "PRI"
	case strings.Contains(r.Constraints, "UNIQUE"):
		c.Key = "UNI"
	case strings.Contains(r.Constraints, "FOREIGN KEY"):
		c.Key = "MUL"
	}

	if r.Default.Valid {
		d := r.Default.String
		c.Default = &d
		if strings.HasPrefix(d, "nextval(") {
			c.Extra = "auto_increment"
		}
	}
	return c
}
