// Package migrate applies the embedded schema migrations for whichever
// storage driver the service is configured with. The memory driver has no
// schema, so every operation is a no-op for it.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var migrationFS embed.FS

// target maps a configured storage driver onto the goose dialect, the
// database/sql driver, and the migration directory that serve it. SQLite
// and Postgres carry separate SQL trees because their DDL differs.
type target struct {
	dialect   string
	sqlDriver string
	dir       string
}

func resolve(driver string) (*target, error) {
	switch driver {
	case "", "sqlite", "sqlite3":
		return &target{dialect: "sqlite3", sqlDriver: "sqlite", dir: "migrations/sqlite"}, nil
	case "postgres", "postgrespool", "pgx":
		return &target{dialect: "postgres", sqlDriver: "pgx", dir: "migrations/postgres"}, nil
	case "memory":
		return nil, nil
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
}

func run(driver, dsn string, fn func(db *sql.DB, dir string) error) error {
	t, err := resolve(driver)
	if err != nil || t == nil {
		return err
	}
	if dsn == "" {
		dsn = "tariffscout.db"
	}

	goose.SetBaseFS(migrationFS)
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect(t.dialect); err != nil {
		return err
	}

	db, err := sql.Open(t.sqlDriver, dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db, t.dir)
}

func Up(ctx context.Context, driver, dsn string) error {
	return run(driver, dsn, func(db *sql.DB, dir string) error {
		return goose.UpContext(ctx, db, dir)
	})
}

func Down(ctx context.Context, driver, dsn string) error {
	return run(driver, dsn, func(db *sql.DB, dir string) error {
		return goose.DownContext(ctx, db, dir)
	})
}

func Status(ctx context.Context, driver, dsn string) error {
	return run(driver, dsn, func(db *sql.DB, dir string) error {
		return goose.StatusContext(ctx, db, dir)
	})
}
