package postgres

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	ierr "github.com/inventorypos/salesdesk/internal/errors"
)

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration is one up migration as shipped in the binary
type Migration struct {
	Version string
	SQL     string
}

// Migrations returns the embedded up migrations in version order
func Migrations() ([]Migration, error) {
	names, err := fs.Glob(migrationFiles, migrationsDir+"/*.up.sql")
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrSystem)
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		body, err := migrationFiles.ReadFile(name)
		if err != nil {
			return nil, ierr.WithError(err).Mark(ierr.ErrSystem)
		}
		version := strings.TrimSuffix(strings.TrimPrefix(name, migrationsDir+"/"), ".up.sql")
		migrations = append(migrations, Migration{
			Version: version,
			SQL:     string(body),
		})
	}
	return migrations, nil
}

// Migrate brings the schema up to date with golang-migrate. With dryRun set
// every up migration is written to w and the database is not touched.
func (db *DB) Migrate(dryRun bool, w io.Writer) error {
	if dryRun {
		migrations, err := Migrations()
		if err != nil {
			return err
		}
		for _, m := range migrations {
			fmt.Fprintf(w, "-- %s\n%s\n", m.Version, m.SQL)
		}
		return nil
	}

	sub, err := fs.Sub(migrationFiles, migrationsDir)
	if err != nil {
		return ierr.WithError(err).WithHint("Failed to open migrations").Mark(ierr.ErrSystem)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return ierr.WithError(err).WithHint("Failed to read migrations").Mark(ierr.ErrSystem)
	}

	driver, err := migratepg.WithInstance(db.DB.DB, &migratepg.Config{})
	if err != nil {
		return txError(err, "failed to create migration driver")
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return txError(err, "failed to create migrator")
	}
	// migrator.Close would close the shared *sql.DB

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			db.logger.Info("schema already up to date")
			return nil
		}
		return txError(err, "failed to apply migrations")
	}

	version, dirty, err := migrator.Version()
	if err == nil {
		db.logger.Infow("applied migrations", "version", version, "dirty", dirty)
	}
	return nil
}
