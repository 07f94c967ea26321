package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"quiz-forge/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrate applies the migrations for driver found under baseDir/<dialect>.
func Migrate(db *sql.DB, driver, baseDir string) error {
	switch driver {
	case DriverSQLite:
		return MigrateSQLite(db, filepath.Join(baseDir, "sqlite"))
	case DriverOracle:
		return RunMigrations(db, filepath.Join(baseDir, "oracle"))
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
}

// MigrateSQLite runs the pending up migrations with golang-migrate.
func MigrateSQLite(db *sql.DB, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("could not resolve migrations directory: %w", err)
	}
	instance, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("could not create sqlite migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+filepath.ToSlash(abs), "sqlite3", instance)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	version, dirty, _ := m.Version()
	logger.Get().Info("Migrations completed successfully",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty))
	return nil
}

// RunMigrations executes every *.up.sql file in dir that has not been applied yet.
// Statements are separated by a semicolon at the end of a line; applied file
// names are recorded in schema_migrations.
func RunMigrations(db *sql.DB, dir string) error {
	if err := ensureMigrationsTable(db); err != nil {
		return err
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		if strings.HasSuffix(f.Name(), ".up.sql") {
			names = append(names, f.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var applied int
		if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE version = :1`, name).Scan(&applied); err != nil {
			return fmt.Errorf("could not check migration %s: %w", name, err)
		}
		if applied > 0 {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}
		for i, stmt := range SplitStatements(string(content)) {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("could not execute statement %d of migration %s: %w", i+1, name, err)
			}
		}
		if _, err := db.Exec(`INSERT INTO schema_migrations (version) VALUES (:1)`, name); err != nil {
			return fmt.Errorf("could not record migration %s: %w", name, err)
		}
		logger.Get().Info("Executed migration", zap.String("file", name))
	}

	logger.Get().Info("Migrations completed successfully")
	return nil
}

func ensureMigrationsTable(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE schema_migrations (version VARCHAR2(255) PRIMARY KEY)`)
	if err != nil && !strings.Contains(err.Error(), "ORA-00955") {
		return fmt.Errorf("could not create schema_migrations: %w", err)
	}
	return nil
}

// SplitStatements breaks a SQL script into statements ending with ';' at end of line.
// Lines starting with "--" are dropped.
func SplitStatements(script string) []string {
	var (
		out []string
		cur strings.Builder
	)
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		if cur.Len() > 0 {
			cur.WriteByte('\n')
		}
		if strings.HasSuffix(trimmed, ";") {
			cur.WriteString(strings.TrimSuffix(strings.TrimRight(line, " \t\r"), ";"))
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteString(strings.TrimRight(line, "\r"))
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		out = append(out, rest)
	}
	return out
}
