package database

import (
	"fmt"
	"strings"

	"quiz-forge/internal/config"
	"quiz-forge/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	_ "github.com/sijms/go-ora/v2"  // Oracle driver
	"go.uber.org/zap"
)

const (
	DriverOracle = "oracle"
	DriverSQLite = "sqlite3"
)

func init() {
	// go-ora registers itself as "oracle", which sqlx does not know; bind positionally as :argN.
	sqlx.BindDriver(DriverOracle, sqlx.NAMED)
}

// Open connects to the configured database and verifies the connection.
func Open(cfg *config.Config) (*sqlx.DB, error) {
	switch cfg.DB.Driver {
	case DriverOracle:
		return NewSQLXOracleDB(cfg.GetDSN())
	case DriverSQLite:
		return NewSQLXSQLiteDB(cfg.GetDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
}

func NewSQLXOracleDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(DriverOracle, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Oracle database: %w", err)
	}
	logger.Get().Info("Successfully connected to Oracle database")
	return db, nil
}

// NewSQLXSQLiteDB opens a SQLite file with foreign keys on and a busy timeout.
func NewSQLXSQLiteDB(path string) (*sqlx.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on&_busy_timeout=5000"
	}
	db, err := sqlx.Connect(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}
	// a single writer avoids "database is locked" under concurrent transactions
	db.SetMaxOpenConns(1)
	logger.Get().Info("Successfully connected to SQLite database", zap.String("path", path))
	return db, nil
}
