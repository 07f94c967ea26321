package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"quiz-forge/internal/domain"

	"github.com/mattn/go-sqlite3"
	"github.com/sijms/go-ora/v2/network"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	// Rebind turns ? placeholders into the driver's bindvar style.
	Rebind(query string) string
}

// requireAffected returns domain.ErrNotFound when an UPDATE or DELETE touched nothing.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// oraUniqueViolation is ORA-00001, unique constraint violated.
const oraUniqueViolation = 1

// isUniqueViolation reports whether err is a unique or primary key violation on either backend.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var oraErr *network.OracleError
	if errors.As(err, &oraErr) {
		return oraErr.ErrCode == oraUniqueViolation
	}
	return false
}
