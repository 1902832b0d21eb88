package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	apperrors "github.com/allisson/stampd/internal/errors"
)

// PostgreSQL SQLSTATE codes and classes handled explicitly.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgTooManyConnections   = "53300"
	pgAdminShutdown        = "57P01"
	pgConnectionException  = "08"
)

// MySQL server error numbers handled explicitly.
const (
	mysqlDuplicateEntry     = 1062
	mysqlTooManyConnections = 1040
	mysqlLockWaitTimeout    = 1205
	mysqlDeadlock           = 1213
)

// IsUniqueViolation reports whether err is a duplicate key error from PostgreSQL or MySQL.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if apperrors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}

	var mysqlErr *mysql.MySQLError
	if apperrors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}

	return false
}

// IsTransient reports whether err is worth retrying: timeouts, broken connections,
// serialization failures and deadlocks.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if apperrors.Is(err, apperrors.ErrTransient) ||
		apperrors.Is(err, context.DeadlineExceeded) ||
		apperrors.Is(err, driver.ErrBadConn) ||
		apperrors.Is(err, sql.ErrConnDone) ||
		apperrors.Is(err, mysql.ErrInvalidConn) {
		return true
	}

	var netErr net.Error
	if apperrors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var pqErr *pq.Error
	if apperrors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgSerializationFailure, pgDeadlockDetected, pgTooManyConnections, pgAdminShutdown:
			return true
		}
		return string(pqErr.Code.Class()) == pgConnectionException
	}

	var mysqlErr *mysql.MySQLError
	if apperrors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlTooManyConnections, mysqlLockWaitTimeout, mysqlDeadlock:
			return true
		}
	}

	return false
}

// ClassifyError wraps a store error with message, tagging it as ErrTransient when a
// retry may succeed. Caller cancellation is passed through untouched.
func ClassifyError(err error, message string) error {
	if err == nil {
		return nil
	}

	if apperrors.Is(err, context.Canceled) {
		return err
	}

	if IsTransient(err) && !apperrors.Is(err, apperrors.ErrTransient) {
		return fmt.Errorf("%s: %w: %w", message, apperrors.ErrTransient, err)
	}

	return apperrors.Wrap(err, message)
}
