package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeSerializationFail   = "40001"
	codeDeadlockDetected    = "40P01"
	classConnectionFailure  = "08"
	codeAdminShutdown       = "57P01"
	codeQueryCanceled       = "57014"
)

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.SQLState()
	}
	return ""
}

// IsForeignKeyViolation reports SQLSTATE 23503 anywhere in the error chain.
func IsForeignKeyViolation(err error) bool {
	return sqlState(err) == codeForeignKeyViolation
}

// IsUniqueViolation reports SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	return sqlState(err) == codeUniqueViolation
}

// IsCheckViolation reports SQLSTATE 23514.
func IsCheckViolation(err error) bool {
	return sqlState(err) == codeCheckViolation
}

// IsTransient reports failures that may succeed when the whole operation is retried:
// serialization conflicts, deadlocks, lost connections and server shutdowns.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	switch code := sqlState(err); {
	case code == codeSerializationFail, code == codeDeadlockDetected,
		code == codeAdminShutdown, code == codeQueryCanceled,
		strings.HasPrefix(code, classConnectionFailure):
		return true
	case code != "":
		return false
	}

	var connErr *pgconn.ConnectError
	return errors.Is(err, context.DeadlineExceeded) ||
		pgconn.Timeout(err) || pgconn.SafeToRetry(err) || errors.As(err, &connErr)
}
