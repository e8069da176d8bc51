package postgres

import (
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osmunda/cardbot/internal/domain"
)

// Postgres error codes this layer reacts to.
const (
	pgCodeUniqueViolation  = "23505"
	pgCodeSerialization    = "40001"
	pgCodeDeadlockDetected = "40P01"
	pgCodeAdminShutdown    = "57P01"
	pgClassConnection      = "08"
)

// classifyError tags transient storage failures with
// domain.ErrStorageUnavailable so the retry wrapper at the operation
// boundary can distinguish them from business rejections.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if isTransientCode(pgErr.Code) {
			return fmt.Errorf("postgres %s: %w", pgErr.Code, domain.ErrStorageUnavailable)
		}
		return err
	}

	var netErr net.Error
	if pgconn.SafeToRetry(err) || errors.As(err, &netErr) {
		return fmt.Errorf("%v: %w", err, domain.ErrStorageUnavailable)
	}

	return err
}

func isTransientCode(code string) bool {
	if len(code) >= 2 && code[:2] == pgClassConnection {
		return true
	}
	switch code {
	case pgCodeSerialization, pgCodeDeadlockDetected, pgCodeAdminShutdown:
		return true
	}
	return false
}

// isUniqueViolation reports whether err is a unique-constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation
}
