package utils

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsPGUniqueViolation reports whether error is a PostgreSQL unique
// constraint violation (code 23505).
func IsPGUniqueViolation(err error) bool {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == "23505"
	}
	return false
}

// IsPGCheckViolation reports whether error is a PostgreSQL check
// constraint violation (code 23514), e.g. a negative value or unknown
// status slipping past request validation.
func IsPGCheckViolation(err error) bool {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == "23514"
	}
	return false
}
