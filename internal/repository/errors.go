package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrProfileNotFound is returned when a user's role-specific profile row is missing.
var ErrProfileNotFound = errors.New("profile not found")

// IsUniqueViolation reports whether err is a PostgreSQL unique_violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
