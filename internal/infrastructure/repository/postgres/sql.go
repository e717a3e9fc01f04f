package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// uniqueViolation reports the constraint name of a unique violation.
func uniqueViolation(err error) (string, bool) {
	return violation(err, uniqueViolationCode)
}

// foreignKeyViolation reports the constraint name of a foreign key violation.
func foreignKeyViolation(err error) (string, bool) {
	return violation(err, foreignKeyViolationCode)
}

func violation(err error, code string) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr == nil {
		return "", false
	}
	if string(pqErr.Code) != code {
		return "", false
	}
	return pqErr.Constraint, true
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
