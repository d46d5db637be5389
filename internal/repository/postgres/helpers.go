package postgres

import (
	"errors"
	"strings"

	"github.com/gestia/gestia/internal/types"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// orderByClause renders an ORDER BY fragment from a listing filter.
// The sort column is matched against the caller's whitelist and falls
// back to the given fragment when absent, so a bound query parameter
// can never reach the SQL text.
func orderByClause(f types.Filter, allowed map[string]bool, fallback string) string {
	if f.Sort == "" || !allowed[f.Sort] {
		return fallback
	}
	direction := "DESC"
	if strings.EqualFold(f.Order, types.OrderAsc) {
		direction = "ASC"
	}
	return f.Sort + " " + direction
}

// isUniqueViolation reports whether err is a postgres unique-constraint
// violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}
