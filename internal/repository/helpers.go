package repository

import (
	"strings"

	"github.com/admin-console-api/internal/models"
)

// sanitizeQuery applies defaults to untrusted list parameters. This is input
// sanitization at the storage boundary, not controller clamping: an
// in-range-but-empty page is still returned as-is.
func sanitizeQuery(q models.ListQuery) models.ListQuery {
	if q.PageSize <= 0 {
		q.PageSize = 25
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// likePattern converts a search term into a case-insensitive containment
// pattern, escaping the LIKE metacharacters.
func likePattern(search string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(search)
	return "%" + escaped + "%"
}
