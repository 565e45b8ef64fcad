package dbutil

import (
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var mysqlLimitRegex = regexp.MustCompile(`(?i)LIMIT\s+\?\s*,\s*\?`)

// Finalize rewrites a gendry-built query for postgres: the MySQL
// LIMIT offset,count form becomes LIMIT count OFFSET offset and ?
// placeholders become $N.
func Finalize(query string, args []interface{}) (string, []interface{}) {
	if loc := mysqlLimitRegex.FindStringIndex(query); loc != nil {
		seen := strings.Count(query[:loc[0]], "?")
		if seen+1 < len(args) {
			args[seen], args[seen+1] = args[seen+1], args[seen]
			query = query[:loc[0]] + "LIMIT ? OFFSET ?" + query[loc[1]:]
		}
	}
	return sqlx.Rebind(sqlx.DOLLAR, query), args
}

// IsConflict reports a postgres unique violation (SQLSTATE 23505).
func IsConflict(err error) bool {
	pgErr, ok := err.(*pq.Error)
	return ok && pgErr.Code == "23505"
}
