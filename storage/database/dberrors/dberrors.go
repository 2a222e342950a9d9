// Package dberrors maps engine specific constraint errors to something the repositories can act on.
package dberrors

import (
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const pgUniqueViolation = "23505"

// UniqueViolation reports whether err is a unique constraint violation and, when the engine tells, the
// offending column.
func UniqueViolation(err error) (column string, ok bool) {
	switch e := errors.Cause(err).(type) {
	case *pq.Error:
		if e.Code == pgUniqueViolation {
			return pgColumn(e.Table, e.Constraint), true
		}
	case *sqlite.Error:
		if code := e.Code(); code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return sqliteColumn(e.Error()), true
		}
	}
	return "", false
}

// pgColumn extracts the column of a default constraint name: <table>_<column>_key.
func pgColumn(table, constraint string) string {
	return strings.TrimSuffix(strings.TrimPrefix(constraint, table+"_"), "_key")
}

// sqliteColumn extracts the first column of "UNIQUE constraint failed: <table>.<column>[, ...]".
func sqliteColumn(msg string) string {
	const marker = "constraint failed: "
	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return ""
	}
	cols := msg[i+len(marker):]
	if j := strings.IndexAny(cols, ", ("); j >= 0 {
		cols = cols[:j]
	}
	if j := strings.LastIndex(cols, "."); j >= 0 {
		cols = cols[j+1:]
	}
	return cols
}
