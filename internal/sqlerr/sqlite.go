package sqlerr

import (
	"regexp"
	"strconv"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var sqliteCodes = map[int]Code{
	sqlite3.SQLITE_CONSTRAINT_UNIQUE:     UniqueViolation,
	sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY: UniqueViolation,
	sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY: ForeignKeyViolation,
	sqlite3.SQLITE_CONSTRAINT_NOTNULL:    NotNullViolation,
	sqlite3.SQLITE_CONSTRAINT_CHECK:      CheckViolation,
}

// "UNIQUE constraint failed: users.email"
var sqliteColumnRe = regexp.MustCompile(`constraint failed: (\w+)\.(\w+)`)

// MapSQLiteCode maps an extended SQLite result code to a Code.
func MapSQLiteCode(code int) Code {
	if c, ok := sqliteCodes[code]; ok {
		return c
	}
	return Other
}

// ConvertSQLiteError converts a modernc SQLite error into *Error. SQLite
// only reports table and column through the message text, so they are
// parsed from it when present.
func ConvertSQLiteError(src *sqlite.Error) *Error {
	out := &Error{
		Code:         MapSQLiteCode(src.Code()),
		Severity:     SeverityError,
		DatabaseCode: strconv.Itoa(src.Code()),
		Message:      src.Error(),
		driverErr:    src,
	}

	if m := sqliteColumnRe.FindStringSubmatch(out.Message); len(m) == 3 {
		out.TableName = m[1]
		out.ColumnName = m[2]
	}

	return out
}
