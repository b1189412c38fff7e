package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/starwars-api/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"modernc.org/sqlite"
)

// ErrCode reports the Code carried by err, or Other.
func ErrCode(err error) Code {
	if sqlErr := Convert(err); sqlErr != nil {
		return sqlErr.Code
	}
	return Other
}

// Convert finds a driver error in err's chain and normalizes it.
// It returns nil when err does not come from a supported driver.
func Convert(err error) *Error {
	var normalized *Error
	if errors.As(err, &normalized) {
		return normalized
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return ConvertSQLiteError(liteErr)
	}

	return nil
}

// generateErrorCode builds codes such as PERSON_ALREADY_EXISTS.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(singular(tableName))

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// people -> person, planets -> planet, favorite_people -> favorite_person.
func singular(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, "people"):
		return name[:len(name)-len("people")] + "person"
	case strings.HasSuffix(lower, "s") && len(name) > 1:
		return name[:len(name)-1]
	}
	return name
}

// getEntityName prefers a foreign-key column ("user_id" -> "User"),
// then the singular table name.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(singular(entity))
	}

	if tableName != "" {
		return humanizeText(singular(tableName))
	}

	return "record"
}

func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var constraintKeyRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation infers the column from constraint names
// of the form unique_<table>_<column> or <table>_<column>_key. SQLite
// errors already carry the column.
func extractColumnForUniqueViolation(sqlErr *Error) string {
	if sqlErr.ColumnName != "" {
		return sqlErr.ColumnName
	}

	name := sqlErr.ConstraintName
	if name == "" {
		return ""
	}

	if strings.HasPrefix(name, "unique_") {
		parts := strings.Split(name, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if m := constraintKeyRe.FindStringSubmatch(name); len(m) > 1 {
		return m[1]
	}

	return ""
}

// HandleError converts a storage error into an *errs.HTTPError.
//
// Errors that already are HTTP errors pass through unchanged. Constraint
// violations become 400s, missing rows become 404s and anything else
// becomes an opaque 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if sqlErr := Convert(err); sqlErr != nil {
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewNotFoundError(userMessage, true, &errorCode)

		case UniqueViolation:
			if column := extractColumnForUniqueViolation(sqlErr); column != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", strings.ToLower(humanizeText(column)))
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
