package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"worldpav/models"
)

// Category is the user-facing class of a persistence failure.
type Category string

const (
	CategorySchemaMismatch Category = "schema_mismatch"
	CategorySchemaOutdated Category = "schema_outdated"
	CategoryOwnership      Category = "ownership"
	CategoryWorkerNotFound Category = "worker_not_found"
	CategoryConstraint     Category = "constraint_violation"
	CategoryNotFound       Category = "not_found"
	CategoryWriteFailed    Category = "write_failed"
)

// Postgres SQLSTATE codes the store distinguishes.
const (
	codeUndefinedColumn     = "42703"
	codeInsufficientPrivs   = "42501"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

var messages = map[Category]string{
	CategorySchemaMismatch: "The database is missing the entry/exit time columns.",
	CategorySchemaOutdated: "The database schema is out of date (entry/exit time columns are missing). Contact an administrator.",
	CategoryOwnership:      "This worker belongs to a company you do not have access to, so the entry cannot be saved for them.",
	CategoryWorkerNotFound: "The selected worker does not exist. Choose another worker and try again.",
	CategoryConstraint:     "The entry was rejected because its overtime hours are not a positive multiple of half an hour. This is a bug; please report it.",
	CategoryNotFound:       "Overtime entry not found.",
	CategoryWriteFailed:    "The overtime entry could not be saved. Please try again.",
}

// Error is a classified store failure. Message is safe to show to users;
// Err keeps the underlying driver error.
type Error struct {
	Category Category
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Category)
	}
	return fmt.Sprintf("%s: %v", e.Category, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same category, so the sentinels below work
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Category == e.Category
}

var (
	ErrSchemaMismatch = &Error{Category: CategorySchemaMismatch}
	ErrSchemaOutdated = &Error{Category: CategorySchemaOutdated}
	ErrOwnership      = &Error{Category: CategoryOwnership}
	ErrWorkerNotFound = &Error{Category: CategoryWorkerNotFound}
	ErrConstraint     = &Error{Category: CategoryConstraint}
	ErrNotFound       = &Error{Category: CategoryNotFound}
	ErrWriteFailed    = &Error{Category: CategoryWriteFailed}
)

func newError(c Category, err error) *Error {
	return &Error{Category: c, Message: messages[c], Err: err}
}

// UserMessage returns the text to show for err, hiding driver details.
func UserMessage(err error) string {
	var se *Error
	if !errors.As(err, &se) {
		return messages[CategoryWriteFailed]
	}
	if se.Message != "" {
		return se.Message
	}
	if msg, ok := messages[se.Category]; ok {
		return msg
	}
	return messages[CategoryWriteFailed]
}

// Classify maps a raw persistence error onto a Category.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(CategoryNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUndefinedColumn:
			if missingOptionalColumn(pgErr) {
				return newError(CategorySchemaMismatch, err)
			}
		case codeInsufficientPrivs:
			return newError(CategoryOwnership, err)
		case codeForeignKeyViolation:
			return newError(CategoryWorkerNotFound, err)
		case codeCheckViolation:
			return newError(CategoryConstraint, err)
		}
	}
	return newError(CategoryWriteFailed, err)
}

func missingOptionalColumn(pgErr *pgconn.PgError) bool {
	if pgErr.ColumnName == models.ColumnEntryTime || pgErr.ColumnName == models.ColumnExitTime {
		return true
	}
	return strings.Contains(pgErr.Message, `"`+models.ColumnEntryTime+`"`) ||
		strings.Contains(pgErr.Message, `"`+models.ColumnExitTime+`"`)
}
