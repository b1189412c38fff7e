package errs

import (
	"net/http"
)

func newHTTPError(status int, message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message:  message,
		Status:   status,
		Override: override,
		Errors:   []FieldError{},
	}
}

func NewUnauthorizedError(message string, override bool) *HTTPError {
	return newHTTPError(http.StatusUnauthorized, message, override)
}

func NewForbiddenError(message string, override bool) *HTTPError {
	return newHTTPError(http.StatusForbidden, message, override)
}

// NewBadRequestError creates a 400 error.
//
// code replaces the default BAD_REQUEST code when non-nil, errors carries
// per-field validation failures and action an optional client hint.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	e := newHTTPError(http.StatusBadRequest, message, override)
	if code != nil {
		e.Code = *code
	}
	if errors != nil {
		e.Errors = errors
	}
	e.Action = action

	return e
}

// NewConflictError reports a uniqueness violation. The service answers
// duplicates with 400, matching the rest of the validation failures.
func NewConflictError(message string) *HTTPError {
	code := "CONFLICT"
	return NewBadRequestError(message, true, &code, nil, nil)
}

func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	e := newHTTPError(http.StatusNotFound, message, override)
	if code != nil {
		e.Code = *code
	}

	return e
}

func NewTooManyRequestsError(message string) *HTTPError {
	return newHTTPError(http.StatusTooManyRequests, message, true)
}

func NewServiceUnavailableError(message string) *HTTPError {
	return newHTTPError(http.StatusServiceUnavailable, message, true)
}

// NewInternalServerError hides the underlying cause from the client.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), false)
}

// ValidationError wraps an arbitrary validation failure in a 400.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil, nil)
}
