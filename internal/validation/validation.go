// Package validation binds request data and validates it.
//
// Payload types declare their rules with validator tags and implement
// Validatable. Failures are returned as a 400 *errs.HTTPError carrying
// one FieldError per offending field, keyed by the JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/deppfellow/starwars-api/internal/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// MissingValuesMessage is returned when a required field is absent.
const MissingValuesMessage = "Missing values!"

// Validatable is implemented by request payloads.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a rule that cannot be expressed with tags.
type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Struct validates v with the shared validator. Field names in the
// resulting errors are the JSON names.
func Struct(v any) error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "param"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	})

	return validate.Struct(v)
}

// BindAndValidate binds path params and body into payload, then validates.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(c, err)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

// bindError converts Echo's bind failures. Echo reports a path or query
// value that does not parse as an *echo.HTTPError wrapping the strconv
// error, which only names the bad value; the field is recovered from the
// request parameters.
func bindError(c echo.Context, err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		field := paramName(c, numErr.Num)
		fieldErrors := []errs.FieldError{{
			Field: field,
			Error: "has an invalid value",
		}}
		return errs.NewBadRequestError("Invalid value for "+field, true, nil, fieldErrors, nil)
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return errs.NewBadRequestError(fmt.Sprint(httpErr.Message), true, nil, nil, nil)
	}

	return errs.NewBadRequestError("Invalid request", false, nil, nil, nil)
}

// paramName returns the path or query parameter holding value.
func paramName(c echo.Context, value string) string {
	for _, name := range c.ParamNames() {
		if c.Param(name) == value {
			return name
		}
	}

	for name, values := range c.QueryParams() {
		for _, v := range values {
			if v == value {
				return name
			}
		}
	}

	return "request"
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error(), []errs.FieldError{}
	}

	message := "Validation failed"
	for _, fe := range validationErrors {
		var msg string

		switch fe.Tag() {
		case "required":
			msg = "is required"
			message = MissingValuesMessage

		case "min":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fe.Param())
			}

		case "max":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", fe.Param())

		case "email":
			msg = "must be a valid email address"

		case "gt":
			msg = fmt.Sprintf("must be greater than %s", fe.Param())

		default:
			if fe.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", fe.Field(), fe.Tag(), fe.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: msg,
		})
	}

	return message, fieldErrors
}
