// Package validation wires go-playground/validator into Echo and exposes the
// handful of field checks the API repeats everywhere (phone numbers, PINs,
// emails). Handlers keep their own response messages; this package only
// answers whether a value is well formed.
package validation

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// EchoValidator adapts the shared validator instance to Echo's Validator
// interface so handlers can call c.Validate on bound DTOs.
type EchoValidator struct{}

// Validate checks struct tags and converts failures into a 400 HTTPError.
func (EchoValidator) Validate(i interface{}) error {
	if err := v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// IsPhone reports whether s is a local 10-digit phone number.
func IsPhone(s string) bool {
	return v.Var(s, "required,len=10,numeric") == nil
}

// IsPIN reports whether s is a 4-digit PIN.
func IsPIN(s string) bool {
	return v.Var(s, "required,len=4,numeric") == nil
}

// IsEmail reports whether s is a plausible email address.
func IsEmail(s string) bool {
	return v.Var(s, "required,email") == nil
}
