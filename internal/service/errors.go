// Package service holds the application logic behind the HTTP handlers:
// account registration and login, certificate request lifecycle, and the
// side effects (events, cache invalidation, metrics) that go with them.
package service

import (
	"errors"

	"github.com/iliyamo/docutrack/internal/validate"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong
// password. Both cases return the same error.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError reports client input that cannot be accepted. Handlers
// map it to 400 with Msg as the response message.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// asValidation converts field validation failures into a ValidationError
// and passes every other error through.
func asValidation(err error) error {
	var ve *validate.Error
	if errors.As(err, &ve) {
		return invalid(ve.Error())
	}
	return err
}
