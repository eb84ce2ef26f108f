package core

import "github.com/pkg/errors"

// FieldError reports a problem with a single request field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries field-level errors for a rejected filter or
// payload; the API error handler renders Fields as a 400 body.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

type shutdown struct {
	message string
}

// NewShutdownError returns an error signalling the app cannot keep serving,
// e.g. a dead database pool; the server shuts down gracefully when it sees one.
func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
