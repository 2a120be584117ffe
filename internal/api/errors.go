package api

import (
	"errors"
	"fmt"

	"github.com/debemdeboas/site-admin/internal/model"
)

// ErrTransport covers timeouts, 5xx responses and malformed envelopes. Not
// field-addressable; the caller surfaces it once and keeps its state.
var ErrTransport = errors.New("transport failure")

// ErrNotFound marks a mutation against an id the backend no longer knows.
// Controllers treat it as a transport-class error and let the next list
// refresh drop the stale row.
var ErrNotFound = errors.New("resource not found")

// ValidationError is a rejected submission carrying field-level detail. The
// transport succeeded; the draft stays open so the operator can correct it.
type ValidationError struct {
	Fields model.ValidationErrorMap
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("backend rejected submission (%d field errors)", len(e.Fields))
}

func (e *ValidationError) FieldErrors() model.ValidationErrorMap {
	return e.Fields
}

// AsValidation unwraps a ValidationError if err carries one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
