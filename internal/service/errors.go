package service

import (
	"errors"
	"fmt"
	"strings"

	"go-parts-inventory/pkg/validator"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrReferentialConflict = errors.New("referential conflict")
	ErrValidation          = errors.New("validation failed")
)

// ValidationError lists every rejected field of a request
type ValidationError struct {
	Fields []*validator.ErrorResponse
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.String())
	}
	return fmt.Sprintf("Validation failed: %s", strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validationError(fields []*validator.ErrorResponse) error {
	return &ValidationError{Fields: fields}
}

func notFound(entity string, id fmt.Stringer) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
}
