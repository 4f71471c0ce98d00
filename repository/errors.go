package repository

import (
	"fmt"

	"github.com/inkwellhq/inkwell/store"
)

// Errors returned by Repository operations. Absence on get and delete is not an error.
var (
	ErrNotFound    = store.ErrNotFound
	ErrDuplicateID = store.ErrDuplicateID
	ErrUnavailable = store.ErrUnavailable
)

// ValidationError reports the first required draft field that is empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}
