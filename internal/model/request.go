package model

import (
	"fmt"

	"github.com/ppiankov/lifespan/internal/schema"
)

// ValidatedRequest holds the parsed, range-checked values for all
// numeric fields plus the status selection. It exists only between a
// successful validation and submission; treat it as immutable.
type ValidatedRequest struct {
	Values map[schema.FieldKey]float64
	Status schema.Status
}

// Value returns the parsed value for a field key.
func (r *ValidatedRequest) Value(key schema.FieldKey) float64 {
	return r.Values[key]
}

// ValidationError is the first failure found while validating a form,
// in registry order. Exactly one failure is reported per validation
// call; it never aggregates.
type ValidationError struct {
	Kind  ErrorKind
	Field schema.FieldDefinition
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ErrorMissingField:
		return fmt.Sprintf("%s is required", e.Field.Label)
	case ErrorInvalidFormat:
		return fmt.Sprintf("%s must be a number", e.Field.Label)
	case ErrorOutOfRange:
		return fmt.Sprintf("%s must be between %g and %g", e.Field.Label, e.Field.Min, e.Field.Max)
	default:
		return fmt.Sprintf("%s is invalid", e.Field.Label)
	}
}

// Outcome folds the validation error into the submission outcome type.
func (e *ValidationError) Outcome() Outcome {
	return Failed(e.Kind, e.Error())
}
