// Package validate implements the pre-flight field validation engine.
// Validation is deterministic and side-effect free: it walks the field
// registry in canonical order, short-circuits on the first failure, and
// never performs network I/O.
package validate

import (
	"math"
	"strconv"
	"strings"

	"github.com/ppiankov/lifespan/internal/form"
	"github.com/ppiankov/lifespan/internal/model"
	"github.com/ppiankov/lifespan/internal/schema"
)

// Validate checks every registry field of the form, in registry order.
// For each field: presence first, then numeric parse, then inclusive
// range. The first failing field is returned; later fields are not
// inspected. On success all parsed values plus the status selection are
// folded into an immutable request.
func Validate(in *form.Input) (*model.ValidatedRequest, *model.ValidationError) {
	values := make(map[schema.FieldKey]float64, schema.Count())

	for _, field := range schema.Fields() {
		raw := strings.TrimSpace(in.Value(field.Key))
		if raw == "" {
			return nil, &model.ValidationError{Kind: model.ErrorMissingField, Field: field}
		}

		value, ok := parseNumber(raw)
		if !ok {
			return nil, &model.ValidationError{Kind: model.ErrorInvalidFormat, Field: field}
		}

		if value < field.Min || value > field.Max {
			return nil, &model.ValidationError{Kind: model.ErrorOutOfRange, Field: field}
		}

		values[field.Key] = value
	}

	// Status is constrained to {0,1} by the input mechanism and is not
	// re-validated numerically.
	return &model.ValidatedRequest{Values: values, Status: in.Status()}, nil
}

// parseNumber parses a base-10 float. NaN and infinities are rejected:
// ParseFloat accepts "nan"/"inf" spellings, and NaN would otherwise
// slip through the range comparisons.
func parseNumber(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
