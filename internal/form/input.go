// Package form owns the raw, possibly incomplete user input for one
// prediction form. An Input is a plain value object: it carries no
// validity invariant of its own and may be partially filled or out of
// range at any time before validation.
package form

import (
	"github.com/ppiankov/lifespan/internal/schema"
)

// Input maps field keys to raw text values plus the status selection.
// One instance per active session; all mutation happens from the
// session's own goroutine.
type Input struct {
	values map[schema.FieldKey]string
	status schema.Status
}

// New creates an empty form with status Developing.
func New() *Input {
	return &Input{
		values: make(map[schema.FieldKey]string, schema.Count()),
		status: schema.StatusDeveloping,
	}
}

// Set stores a raw text value for a field. Unknown keys are stored
// too; validation only ever consults registry keys.
func (in *Input) Set(key schema.FieldKey, raw string) {
	in.values[key] = raw
}

// Value returns the raw text for a field (empty string if unset).
func (in *Input) Value(key schema.FieldKey) string {
	return in.values[key]
}

// SetStatus records the status selection. Values outside {0, 1} are
// coerced to Developing; the input mechanism constrains the domain,
// not the validator.
func (in *Input) SetStatus(s schema.Status) {
	if !s.Valid() {
		s = schema.StatusDeveloping
	}
	in.status = s
}

// Status returns the current status selection.
func (in *Input) Status() schema.Status {
	return in.status
}

// Reset clears all field values and resets status to Developing.
func (in *Input) Reset() {
	in.values = make(map[schema.FieldKey]string, schema.Count())
	in.status = schema.StatusDeveloping
}

// FillExample overwrites the form wholesale with the example dataset.
func (in *Input) FillExample() {
	in.Reset()
	for key, raw := range schema.Example {
		in.values[key] = raw
	}
	in.status = schema.ExampleStatus
}

// Snapshot returns an independent copy, safe to validate while the
// original keeps being edited.
func (in *Input) Snapshot() *Input {
	cp := New()
	for k, v := range in.values {
		cp.values[k] = v
	}
	cp.status = in.status
	return cp
}
