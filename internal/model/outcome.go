package model

// ErrorKind classifies why a submission attempt did not produce a
// prediction. The first three kinds are resolved locally and never
// reach the network; the rest are normalized at the client boundary.
type ErrorKind string

const (
	ErrorNone           ErrorKind = ""                // Success
	ErrorMissingField   ErrorKind = "missing_field"   // Empty or absent form value
	ErrorInvalidFormat  ErrorKind = "invalid_format"  // Not parseable as a number
	ErrorOutOfRange     ErrorKind = "out_of_range"    // Outside the field's inclusive bounds
	ErrorTimeout        ErrorKind = "timeout"         // Request exceeded the client timeout
	ErrorNetwork        ErrorKind = "network"         // Transport failure (DNS, TLS, refused, reset)
	ErrorServerRejected ErrorKind = "server_rejected" // Non-200 response with server-supplied detail
	ErrorServerContract ErrorKind = "server_contract" // 200 response missing the predicted value
)

// Local reports whether the kind is resolved before any network I/O.
func (k ErrorKind) Local() bool {
	switch k {
	case ErrorMissingField, ErrorInvalidFormat, ErrorOutOfRange:
		return true
	}
	return false
}

// Outcome is the terminal result of one submission attempt: either a
// predicted value or a categorized, human-readable failure. Every
// submission yields exactly one Outcome; callers never see raw
// transport errors.
type Outcome struct {
	Value   float64   `json:"predicted_life_expectancy,omitempty"`
	Kind    ErrorKind `json:"error,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Succeeded constructs a success outcome.
func Succeeded(value float64) Outcome {
	return Outcome{Value: value}
}

// Failed constructs a failure outcome.
func Failed(kind ErrorKind, message string) Outcome {
	return Outcome{Kind: kind, Message: message}
}

// OK reports whether the outcome carries a prediction.
func (o Outcome) OK() bool {
	return o.Kind == ErrorNone
}
