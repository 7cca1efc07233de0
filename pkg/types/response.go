// Package types declares the JSON envelopes every endpoint answers with, so
// terminals can unmarshal one shape for success and one for failure.
package types

// SuccessEnvelope wraps any successful payload under a data key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error body. Code is one of the stable
// machine codes from pkg/errors; Details is optional field-level context.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError under an error key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
