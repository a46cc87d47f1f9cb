package faults

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies one failure class in the service-wide taxonomy.
// The set is closed: callers switch on it to pick retry and response policy.
type Code string

const (
	// CodeUnknown marks a transport, auth or throttling fault talking to a
	// remote dependency. Potentially transient; callers may retry under
	// their own policy.
	CodeUnknown Code = "UNKNOWN_ERROR"

	// CodeEmptyResponse marks a remote call that nominally succeeded but
	// omitted required fields. Never retried blindly: retrying an ambiguous
	// partial success risks double-creating resources.
	CodeEmptyResponse Code = "EMPTY_RESPONSE"

	// CodeValidation marks malformed caller input. Always user-recoverable,
	// never retried automatically.
	CodeValidation Code = "VALIDATION_ERROR"

	// CodeInvalidRequest marks an unsupported operation or method.
	CodeInvalidRequest Code = "INVALID_REQUEST"

	// CodeInternal is the generic server-side failure surfaced to callers.
	CodeInternal Code = "INTERNAL_ERROR"

	// CodeRateLimited marks requests rejected by the admission gate.
	CodeRateLimited Code = "RATELIMIT_EXCEEDED"
)

// Failure is a typed failure value. Components that talk to remote
// dependencies return it instead of raising past their boundary.
type Failure struct {
	Code Code
	Op   string // operation that produced the failure, e.g. "schemastore.CreateSchema"
	Err  error  // underlying cause, not exposed to API callers
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Op, f.Code, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Op, f.Code)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Retryable reports whether the caller may retry under its own policy.
// Only UNKNOWN_ERROR is potentially transient.
func (f *Failure) Retryable() bool {
	return f.Code == CodeUnknown
}

// New builds a Failure with an arbitrary code.
func New(code Code, op string, err error) *Failure {
	return &Failure{Code: code, Op: op, Err: err}
}

// Unknown builds an UNKNOWN_ERROR failure.
func Unknown(op string, err error) *Failure {
	return &Failure{Code: CodeUnknown, Op: op, Err: err}
}

// EmptyResponse builds an EMPTY_RESPONSE failure.
func EmptyResponse(op string) *Failure {
	return &Failure{Code: CodeEmptyResponse, Op: op}
}

// As extracts a *Failure from an error chain.
func As(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// CodeOf returns the failure code carried by err, or CodeUnknown when the
// error is not a typed Failure. Returns the empty code for nil.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	if f, ok := As(err); ok {
		return f.Code
	}
	return CodeUnknown
}

// HTTPStatus maps a failure code to the response status used by the API
// surface.
func HTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeInvalidRequest:
		return http.StatusBadRequest
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeUnknown, CodeEmptyResponse, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
