package faults

import goskema "github.com/reoring/goskema"

// FieldError describes one invalid field in a rejected payload. Path is a
// JSON Pointer into the payload.
type FieldError struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FieldErrors extracts per-field diagnostics from a validation error. The
// second return is false when the error carries no field-level detail.
func FieldErrors(err error) ([]FieldError, bool) {
	issues, ok := goskema.AsIssues(err)
	if !ok || len(issues) == 0 {
		return nil, false
	}
	out := make([]FieldError, 0, len(issues))
	for _, issue := range issues {
		out = append(out, FieldError{
			Path:    issue.Path,
			Code:    issue.Code,
			Message: issue.Message,
		})
	}
	return out, true
}
