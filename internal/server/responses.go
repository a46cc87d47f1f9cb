package server

import "github.com/schemaworks/registrar/internal/faults"

// ErrorResponse is the envelope returned for every failed request. Errors is
// only populated for validation failures.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  []faults.FieldError `json:"errors,omitempty"`
}

// CreateSchemaResponse is the identity of a freshly created schema.
type CreateSchemaResponse struct {
	Name             string `json:"name"`
	InitialVersionID string `json:"initialVersionId"`
}

// RegisterVersionResponse describes the store-assigned version.
type RegisterVersionResponse struct {
	VersionID     string `json:"versionId"`
	VersionNumber int    `json:"versionNumber"`
	Status        string `json:"status"`
}

// CheckValidityResponse is the store's validity judgment. Error carries the
// store's own diagnostic when the definition is rejected.
type CheckValidityResponse struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

func validationError(message string, fields []faults.FieldError) ErrorResponse {
	return ErrorResponse{
		Code:    string(faults.CodeValidation),
		Message: message,
		Errors:  fields,
	}
}

func invalidRequest(message string) ErrorResponse {
	return ErrorResponse{
		Code:    string(faults.CodeInvalidRequest),
		Message: message,
	}
}

func internalError(message string) ErrorResponse {
	return ErrorResponse{
		Code:    string(faults.CodeInternal),
		Message: message,
	}
}

func rateLimited() ErrorResponse {
	return ErrorResponse{
		Code:    string(faults.CodeRateLimited),
		Message: "Too many requests, slow down",
	}
}
