package apierror

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeBadRequest       = "BAD_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternal         = "INTERNAL_ERROR"
)

type APIError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    string            `json:"details,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
	HTTPStatus int               `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

// Validation builds a 400 error from field -> reason pairs. The message lists
// every reason in field order so it stays stable across calls.
func Validation(fields map[string]string) *APIError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	reasons := make([]string, 0, len(names))
	for _, name := range names {
		reasons = append(reasons, fields[name])
	}

	return &APIError{
		Code:       CodeValidation,
		Message:    strings.Join(reasons, "; "),
		Details:    strings.Join(names, ","),
		Fields:     fields,
		HTTPStatus: http.StatusBadRequest,
	}
}

func BadRequest(message string) *APIError {
	return New(CodeBadRequest, message, "", http.StatusBadRequest)
}

func Unauthorized(message string) *APIError {
	return New(CodeUnauthorized, message, "", http.StatusUnauthorized)
}

func NotFound(message string, details string) *APIError {
	return New(CodeNotFound, message, details, http.StatusNotFound)
}

func Conflict(message string, details string) *APIError {
	return New(CodeConflict, message, details, http.StatusConflict)
}

func MethodNotAllowed() *APIError {
	return New(CodeMethodNotAllowed, "method not allowed", "", http.StatusMethodNotAllowed)
}
