package handlers

import (
	"strings"

	"odoo-inventory-api/internal/odoo"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// isUpstreamError checks if an error came from the Odoo call path. These
// always map to 500 regardless of what the upstream message says, so it
// is checked before the substring classifiers below.
func isUpstreamError(err error) bool {
	return odoo.IsUpstream(err)
}

// upstreamMessage extracts the upstream fault text for the 500 payload
func upstreamMessage(err error) string {
	return odoo.FaultMessage(err)
}

// isValidationError checks if an error is a validation error. Only
// service-originated errors reach this; upstream failures are filtered
// out by isUpstreamError first.
func isValidationError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "validation") ||
		strings.Contains(errMsg, "invalid") ||
		strings.Contains(errMsg, "required") ||
		strings.Contains(errMsg, "cannot be empty") ||
		strings.Contains(errMsg, "must be")
}

// isNotFoundError checks if an error is a not found error
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "not found") ||
		strings.Contains(errMsg, "does not exist")
}

// isDuplicateError checks if an error is a duplicate error
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "already exists") ||
		strings.Contains(errMsg, "duplicate")
}
