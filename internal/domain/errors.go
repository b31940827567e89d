package domain

import "errors"

// Common errors used throughout the application.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNoFallbackData  = errors.New("no fallback data available")
	ErrNoDataAvailable = errors.New("no policy data available from any source")
)

// APIError represents an error response from the API.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}
