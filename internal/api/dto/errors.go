package dto

// APIError represents a structured error response for transport failures
// (rate limiting, panics, unknown routes). Domain failures on the query
// endpoints use the result/error bodies instead.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes
const (
	ErrCodeNotFound      = "not_found"
	ErrCodeInternalError = "internal_error"
	ErrCodeRateLimited   = "rate_limited"
)

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code, message string) APIError {
	return APIError{
		Code:    code,
		Message: message,
	}
}

// NotFoundError creates a not found error response.
func NotFoundError(resource string) APIError {
	return NewAPIError(ErrCodeNotFound, resource+" not found")
}

// InternalError creates an internal server error response.
func InternalError() APIError {
	return NewAPIError(ErrCodeInternalError, "an internal error occurred")
}

// RateLimitedError is returned with 429 when a client exceeds its budget.
func RateLimitedError() APIError {
	return NewAPIError(ErrCodeRateLimited, "too many requests")
}
