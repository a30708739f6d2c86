package common

import "time"

// MessageResponse is the {success, message} shape used by most endpoints
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the bare {error} shape returned by the rate limiter
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports that the process is serving
type HealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Standard messages
const (
	MessageRouteNotFound = "Route not found"
	MessageInternalError = "Something went wrong!"
	MessageServerRunning = "Server is running"
)

// NewMessageResponse creates a {success, message} response
func NewMessageResponse(success bool, message string) MessageResponse {
	return MessageResponse{
		Success: success,
		Message: message,
	}
}

// NewErrorResponse creates an {error} response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// NewHealthResponse stamps a health response with now in UTC, ISO 8601 with milliseconds
func NewHealthResponse(now time.Time) HealthResponse {
	return HealthResponse{
		Success:   true,
		Message:   MessageServerRunning,
		Timestamp: now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}
