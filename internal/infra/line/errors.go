package line

import (
	"fmt"
	"time"
)

// RateLimitError represents a 429 rate limit error from the Messaging API.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (retry after %v)", e.Message, e.RetryAfter)
	}
	return e.Message
}

// ClientError represents a 4xx client error from the Messaging API.
type ClientError struct {
	StatusCode int
	Message    string
	Details    []ErrorDetail
}

func (e *ClientError) Error() string {
	return e.Message
}

// ServerError represents a 5xx server error from the Messaging API.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// ErrorResponse is the JSON body the Messaging API returns on failure.
type ErrorResponse struct {
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail points at the offending request property.
type ErrorDetail struct {
	Message  string `json:"message"`
	Property string `json:"property"`
}
