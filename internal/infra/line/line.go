// Package line talks to the LINE Messaging API.
// It defines the API interface used by the dispatch use case, the wire-format
// message types, the normalizer from domain messages to wire messages, and
// implementations for HTTP, dry-run and circuit-breaker wrapped clients.
package line

import (
	"context"
	"time"
)

// API is the subset of the Messaging API the dispatcher needs.
// Every method performs exactly one outbound call and never retries.
type API interface {
	// PushMessage sends messages to a single user, group or room.
	PushMessage(ctx context.Context, to string, messages []Message, notificationDisabled bool) (Response, error)

	// Multicast sends messages to an explicit list of user ids in one call.
	Multicast(ctx context.Context, to []string, messages []Message, notificationDisabled bool) (Response, error)

	// Broadcast sends messages to every follower of the channel.
	Broadcast(ctx context.Context, messages []Message, notificationDisabled bool) (Response, error)
}

// Response carries the correlation data returned by the platform.
type Response struct {
	// RequestID is the X-Line-Request-Id header value, "" when absent.
	RequestID string
}

// Credentials are the resolved channel credentials a client is built from.
type Credentials struct {
	AccessToken   string
	ChannelSecret string
}

// Config contains configuration for the HTTP client.
type Config struct {
	// BaseURL is the Messaging API endpoint, e.g. https://api.line.me
	BaseURL string

	// Timeout is the HTTP request timeout for platform calls
	Timeout time.Duration
}

// DefaultBaseURL is the production Messaging API endpoint.
const DefaultBaseURL = "https://api.line.me"
