package line

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	pushPath      = "/v2/bot/message/push"
	multicastPath = "/v2/bot/message/multicast"
	broadcastPath = "/v2/bot/message/broadcast"

	headerRequestID = "X-Line-Request-Id"
	headerRetryKey  = "X-Line-Retry-Key"

	defaultTimeout = 10 * time.Second
)

// ErrMissingCredentials is returned by NewClient when the access token or secret is empty.
var ErrMissingCredentials = errors.New("LINE channel access token and channel secret are required")

// Client calls the Messaging API over HTTP.
type Client struct {
	config     Config
	creds      Credentials
	httpClient *http.Client
}

// NewClient creates a new Client for the given credentials.
//
// The client is initialized with:
//   - HTTP client with configured timeout (10s when unset)
//   - Base URL defaulting to the production endpoint
func NewClient(creds Credentials, config Config) (*Client, error) {
	if creds.AccessToken == "" || creds.ChannelSecret == "" {
		return nil, ErrMissingCredentials
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	return &Client{
		config: config,
		creds:  creds,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

type pushRequest struct {
	To                   string    `json:"to"`
	Messages             []Message `json:"messages"`
	NotificationDisabled bool      `json:"notificationDisabled"`
}

type multicastRequest struct {
	To                   []string  `json:"to"`
	Messages             []Message `json:"messages"`
	NotificationDisabled bool      `json:"notificationDisabled"`
}

type broadcastRequest struct {
	Messages             []Message `json:"messages"`
	NotificationDisabled bool      `json:"notificationDisabled"`
}

// PushMessage implements API.
func (c *Client) PushMessage(ctx context.Context, to string, messages []Message, notificationDisabled bool) (Response, error) {
	return c.post(ctx, pushPath, pushRequest{To: to, Messages: messages, NotificationDisabled: notificationDisabled})
}

// Multicast implements API.
func (c *Client) Multicast(ctx context.Context, to []string, messages []Message, notificationDisabled bool) (Response, error) {
	return c.post(ctx, multicastPath, multicastRequest{To: to, Messages: messages, NotificationDisabled: notificationDisabled})
}

// Broadcast implements API.
func (c *Client) Broadcast(ctx context.Context, messages []Message, notificationDisabled bool) (Response, error) {
	return c.post(ctx, broadcastPath, broadcastRequest{Messages: messages, NotificationDisabled: notificationDisabled})
}

// post sends one JSON request to path.
//
// Error types:
//   - 429: *RateLimitError
//   - 4xx (non-429): *ClientError
//   - 5xx: *ServerError
//   - Network error: wrapped transport error
func (c *Client) post(ctx context.Context, path string, payload any) (Response, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return Response{}, fmt.Errorf("create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.creds.AccessToken)
	req.Header.Set(headerRetryKey, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, readErr := io.ReadAll(resp.Body)
	requestID := resp.Header.Get(headerRequestID)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		slog.Debug("LINE API call succeeded",
			slog.String("path", path),
			slog.String("line_request_id", requestID))
		return Response{RequestID: requestID}, nil
	}

	apiErr := parseErrorResponse(body)
	if readErr != nil {
		apiErr.Message = strings.TrimSpace(fmt.Sprintf("%s (read body: %v)", apiErr.Message, readErr))
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return Response{}, &RateLimitError{
			Message:    fmt.Sprintf("LINE API rate limit exceeded: %s", apiErr.Message),
			RetryAfter: parseRetryAfter(resp),
		}
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return Response{}, &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("LINE API client error (%d): %s", resp.StatusCode, apiErr.Message),
			Details:    apiErr.Details,
		}
	}

	if resp.StatusCode >= 500 {
		return Response{}, &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("LINE API server error (%d): %s", resp.StatusCode, apiErr.Message),
		}
	}

	return Response{}, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}

// parseErrorResponse decodes the API error body, falling back to the raw text.
func parseErrorResponse(body []byte) ErrorResponse {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Message != "" {
		return er
	}
	return ErrorResponse{Message: strings.TrimSpace(string(body))}
}

// parseRetryAfter reads the Retry-After header in seconds, 0 when absent.
func parseRetryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 0
}
