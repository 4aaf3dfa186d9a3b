package line

import (
	"context"
	"errors"

	"line-dispatch/internal/resilience/circuitbreaker"

	"github.com/sony/gobreaker"
)

// BreakerClient wraps an API with a circuit breaker.
// While the circuit is open calls fail immediately with gobreaker.ErrOpenState;
// nothing is retried.
type BreakerClient struct {
	next API
	cb   *circuitbreaker.CircuitBreaker
}

// NewBreakerClient wraps next using circuitbreaker.LineAPIConfig.
func NewBreakerClient(next API) *BreakerClient {
	return &BreakerClient{
		next: next,
		cb:   circuitbreaker.New(circuitbreaker.LineAPIConfig(IsClientError)),
	}
}

// IsClientError reports whether err is a non-429 4xx from the Messaging API.
func IsClientError(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce)
}

// PushMessage implements API.
func (b *BreakerClient) PushMessage(ctx context.Context, to string, messages []Message, notificationDisabled bool) (Response, error) {
	return b.do(func() (Response, error) {
		return b.next.PushMessage(ctx, to, messages, notificationDisabled)
	})
}

// Multicast implements API.
func (b *BreakerClient) Multicast(ctx context.Context, to []string, messages []Message, notificationDisabled bool) (Response, error) {
	return b.do(func() (Response, error) {
		return b.next.Multicast(ctx, to, messages, notificationDisabled)
	})
}

// Broadcast implements API.
func (b *BreakerClient) Broadcast(ctx context.Context, messages []Message, notificationDisabled bool) (Response, error) {
	return b.do(func() (Response, error) {
		return b.next.Broadcast(ctx, messages, notificationDisabled)
	})
}

func (b *BreakerClient) do(fn func() (Response, error)) (Response, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return Response{}, err
	}
	return result.(Response), nil
}

// Name returns the breaker name.
func (b *BreakerClient) Name() string {
	return b.cb.Name()
}

// State returns the breaker state.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}
