package line

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// NoOpClient is a dry-run implementation of API.
// It logs every call and answers with a generated request id, so the rest of
// the pipeline (history, metrics) behaves as in production.
type NoOpClient struct {
	logger *slog.Logger
}

// NewNoOpClient creates a new NoOpClient. A nil logger uses slog.Default().
func NewNoOpClient(logger *slog.Logger) *NoOpClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoOpClient{logger: logger}
}

// PushMessage implements API.
func (n *NoOpClient) PushMessage(ctx context.Context, to string, messages []Message, notificationDisabled bool) (Response, error) {
	return n.record(ctx, "push", slog.String("to", to), slog.Int("messages", len(messages)), slog.Bool("notification_disabled", notificationDisabled))
}

// Multicast implements API.
func (n *NoOpClient) Multicast(ctx context.Context, to []string, messages []Message, notificationDisabled bool) (Response, error) {
	return n.record(ctx, "multicast", slog.Any("to", to), slog.Int("messages", len(messages)), slog.Bool("notification_disabled", notificationDisabled))
}

// Broadcast implements API.
func (n *NoOpClient) Broadcast(ctx context.Context, messages []Message, notificationDisabled bool) (Response, error) {
	return n.record(ctx, "broadcast", slog.Int("messages", len(messages)), slog.Bool("notification_disabled", notificationDisabled))
}

func (n *NoOpClient) record(ctx context.Context, op string, attrs ...any) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	id := uuid.NewString()
	n.logger.Info("LINE dry-run: message not sent",
		append([]any{slog.String("operation", op), slog.String("line_request_id", id)}, attrs...)...)
	return Response{RequestID: id}, nil
}
