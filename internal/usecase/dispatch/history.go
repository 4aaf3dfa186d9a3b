package dispatch

import (
	"context"
	"log/slog"

	"line-dispatch/internal/domain/entity"
	"line-dispatch/internal/observability/metrics"
)

type senderKey struct{}

// WithSender attaches the acting principal recorded as HistoryRecord.Sender.
func WithSender(ctx context.Context, sender string) context.Context {
	return context.WithValue(ctx, senderKey{}, sender)
}

// SenderFromContext returns the principal set by WithSender, or "".
func SenderFromContext(ctx context.Context) string {
	s, _ := ctx.Value(senderKey{}).(string)
	return s
}

// recordHistory appends one ledger entry. Failures are logged, counted and
// handed to the history error handler; they never reach the caller.
func (s *Service) recordHistory(ctx context.Context, messages []entity.Message, recipients []string, status *entity.DeliveryStatus) {
	if s.history == nil {
		return
	}

	now := s.now()
	rec := &entity.HistoryRecord{
		ID:         s.newID(),
		MessageID:  status.MessageID,
		Type:       messages[0].Kind,
		Content:    messages,
		Recipients: recipients,
		Status:     *status,
		Sender:     SenderFromContext(ctx),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// the send already happened; a canceled request must not lose its record
	if err := s.history.Create(context.WithoutCancel(ctx), rec); err != nil {
		metrics.RecordHistoryWrite(false)
		s.logger.Warn("Failed to record message history",
			slog.String("history_id", rec.ID),
			slog.String("message_id", rec.MessageID),
			slog.String("error", err.Error()))
		if s.onHistoryError != nil {
			s.onHistoryError(err)
		}
		return
	}
	metrics.RecordHistoryWrite(true)
}
