package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"line-dispatch/internal/domain/entity"
	"line-dispatch/internal/infra/line"
	"line-dispatch/internal/observability/logging"
	"line-dispatch/internal/observability/metrics"
	"line-dispatch/internal/observability/tracing"
	"line-dispatch/internal/usecase/report"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SendInput is a push to a single recipient.
type SendInput struct {
	To       string
	Messages []entity.Message
	// NotificationDisabled falls back to Config.DefaultNotificationDisabled when nil.
	NotificationDisabled *bool
}

// BroadcastInput is a multicast when Recipients is non-empty, a broadcast to
// every follower otherwise.
type BroadcastInput struct {
	Messages   []entity.Message
	Recipients []entity.Recipient
	// Notification true plays push alerts. Nil or false sends silently.
	Notification *bool
}

// Send pushes messages to one recipient and records the attempt.
func (s *Service) Send(ctx context.Context, in SendInput) (*entity.DeliveryStatus, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "dispatch.Send",
		trace.WithAttributes(attribute.Int("messages", len(in.Messages))))
	defer span.End()

	if in.To == "" {
		return nil, &entity.ValidationError{Field: "to", Message: "recipient is required"}
	}
	if len(in.Messages) == 0 {
		return nil, &entity.ValidationError{Field: "messages", Message: "at least one message is required"}
	}

	wire, err := line.Normalize(in.Messages)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	api, err := s.platform(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	disabled := s.cfg.DefaultNotificationDisabled
	if in.NotificationDisabled != nil {
		disabled = *in.NotificationDisabled
	}

	start := time.Now()
	resp, err := api.PushMessage(ctx, in.To, wire, disabled)
	kind := string(in.Messages[0].Kind)
	if err != nil {
		metrics.RecordDispatch(opSend, kind, metrics.ResultFailure, time.Since(start))
		s.logger.Error("LINE push failed",
			slog.String("operation", opSend),
			slog.String("error", err.Error()))
		perr := &entity.PlatformError{Op: "send LINE message", Err: err}
		tracing.RecordError(span, perr)
		return nil, perr
	}
	metrics.RecordDispatch(opSend, kind, metrics.ResultSuccess, time.Since(start))

	status := s.sentStatus(resp.RequestID, nil)
	span.SetAttributes(attribute.String("line.request_id", status.MessageID))
	logging.WithDispatch(logging.WithRequestID(ctx, s.logger), opSend, 1).Info("LINE message sent",
		slog.String("message_id", status.MessageID))

	s.recordHistory(ctx, in.Messages, []string{in.To}, status)
	return status, nil
}

// Broadcast multicasts to explicit recipients or broadcasts to all followers,
// then records the attempt.
func (s *Service) Broadcast(ctx context.Context, in BroadcastInput) (*entity.DeliveryStatus, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "dispatch.Broadcast",
		trace.WithAttributes(
			attribute.Int("messages", len(in.Messages)),
			attribute.Int("recipients", len(in.Recipients)),
		))
	defer span.End()

	if len(in.Messages) == 0 {
		return nil, &entity.ValidationError{Field: "messages", Message: "at least one message is required"}
	}
	ids := entity.RecipientIDs(in.Recipients)
	for i, id := range ids {
		if id == "" {
			return nil, &entity.ValidationError{Field: fmt.Sprintf("recipients[%d].id", i), Message: "recipient id is required"}
		}
	}

	wire, err := line.Normalize(in.Messages)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	api, err := s.platform(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	disabled := in.Notification == nil || !*in.Notification

	op := opBroadcast
	if len(ids) > 0 {
		op = opMulticast
	}

	start := time.Now()
	var resp line.Response
	if len(ids) > 0 {
		metrics.RecordMulticastRecipients(len(ids))
		resp, err = api.Multicast(ctx, ids, wire, disabled)
	} else {
		resp, err = api.Broadcast(ctx, wire, disabled)
	}
	kind := string(in.Messages[0].Kind)
	if err != nil {
		metrics.RecordDispatch(op, kind, metrics.ResultFailure, time.Since(start))
		s.logger.Error("LINE broadcast failed",
			slog.String("operation", op),
			slog.Int("recipients", len(ids)),
			slog.String("error", err.Error()))
		perr := &entity.PlatformError{Op: "broadcast LINE message", Err: err}
		tracing.RecordError(span, perr)
		return nil, perr
	}
	metrics.RecordDispatch(op, kind, metrics.ResultSuccess, time.Since(start))

	recorded := ids
	if len(ids) == 0 {
		recorded = []string{entity.BroadcastMarker}
	}
	status := s.sentStatus(resp.RequestID, ids)
	span.SetAttributes(attribute.String("line.request_id", status.MessageID))
	logging.WithDispatch(logging.WithRequestID(ctx, s.logger), op, len(ids)).Info("LINE message broadcast",
		slog.String("message_id", status.MessageID))

	s.recordHistory(ctx, in.Messages, recorded, status)
	return status, nil
}

// SendPayrollReport renders report as a flex card and pushes it to to.
// An empty locale uses Config.DefaultLocale.
func (s *Service) SendPayrollReport(ctx context.Context, to string, r entity.PayrollReport, locale report.Locale) (*entity.DeliveryStatus, error) {
	if locale == "" {
		locale = s.cfg.DefaultLocale
	}
	msg := report.FormatPayroll(r, locale)
	return s.Send(ctx, SendInput{To: to, Messages: []entity.Message{msg}})
}

// sentStatus builds a sent status. ids, when present, become the per-recipient breakdown.
func (s *Service) sentStatus(requestID string, ids []string) *entity.DeliveryStatus {
	now := s.now()
	status := &entity.DeliveryStatus{
		MessageID: requestID,
		Status:    entity.StateSent,
		SentAt:    &now,
	}
	if len(ids) > 0 {
		status.Recipients = make([]entity.RecipientStatus, 0, len(ids))
		for _, id := range ids {
			status.Recipients = append(status.Recipients, entity.RecipientStatus{ID: id, Status: entity.StateSent})
		}
	}
	return status
}
