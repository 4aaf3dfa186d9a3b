// Package hook reacts to record changes in the admin backend and triggers
// LINE dispatches for collections configured to do so.
package hook

import (
	"context"
	"log/slog"
	"time"

	"line-dispatch/internal/config"
	"line-dispatch/internal/domain/entity"
	"line-dispatch/internal/usecase/report"
)

// Operation is the kind of record change.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Mirror values written back onto the report record.
const (
	DeliveryNotSent = "not_sent"
	DeliverySent    = "sent"
)

// DeliveryMirror is the delivery state the caller copies onto the changed record.
type DeliveryMirror struct {
	LineDeliveryStatus string     `json:"lineDeliveryStatus"`
	LineSentAt         *time.Time `json:"lineSentAt,omitempty"`
	MessageID          string     `json:"messageId,omitempty"`
}

// ReportSender sends a rendered payroll report.
type ReportSender interface {
	SendPayrollReport(ctx context.Context, to string, r entity.PayrollReport, locale report.Locale) (*entity.DeliveryStatus, error)
}

// PayrollHook auto-sends payroll reports when they reach the configured status.
type PayrollHook struct {
	sender      ReportSender
	collections *config.CollectionsConfig
	logger      *slog.Logger
}

// NewPayrollHook creates a PayrollHook. A nil logger uses slog.Default().
func NewPayrollHook(sender ReportSender, collections *config.CollectionsConfig, logger *slog.Logger) *PayrollHook {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayrollHook{sender: sender, collections: collections, logger: logger}
}

// AfterChange runs after a report in collection was created or updated.
// It returns the mirror to store on the record, or nil when nothing was sent.
// Send failures are logged and never returned.
func (h *PayrollHook) AfterChange(ctx context.Context, collection string, op Operation, r entity.PayrollReport) *DeliveryMirror {
	if op != OperationCreate && op != OperationUpdate {
		return nil
	}

	col, ok := h.collections.Lookup(collection)
	if !ok || !col.EnableSendButton {
		return nil
	}

	log := h.logger.With(
		slog.String("collection", collection),
		slog.String("report_id", r.ID),
		slog.String("operation", string(op)))

	if r.Status != col.AutoSendStatus {
		log.Debug("payroll report not in auto-send status", slog.String("status", r.Status))
		return nil
	}
	to := r.LineIDAt(col.LineIDField)
	if to == "" {
		log.Debug("payroll report has no LINE id", slog.String("field", col.LineIDField))
		return nil
	}

	status, err := h.sender.SendPayrollReport(ctx, to, r, report.Locale(col.Locale))
	if err != nil {
		log.Error("Failed to send payroll report via LINE", slog.String("error", err.Error()))
		return nil
	}

	log.Info("payroll report sent via LINE", slog.String("message_id", status.MessageID))
	return &DeliveryMirror{
		LineDeliveryStatus: DeliverySent,
		LineSentAt:         status.SentAt,
		MessageID:          status.MessageID,
	}
}
