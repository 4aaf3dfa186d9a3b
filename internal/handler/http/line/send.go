package line

import (
	"log/slog"
	"net/http"

	"line-dispatch/internal/handler/http/respond"
	"line-dispatch/internal/observability/logging"
	"line-dispatch/internal/usecase/dispatch"
)

// SendHandler pushes messages to one recipient.
type SendHandler struct{ Svc Dispatcher }

// ServeHTTP sends a push message
// @Summary      Push messages to one recipient
// @Description  Normalizes the messages, pushes them in one platform call and records the attempt in history.
// @Tags         line
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body SendRequest true "recipient and messages"
// @Success      200 {object} DeliveryEnvelope
// @Failure      400 {object} ErrorEnvelope "malformed JSON body"
// @Failure      401 {object} ErrorEnvelope "missing or invalid JWT"
// @Failure      403 {object} ErrorEnvelope "insufficient role"
// @Failure      413 {object} ErrorEnvelope "request body too large"
// @Failure      429 {object} ErrorEnvelope "rate limit exceeded"
// @Failure      500 {object} ErrorEnvelope "dispatch failed"
// @Router       /api/line/send [post]
func (h SendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	status, err := h.Svc.Send(senderContext(r), dispatch.SendInput{
		To:                   req.To,
		Messages:             req.Messages,
		NotificationDisabled: req.NotificationDisabled,
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("send failed", slog.String("error", err.Error()))
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}

	respond.OK(w, status)
}
