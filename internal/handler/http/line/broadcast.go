package line

import (
	"log/slog"
	"net/http"

	"line-dispatch/internal/handler/http/respond"
	"line-dispatch/internal/observability/logging"
	"line-dispatch/internal/usecase/dispatch"
)

// BroadcastHandler multicasts to the given recipients, or broadcasts to every follower.
type BroadcastHandler struct{ Svc Dispatcher }

// ServeHTTP broadcasts messages
// @Summary      Multicast or broadcast messages
// @Description  With recipients the messages are multicast to their ids; without, they go to every follower and history records the recipient as "broadcast".
// @Tags         line
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body BroadcastRequest true "messages and optional recipients"
// @Success      200 {object} DeliveryEnvelope
// @Failure      400 {object} ErrorEnvelope "malformed JSON body"
// @Failure      401 {object} ErrorEnvelope "missing or invalid JWT"
// @Failure      403 {object} ErrorEnvelope "insufficient role"
// @Failure      413 {object} ErrorEnvelope "request body too large"
// @Failure      429 {object} ErrorEnvelope "rate limit exceeded"
// @Failure      500 {object} ErrorEnvelope "dispatch failed"
// @Router       /api/line/broadcast [post]
func (h BroadcastHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req BroadcastRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	status, err := h.Svc.Broadcast(senderContext(r), dispatch.BroadcastInput{
		Messages:     req.Messages,
		Recipients:   req.Recipients,
		Notification: req.Notification,
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("broadcast failed",
			slog.Int("recipients", len(req.Recipients)),
			slog.String("error", err.Error()))
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}

	respond.OK(w, status)
}
