// Package logging builds the process slog logger and carries per-request
// loggers through the context.
//
// LOG_LEVEL and LOG_FORMAT (json or text) configure NewLogger. The HTTP
// logging middleware stores a request-scoped logger tagged with request_id,
// which handlers read back with FromContext. The dispatch service tags its
// own logger with WithRequestID and WithDispatch, so every line written for
// one push, multicast or broadcast can be correlated:
//
//	log := logging.WithDispatch(logging.WithRequestID(ctx, logger), "multicast", len(ids))
//	log.Info("LINE message broadcast", slog.String("message_id", resp.RequestID))
package logging
