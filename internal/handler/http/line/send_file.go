package line

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"line-dispatch/internal/domain/entity"
	"line-dispatch/internal/handler/http/respond"
	"line-dispatch/internal/observability/logging"
	"line-dispatch/internal/usecase/dispatch"
)

// SendFileHandler pushes a file by URL or inline base64 data.
type SendFileHandler struct{ Svc Dispatcher }

// ServeHTTP sends a file
// @Summary      Push a file to one recipient
// @Description  Images, videos and audio are sent as media messages; anything else becomes a download button. Inline data is staged to storage first. No history record is written.
// @Tags         line
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body SendFileRequest true "recipient and file"
// @Success      200 {object} DeliveryEnvelope
// @Failure      400 {object} ErrorEnvelope "missing file source, bad base64 or disallowed MIME type"
// @Failure      401 {object} ErrorEnvelope "missing or invalid JWT"
// @Failure      403 {object} ErrorEnvelope "insufficient role"
// @Failure      413 {object} ErrorEnvelope "file too large"
// @Failure      500 {object} ErrorEnvelope "dispatch failed"
// @Router       /api/line/send-file [post]
func (h SendFileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SendFileRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	in := dispatch.SendFileInput{
		To:           req.To,
		FileURL:      req.FileURL,
		FileName:     req.FileName,
		MIMEType:     req.MIMEType,
		ThumbnailURL: req.ThumbnailURL,
	}
	if req.FileData != "" {
		data, err := base64.StdEncoding.DecodeString(req.FileData)
		if err != nil {
			respond.Error(w, fmt.Errorf("%w: fileData is not valid base64", entity.ErrInvalidInput))
			return
		}
		in.FileData = data
	}

	status, err := h.Svc.SendFile(senderContext(r), in)
	if err != nil {
		logging.FromContext(r.Context()).Error("send file failed",
			slog.String("file_name", req.FileName),
			slog.String("mime_type", req.MIMEType),
			slog.String("error", err.Error()))
		respond.Error(w, err)
		return
	}

	respond.OK(w, status)
}
