package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"line-dispatch/internal/domain/entity"
	"line-dispatch/internal/infra/line"
	"line-dispatch/internal/observability/metrics"
	"line-dispatch/internal/observability/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultAudioDurationMS is sent for every audio file; the real length is never measured.
const DefaultAudioDurationMS = 60000

// errNoStager is returned when file data arrives but no stager is configured.
var errNoStager = errors.New("file staging is not configured")

// SendFileInput describes a file push. Exactly one of FileURL and FileData is
// expected; when both are set FileData wins and is staged.
type SendFileInput struct {
	To           string
	FileURL      string
	FileData     []byte
	FileName     string
	MIMEType     string
	ThumbnailURL string
}

// SendFile pushes a file as an image, video, audio or download-button message
// depending on its MIME type. No history record is written.
func (s *Service) SendFile(ctx context.Context, in SendFileInput) (*entity.DeliveryStatus, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "dispatch.SendFile",
		trace.WithAttributes(
			attribute.String("file.mime_type", in.MIMEType),
			attribute.Int("file.size", len(in.FileData)),
		))
	defer span.End()

	if in.To == "" {
		return nil, &entity.ValidationError{Field: "to", Message: "recipient is required"}
	}
	if in.FileURL == "" && len(in.FileData) == 0 {
		return nil, entity.ErrMissingFileSource
	}
	if !mimeAllowed(s.cfg.AllowedMIMETypes, in.MIMEType) {
		return nil, fmt.Errorf("%w: %s", entity.ErrMIMETypeNotAllowed, in.MIMEType)
	}

	url := in.FileURL
	if len(in.FileData) > 0 {
		if s.stager == nil {
			return nil, errNoStager
		}
		staged, err := s.stager.Stage(ctx, in.FileData, in.FileName, in.MIMEType)
		metrics.RecordFileStaged(len(in.FileData), err == nil)
		if err != nil {
			tracing.RecordError(span, err)
			return nil, err
		}
		url = staged
	}

	api, err := s.platform(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	msg, kind := fileMessage(url, in)
	start := time.Now()
	resp, err := api.PushMessage(ctx, in.To, []line.Message{msg}, s.cfg.DefaultNotificationDisabled)
	if err != nil {
		metrics.RecordDispatch(opSendFile, string(kind), metrics.ResultFailure, time.Since(start))
		s.logger.Error("LINE file send failed",
			slog.String("file_name", in.FileName),
			slog.String("error", err.Error()))
		perr := &entity.PlatformError{Op: "send file via LINE", Err: err}
		tracing.RecordError(span, perr)
		return nil, perr
	}
	metrics.RecordDispatch(opSendFile, string(kind), metrics.ResultSuccess, time.Since(start))

	s.logger.Info("LINE file sent",
		slog.String("message_id", resp.RequestID),
		slog.String("kind", string(kind)),
		slog.String("file_name", in.FileName))

	return s.sentStatus(resp.RequestID, nil), nil
}

// fileMessage picks the wire message for a staged URL by MIME type.
func fileMessage(url string, in SendFileInput) (line.Message, entity.MessageKind) {
	preview := in.ThumbnailURL
	if preview == "" {
		preview = url
	}

	switch {
	case strings.HasPrefix(in.MIMEType, "image/"):
		return line.NewImageMessage(url, preview), entity.KindImage
	case strings.HasPrefix(in.MIMEType, "video/"):
		return line.NewVideoMessage(url, preview), entity.KindVideo
	case strings.HasPrefix(in.MIMEType, "audio/"):
		return line.NewAudioMessage(url, DefaultAudioDurationMS), entity.KindAudio
	default:
		tmpl := line.NewButtonsTemplate("📎 "+in.FileName, line.NewURIAction("Download", url))
		return line.NewTemplateMessage("File: "+in.FileName, tmpl), entity.KindFile
	}
}

// mimeAllowed matches mime against the allow list. An empty list allows all.
func mimeAllowed(allowed []string, mime string) bool {
	if len(allowed) == 0 {
		return true
	}
	mime = strings.ToLower(strings.TrimSpace(mime))
	for _, a := range allowed {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == mime || a == "*/*" {
			return true
		}
		if prefix, ok := strings.CutSuffix(a, "/*"); ok && strings.HasPrefix(mime, prefix+"/") {
			return true
		}
	}
	return false
}
