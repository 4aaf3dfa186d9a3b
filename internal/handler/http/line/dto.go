package line

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"line-dispatch/internal/domain/entity"
	"line-dispatch/internal/usecase/hook"
)

// SendRequest is the body of POST /api/line/send.
type SendRequest struct {
	To                   string           `json:"to" example:"U4af4980629..."`
	Messages             []entity.Message `json:"messages"`
	NotificationDisabled *bool            `json:"notificationDisabled,omitempty"`
}

// BroadcastRequest is the body of POST /api/line/broadcast.
// Without recipients the messages go to every follower.
type BroadcastRequest struct {
	Messages     []entity.Message   `json:"messages"`
	Recipients   []entity.Recipient `json:"recipients,omitempty"`
	// Notification true plays the push alert. Omitted sends silently.
	Notification *bool              `json:"notification,omitempty"`
}

// SendFileRequest is the body of POST /api/line/send-file.
// FileData is base64 encoded and takes precedence over FileURL.
type SendFileRequest struct {
	To           string `json:"to"`
	FileURL      string `json:"fileUrl,omitempty"`
	FileData     string `json:"fileData,omitempty"`
	FileName     string `json:"fileName"`
	MIMEType     string `json:"mimeType"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// HookRequest is the change notification sent by the admin backend.
type HookRequest struct {
	Operation hook.Operation       `json:"operation" example:"update"`
	Doc       entity.PayrollReport `json:"doc"`
}

// DeliveryEnvelope documents a successful dispatch response.
type DeliveryEnvelope struct {
	Success bool                  `json:"success" example:"true"`
	Result  entity.DeliveryStatus `json:"result"`
}

// ErrorEnvelope documents a failed response.
type ErrorEnvelope struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error"`
}

// decodeJSON decodes the request body into v, rejecting unknown trailing data.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return fmt.Errorf("%w: request body exceeds %d bytes", entity.ErrPayloadTooLarge, mbe.Limit)
		}
		return fmt.Errorf("%w: invalid JSON body: %v", entity.ErrInvalidInput, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON body", entity.ErrInvalidInput)
	}
	return nil
}
