package storage

import (
	"context"
	"encoding/base64"
)

// InlineStager encodes payloads as self-contained data URLs.
// It performs no I/O. The platform may refuse data URLs for media; deployments
// that send real files should use DriveStager.
type InlineStager struct {
	limit int64
}

// NewInlineStager creates an InlineStager. limit <= 0 selects DefaultMaxBytes.
func NewInlineStager(limit int64) *InlineStager {
	return &InlineStager{limit: normalizeLimit(limit)}
}

// Stage returns data:<mime>;base64,<payload>.
func (s *InlineStager) Stage(_ context.Context, data []byte, _ string, mimeType string) (string, error) {
	if err := checkSize(data, s.limit); err != nil {
		return "", err
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
