// Package storage stages binary file payloads at a URL the messaging platform can fetch.
//
// Two strategies are provided: InlineStager encodes small payloads as data URLs,
// and DriveStager uploads to Google Drive and shares the file publicly.
// Both enforce the same size ceiling.
package storage

import (
	"context"

	"line-dispatch/internal/domain/entity"
)

// DefaultMaxBytes is the staging ceiling applied when none is configured (5 MiB).
const DefaultMaxBytes int64 = 5 * 1024 * 1024

// Stager turns a payload into a fetchable URL.
type Stager interface {
	Stage(ctx context.Context, data []byte, fileName, mimeType string) (string, error)
}

func checkSize(data []byte, limit int64) error {
	if size := int64(len(data)); size > limit {
		return &entity.PayloadTooLargeError{Size: size, Limit: limit}
	}
	return nil
}

func normalizeLimit(limit int64) int64 {
	if limit <= 0 {
		return DefaultMaxBytes
	}
	return limit
}
