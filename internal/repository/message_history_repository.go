package repository

import (
	"context"

	"line-dispatch/internal/domain/entity"
)

// MessageHistoryRepository is the append-only ledger of dispatch attempts.
// Get returns (nil, nil) when no record has the id.
type MessageHistoryRepository interface {
	Create(ctx context.Context, record *entity.HistoryRecord) error
	Get(ctx context.Context, id string) (*entity.HistoryRecord, error)
	List(ctx context.Context, offset, limit int) ([]*entity.HistoryRecord, error)
	Count(ctx context.Context) (int64, error)
}
