package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"line-dispatch/internal/domain/entity"
	"line-dispatch/internal/infra/db"
	"line-dispatch/internal/repository"
)

type MessageHistoryRepo struct{ db db.Querier }

func NewMessageHistoryRepo(q db.Querier) repository.MessageHistoryRepository {
	return &MessageHistoryRepo{db: q}
}

const selectColumns = `
SELECT id, message_id, type, content, recipients, status, sent_at, delivered_at,
       error, recipient_statuses, sender, created_at, updated_at
FROM line_messages`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord decodes one line_messages row including its JSON text columns.
func scanRecord(s rowScanner) (*entity.HistoryRecord, error) {
	var (
		rec                                   entity.HistoryRecord
		contentJSON, recipientsJSON, perRecip []byte
		sentAt, deliveredAt                   sql.NullTime
		errMsg                                sql.NullString
	)
	if err := s.Scan(
		&rec.ID, &rec.MessageID, &rec.Type, &contentJSON, &recipientsJSON,
		&rec.Status.Status, &sentAt, &deliveredAt, &errMsg, &perRecip,
		&rec.Sender, &rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(contentJSON, &rec.Content); err != nil {
		return nil, fmt.Errorf("unmarshal content: %w", err)
	}
	if err := json.Unmarshal(recipientsJSON, &rec.Recipients); err != nil {
		return nil, fmt.Errorf("unmarshal recipients: %w", err)
	}
	if len(perRecip) > 0 {
		if err := json.Unmarshal(perRecip, &rec.Status.Recipients); err != nil {
			return nil, fmt.Errorf("unmarshal recipient_statuses: %w", err)
		}
	}

	rec.Status.MessageID = rec.MessageID
	if sentAt.Valid {
		rec.Status.SentAt = &sentAt.Time
	}
	if deliveredAt.Valid {
		rec.Status.DeliveredAt = &deliveredAt.Time
	}
	if errMsg.Valid {
		rec.Status.Error = &errMsg.String
	}
	return &rec, nil
}

func (repo *MessageHistoryRepo) Create(ctx context.Context, rec *entity.HistoryRecord) error {
	contentJSON, err := json.Marshal(rec.Content)
	if err != nil {
		return fmt.Errorf("Create: marshal content: %w", err)
	}
	recipientsJSON, err := json.Marshal(rec.Recipients)
	if err != nil {
		return fmt.Errorf("Create: marshal recipients: %w", err)
	}
	var perRecip *string
	if len(rec.Status.Recipients) > 0 {
		b, err := json.Marshal(rec.Status.Recipients)
		if err != nil {
			return fmt.Errorf("Create: marshal recipient_statuses: %w", err)
		}
		s := string(b)
		perRecip = &s
	}

	const query = `
INSERT INTO line_messages
  (id, message_id, type, content, recipients, status, sent_at, delivered_at,
   error, recipient_statuses, sender, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = repo.db.ExecContext(ctx, query,
		rec.ID, rec.MessageID, string(rec.Type), string(contentJSON), string(recipientsJSON),
		string(rec.Status.Status), utcPtr(rec.Status.SentAt), utcPtr(rec.Status.DeliveredAt),
		rec.Status.Error, perRecip, rec.Sender, rec.CreatedAt.UTC(), rec.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *MessageHistoryRepo) Get(ctx context.Context, id string) (*entity.HistoryRecord, error) {
	rec, err := scanRecord(repo.db.QueryRowContext(ctx, selectColumns+`
WHERE id = ?
LIMIT 1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return rec, nil
}

func (repo *MessageHistoryRepo) List(ctx context.Context, offset, limit int) ([]*entity.HistoryRecord, error) {
	rows, err := repo.db.QueryContext(ctx, selectColumns+`
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]*entity.HistoryRecord, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return records, nil
}

func (repo *MessageHistoryRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM line_messages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

// utcPtr normalizes optional timestamps so that text ordering matches time ordering.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
