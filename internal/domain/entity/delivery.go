package entity

import "time"

// DeliveryState is the lifecycle state of a dispatched message.
//
// The dispatcher itself only ever produces StateSent. StatePending is the
// storage default, and StateDelivered / StateFailed exist for collaborators that
// observe delivery out of band.
type DeliveryState string

const (
	StatePending   DeliveryState = "pending"
	StateSent      DeliveryState = "sent"
	StateDelivered DeliveryState = "delivered"
	StateFailed    DeliveryState = "failed"
)

// Valid reports whether s is a known delivery state.
func (s DeliveryState) Valid() bool {
	switch s {
	case StatePending, StateSent, StateDelivered, StateFailed:
		return true
	}
	return false
}

// RecipientStatus is the per-recipient breakdown of a multicast or broadcast.
type RecipientStatus struct {
	ID     string        `json:"id"`
	Status DeliveryState `json:"status"`
	Error  string        `json:"error,omitempty"`
}

// DeliveryStatus is the outcome of a single dispatch attempt.
type DeliveryStatus struct {
	// MessageID is the platform-assigned request id, empty when the platform omitted it.
	MessageID   string            `json:"messageId"`
	Status      DeliveryState     `json:"status"`
	SentAt      *time.Time        `json:"sentAt,omitempty"`
	DeliveredAt *time.Time        `json:"deliveredAt,omitempty"`
	Error       *string           `json:"error,omitempty"`
	Recipients  []RecipientStatus `json:"recipients,omitempty"`
}

// HistoryRecord is the persisted ledger entry for one dispatch attempt.
//
// Type holds the kind of the first message only, so a mixed batch is recorded
// under a single kind. Content keeps the outbound messages verbatim.
type HistoryRecord struct {
	ID         string         `json:"id"`
	MessageID  string         `json:"messageId"`
	Type       MessageKind    `json:"type"`
	Content    []Message      `json:"content"`
	Recipients []string       `json:"recipients"`
	Status     DeliveryStatus `json:"status"`
	Sender     string         `json:"sender,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}
