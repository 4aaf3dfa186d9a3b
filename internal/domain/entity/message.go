// Package entity defines the core domain entities of the dispatch service.
// It contains the caller-facing message model, delivery status, history records
// and the payroll report consumed by the report formatter, along with the
// domain-specific errors shared by every layer.
package entity

// MessageKind discriminates the abstract message kinds accepted by the dispatcher.
type MessageKind string

const (
	KindText     MessageKind = "text"
	KindImage    MessageKind = "image"
	KindVideo    MessageKind = "video"
	KindAudio    MessageKind = "audio"
	KindFile     MessageKind = "file"
	KindLocation MessageKind = "location"
	KindSticker  MessageKind = "sticker"
	KindTemplate MessageKind = "template"
	KindFlex     MessageKind = "flex"
)

// Valid reports whether k is one of the declared message kinds.
// Declared is not the same as sendable: the normalizer accepts a narrower set.
func (k MessageKind) Valid() bool {
	switch k {
	case KindText, KindImage, KindVideo, KindAudio, KindFile,
		KindLocation, KindSticker, KindTemplate, KindFlex:
		return true
	}
	return false
}

// Message is a caller-constructed, platform-neutral message description.
// Only the fields relevant to Kind are expected to be set; absent fields are
// zero values and are never rejected at construction time.
type Message struct {
	Kind MessageKind `json:"type"`

	Text string `json:"text,omitempty"`

	// Sticker
	PackageID string `json:"packageId,omitempty"`
	StickerID string `json:"stickerId,omitempty"`

	// Image / video / audio
	OriginalContentURL string `json:"originalContentUrl,omitempty"`
	PreviewImageURL    string `json:"previewImageUrl,omitempty"`

	// Location
	Title     string  `json:"title,omitempty"`
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`

	// File
	FileName string `json:"fileName,omitempty"`
	FileSize int64  `json:"fileSize,omitempty"`

	// Template / flex
	AltText  string `json:"altText,omitempty"`
	Template any    `json:"template,omitempty"`
	Contents any    `json:"contents,omitempty"`
}

// RecipientKind is the platform-side kind of a recipient identifier.
type RecipientKind string

const (
	RecipientUser  RecipientKind = "user"
	RecipientGroup RecipientKind = "group"
	RecipientRoom  RecipientKind = "room"
)

// Recipient addresses a single platform user, group or room.
type Recipient struct {
	ID          string        `json:"id"`
	Kind        RecipientKind `json:"type,omitempty"`
	DisplayName string        `json:"displayName,omitempty"`
}

// BroadcastMarker is recorded as the only recipient of a send to all followers.
const BroadcastMarker = "broadcast"

// RecipientIDs returns the identifiers of rs in order.
func RecipientIDs(rs []Recipient) []string {
	ids := make([]string, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.ID)
	}
	return ids
}
