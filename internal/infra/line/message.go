package line

// Message is a wire-format message object of the Messaging API.
type Message interface {
	MessageType() string
}

// TextMessage is a plain text message.
type TextMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewTextMessage builds a text message.
func NewTextMessage(text string) TextMessage {
	return TextMessage{Type: "text", Text: text}
}

func (m TextMessage) MessageType() string { return m.Type }

// ImageMessage is an image message.
type ImageMessage struct {
	Type               string `json:"type"`
	OriginalContentURL string `json:"originalContentUrl"`
	PreviewImageURL    string `json:"previewImageUrl"`
}

// NewImageMessage builds an image message.
func NewImageMessage(original, preview string) ImageMessage {
	return ImageMessage{Type: "image", OriginalContentURL: original, PreviewImageURL: preview}
}

func (m ImageMessage) MessageType() string { return m.Type }

// VideoMessage is a video message.
type VideoMessage struct {
	Type               string `json:"type"`
	OriginalContentURL string `json:"originalContentUrl"`
	PreviewImageURL    string `json:"previewImageUrl"`
}

// NewVideoMessage builds a video message.
func NewVideoMessage(original, preview string) VideoMessage {
	return VideoMessage{Type: "video", OriginalContentURL: original, PreviewImageURL: preview}
}

func (m VideoMessage) MessageType() string { return m.Type }

// AudioMessage is an audio message. Duration is in milliseconds.
type AudioMessage struct {
	Type               string `json:"type"`
	OriginalContentURL string `json:"originalContentUrl"`
	Duration           int    `json:"duration"`
}

// NewAudioMessage builds an audio message.
func NewAudioMessage(original string, durationMS int) AudioMessage {
	return AudioMessage{Type: "audio", OriginalContentURL: original, Duration: durationMS}
}

func (m AudioMessage) MessageType() string { return m.Type }

// FlexMessage is a rich layout message. Contents is passed through as-is.
type FlexMessage struct {
	Type     string `json:"type"`
	AltText  string `json:"altText"`
	Contents any    `json:"contents"`
}

// NewFlexMessage builds a flex message.
func NewFlexMessage(altText string, contents any) FlexMessage {
	return FlexMessage{Type: "flex", AltText: altText, Contents: contents}
}

func (m FlexMessage) MessageType() string { return m.Type }

// TemplateMessage is a template message.
type TemplateMessage struct {
	Type     string `json:"type"`
	AltText  string `json:"altText"`
	Template any    `json:"template"`
}

// NewTemplateMessage builds a template message.
func NewTemplateMessage(altText string, template any) TemplateMessage {
	return TemplateMessage{Type: "template", AltText: altText, Template: template}
}

func (m TemplateMessage) MessageType() string { return m.Type }

// ButtonsTemplate is a template with a text and up to four actions.
type ButtonsTemplate struct {
	Type    string      `json:"type"`
	Text    string      `json:"text"`
	Actions []URIAction `json:"actions"`
}

// NewButtonsTemplate builds a buttons template.
func NewButtonsTemplate(text string, actions ...URIAction) ButtonsTemplate {
	return ButtonsTemplate{Type: "buttons", Text: text, Actions: actions}
}

// URIAction opens a URI when tapped.
type URIAction struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	URI   string `json:"uri"`
}

// NewURIAction builds a uri action.
func NewURIAction(label, uri string) URIAction {
	return URIAction{Type: "uri", Label: label, URI: uri}
}
