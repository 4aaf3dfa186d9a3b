package line

import "line-dispatch/internal/domain/entity"

// DefaultFlexAltText is used when a flex message carries no alt text.
const DefaultFlexAltText = "Flex Message"

// Normalize maps domain messages to wire messages, one-to-one and in order.
// Only text, image and flex are accepted; any other kind fails with
// *entity.UnsupportedKindError and nothing is returned.
func Normalize(messages []entity.Message) ([]Message, error) {
	out := make([]Message, 0, len(messages))
	for _, m := range messages {
		switch m.Kind {
		case entity.KindText:
			out = append(out, NewTextMessage(m.Text))
		case entity.KindImage:
			preview := m.PreviewImageURL
			if preview == "" {
				preview = m.OriginalContentURL
			}
			out = append(out, NewImageMessage(m.OriginalContentURL, preview))
		case entity.KindFlex:
			alt := m.AltText
			if alt == "" {
				alt = DefaultFlexAltText
			}
			out = append(out, NewFlexMessage(alt, m.Contents))
		default:
			return nil, &entity.UnsupportedKindError{Kind: m.Kind}
		}
	}
	return out, nil
}
