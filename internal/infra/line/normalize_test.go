package line

import (
	"errors"
	"testing"

	"line-dispatch/internal/domain/entity"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	contents := map[string]any{"type": "bubble"}

	tests := []struct {
		name string
		in   []entity.Message
		want []Message
	}{
		{
			name: "text",
			in:   []entity.Message{{Kind: entity.KindText, Text: "hello"}},
			want: []Message{TextMessage{Type: "text", Text: "hello"}},
		},
		{
			name: "text without body becomes empty string",
			in:   []entity.Message{{Kind: entity.KindText}},
			want: []Message{TextMessage{Type: "text", Text: ""}},
		},
		{
			name: "image keeps explicit preview",
			in: []entity.Message{{
				Kind:               entity.KindImage,
				OriginalContentURL: "https://example.com/a.png",
				PreviewImageURL:    "https://example.com/a-thumb.png",
			}},
			want: []Message{ImageMessage{Type: "image", OriginalContentURL: "https://example.com/a.png", PreviewImageURL: "https://example.com/a-thumb.png"}},
		},
		{
			name: "image preview defaults to original",
			in:   []entity.Message{{Kind: entity.KindImage, OriginalContentURL: "https://example.com/a.png"}},
			want: []Message{ImageMessage{Type: "image", OriginalContentURL: "https://example.com/a.png", PreviewImageURL: "https://example.com/a.png"}},
		},
		{
			name: "flex default alt text",
			in:   []entity.Message{{Kind: entity.KindFlex, Contents: contents}},
			want: []Message{FlexMessage{Type: "flex", AltText: "Flex Message", Contents: contents}},
		},
		{
			name: "flex keeps alt text",
			in:   []entity.Message{{Kind: entity.KindFlex, AltText: "Payroll", Contents: contents}},
			want: []Message{FlexMessage{Type: "flex", AltText: "Payroll", Contents: contents}},
		},
		{
			name: "order preserved",
			in: []entity.Message{
				{Kind: entity.KindText, Text: "first"},
				{Kind: entity.KindImage, OriginalContentURL: "u"},
				{Kind: entity.KindText, Text: "third"},
			},
			want: []Message{
				TextMessage{Type: "text", Text: "first"},
				ImageMessage{Type: "image", OriginalContentURL: "u", PreviewImageURL: "u"},
				TextMessage{Type: "text", Text: "third"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize_UnsupportedKind(t *testing.T) {
	for _, kind := range []entity.MessageKind{
		entity.KindVideo, entity.KindAudio, entity.KindFile, entity.KindLocation,
		entity.KindSticker, entity.KindTemplate, "carousel",
	} {
		t.Run(string(kind), func(t *testing.T) {
			got, err := Normalize([]entity.Message{{Kind: entity.KindText, Text: "ok"}, {Kind: kind}})
			if !errors.Is(err, entity.ErrUnsupportedMessageKind) {
				t.Fatalf("expected ErrUnsupportedMessageKind, got %v", err)
			}
			var uk *entity.UnsupportedKindError
			if !errors.As(err, &uk) || uk.Kind != kind {
				t.Errorf("expected kind %q in error, got %v", kind, err)
			}
			if got != nil {
				t.Errorf("expected nil output on failure, got %v", got)
			}
		})
	}
}
