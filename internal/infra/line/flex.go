package line

// Flex layout building blocks. Only the properties the service renders are modelled.

// FlexComponent is any element that can appear in a box.
type FlexComponent interface {
	FlexType() string
}

// FlexBubble is a single card.
type FlexBubble struct {
	Type   string   `json:"type"`
	Header *FlexBox `json:"header,omitempty"`
	Body   *FlexBox `json:"body,omitempty"`
	Footer *FlexBox `json:"footer,omitempty"`
}

// NewFlexBubble builds a bubble.
func NewFlexBubble(header, body *FlexBox) *FlexBubble {
	return &FlexBubble{Type: "bubble", Header: header, Body: body}
}

// FlexBox lays out its contents vertically or horizontally.
type FlexBox struct {
	Type     string          `json:"type"`
	Layout   string          `json:"layout"`
	Margin   string          `json:"margin,omitempty"`
	Contents []FlexComponent `json:"contents"`
}

func (b *FlexBox) FlexType() string { return b.Type }

// VBox builds a vertical box.
func VBox(contents ...FlexComponent) *FlexBox {
	return &FlexBox{Type: "box", Layout: "vertical", Contents: contents}
}

// HBox builds a horizontal box with the given margin.
func HBox(margin string, contents ...FlexComponent) *FlexBox {
	return &FlexBox{Type: "box", Layout: "horizontal", Margin: margin, Contents: contents}
}

// FlexText is a text element.
type FlexText struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	Size   string `json:"size,omitempty"`
	Weight string `json:"weight,omitempty"`
	Color  string `json:"color,omitempty"`
	Margin string `json:"margin,omitempty"`
	Align  string `json:"align,omitempty"`
	Flex   *int   `json:"flex,omitempty"`
}

func (t *FlexText) FlexType() string { return t.Type }

// Text builds a text element.
func Text(text string) *FlexText {
	return &FlexText{Type: "text", Text: text}
}

// Bold sets weight to bold.
func (t *FlexText) Bold() *FlexText { t.Weight = "bold"; return t }

// WithSize sets the font size keyword.
func (t *FlexText) WithSize(size string) *FlexText { t.Size = size; return t }

// WithColor sets the hex color.
func (t *FlexText) WithColor(color string) *FlexText { t.Color = color; return t }

// WithMargin sets the margin keyword.
func (t *FlexText) WithMargin(margin string) *FlexText { t.Margin = margin; return t }

// WithAlign sets the horizontal alignment.
func (t *FlexText) WithAlign(align string) *FlexText { t.Align = align; return t }

// WithFlex sets the flex ratio.
func (t *FlexText) WithFlex(n int) *FlexText { t.Flex = &n; return t }

// FlexSeparator draws a horizontal rule.
type FlexSeparator struct {
	Type   string `json:"type"`
	Margin string `json:"margin,omitempty"`
}

func (s *FlexSeparator) FlexType() string { return s.Type }

// Separator builds a separator with the given margin.
func Separator(margin string) *FlexSeparator {
	return &FlexSeparator{Type: "separator", Margin: margin}
}
