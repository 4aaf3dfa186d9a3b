package report

import (
	"encoding/json"
	"strings"
	"testing"

	"line-dispatch/internal/domain/entity"
	"line-dispatch/internal/infra/line"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// texts collects every text element of the card in document order.
func texts(t *testing.T, msg entity.Message) []string {
	t.Helper()
	bubble, ok := msg.Contents.(*line.FlexBubble)
	require.True(t, ok, "contents should be a bubble, got %T", msg.Contents)

	var out []string
	var walk func(c line.FlexComponent)
	walk = func(c line.FlexComponent) {
		switch v := c.(type) {
		case *line.FlexText:
			out = append(out, v.Text)
		case *line.FlexBox:
			for _, child := range v.Contents {
				walk(child)
			}
		}
	}
	walk(bubble.Header)
	walk(bubble.Body)
	return out
}

func TestFormatPayroll_English(t *testing.T) {
	r := entity.PayrollReport{
		Month:  3,
		Year:   2024,
		NetPay: 50000,
		Employee: &entity.Employee{
			EnglishName: "Alex",
		},
	}

	msg := FormatPayroll(r, LocaleEN)

	assert.Equal(t, entity.KindFlex, msg.Kind)
	assert.Equal(t, "Payroll Report", msg.AltText)

	got := texts(t, msg)
	assert.Contains(t, got, "Hello Alex")
	assert.Contains(t, got, "Payroll for 3/2024")
	assert.Contains(t, got, "TWD 50000")
	assert.Contains(t, got, "0 hrs")
	assert.Contains(t, got, "TWD 0")
}

func TestFormatPayroll_TraditionalChinese(t *testing.T) {
	r := entity.PayrollReport{
		Year:         2024,
		Month:        11,
		RegularHours: 160.5,
		BasePay:      42000,
		NetPay:       39876.5,
		Employee:     &entity.Employee{ChineseName: "王小明", EnglishName: "Ming"},
	}

	msg := FormatPayroll(r, LocaleTW)

	assert.Equal(t, "薪資單通知", msg.AltText)
	assert.Equal(t, []string{
		"薪資單通知",
		"2024年11月薪資單",
		"您好 王小明",
		"正常工時", "160.5 hrs",
		"基本薪資", "TWD 42000",
		"實發薪資", "TWD 39876.5",
	}, texts(t, msg))
}

func TestFormatPayroll_FallbackLocales(t *testing.T) {
	r := entity.PayrollReport{Year: 2024, Month: 1, Employee: &entity.Employee{ChineseName: "林"}}

	for _, l := range []Locale{LocaleJA, Locale("fr"), Locale("")} {
		t.Run(string(l), func(t *testing.T) {
			msg := FormatPayroll(r, l)
			assert.Equal(t, "薪資單通知", msg.AltText)
			assert.Contains(t, texts(t, msg), "您好 林")
		})
	}
}

func TestFormatPayroll_MissingEmployee(t *testing.T) {
	msg := FormatPayroll(entity.PayrollReport{Year: 2024, Month: 2}, LocaleEN)
	assert.Contains(t, texts(t, msg), "Hello ")
}

func TestFormatPayroll_Layout(t *testing.T) {
	msg := FormatPayroll(entity.PayrollReport{Year: 2024, Month: 5, NetPay: 1}, LocaleEN)

	raw, err := json.Marshal(msg.Contents)
	require.NoError(t, err)

	var card struct {
		Type   string `json:"type"`
		Header struct {
			Layout   string           `json:"layout"`
			Contents []map[string]any `json:"contents"`
		} `json:"header"`
		Body struct {
			Layout   string           `json:"layout"`
			Contents []map[string]any `json:"contents"`
		} `json:"body"`
	}
	require.NoError(t, json.Unmarshal(raw, &card))

	assert.Equal(t, "bubble", card.Type)
	assert.Equal(t, "vertical", card.Header.Layout)
	require.Len(t, card.Header.Contents, 2)
	assert.Equal(t, "xl", card.Header.Contents[0]["size"])
	assert.Equal(t, "#999999", card.Header.Contents[1]["color"])

	kinds := make([]string, 0, len(card.Body.Contents))
	for _, c := range card.Body.Contents {
		kinds = append(kinds, c["type"].(string))
	}
	assert.Equal(t, []string{"text", "separator", "box", "box", "separator", "box"}, kinds)

	netRow := card.Body.Contents[5]
	assert.Equal(t, "horizontal", netRow["layout"])
	cells := netRow["contents"].([]any)
	require.Len(t, cells, 2)
	assert.Equal(t, "bold", cells[0].(map[string]any)["weight"])
	assert.Equal(t, "end", cells[1].(map[string]any)["align"])
	assert.True(t, strings.HasPrefix(cells[1].(map[string]any)["text"].(string), Currency))
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, LocaleEN, ParseLocale("en"))
	assert.Equal(t, LocaleJA, ParseLocale("ja"))
	assert.Equal(t, LocaleTW, ParseLocale("tw"))
	assert.Equal(t, LocaleTW, ParseLocale(""))
	assert.Equal(t, LocaleTW, ParseLocale("de"))
}
