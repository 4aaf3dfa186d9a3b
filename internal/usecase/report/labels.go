package report

import "fmt"

// Locale selects a label table.
type Locale string

const (
	LocaleTW Locale = "tw"
	LocaleEN Locale = "en"
	LocaleJA Locale = "ja"
)

// ParseLocale maps a tag to a Locale, defaulting to LocaleTW.
func ParseLocale(s string) Locale {
	switch Locale(s) {
	case LocaleEN:
		return LocaleEN
	case LocaleJA:
		return LocaleJA
	default:
		return LocaleTW
	}
}

// labels is one locale's wording for the payroll card.
type labels struct {
	Title        string
	Greeting     func(e employeeNames) string
	Period       func(year, month int) string
	RegularHours string
	BasePay      string
	NetPay       string
}

type employeeNames struct {
	Chinese string
	English string
}

// ja is declared but has no table of its own yet; it renders with tw.
var labelTables = map[Locale]labels{
	LocaleTW: {
		Title:        "薪資單通知",
		Greeting:     func(e employeeNames) string { return "您好 " + e.Chinese },
		Period:       func(y, m int) string { return fmt.Sprintf("%d年%d月薪資單", y, m) },
		RegularHours: "正常工時",
		BasePay:      "基本薪資",
		NetPay:       "實發薪資",
	},
	LocaleEN: {
		Title:        "Payroll Report",
		Greeting:     func(e employeeNames) string { return "Hello " + e.English },
		Period:       func(y, m int) string { return fmt.Sprintf("Payroll for %d/%d", m, y) },
		RegularHours: "Regular Hours",
		BasePay:      "Base Pay",
		NetPay:       "Net Pay",
	},
}

func labelsFor(l Locale) labels {
	if t, ok := labelTables[l]; ok {
		return t
	}
	return labelTables[LocaleTW]
}
