// Package report renders domain records into rich flex messages.
package report

import (
	"strconv"

	"line-dispatch/internal/domain/entity"
	"line-dispatch/internal/infra/line"
)

// Currency is the unit label printed before every amount.
const Currency = "TWD"

const periodColor = "#999999"

// FormatPayroll builds the payroll summary card for report in the given locale.
// Missing numeric fields render as 0 and a missing employee renders an empty name.
func FormatPayroll(r entity.PayrollReport, locale Locale) entity.Message {
	t := labelsFor(locale)

	var names employeeNames
	if r.Employee != nil {
		names = employeeNames{Chinese: r.Employee.ChineseName, English: r.Employee.EnglishName}
	}

	header := line.VBox(
		line.Text(t.Title).Bold().WithSize("xl"),
		line.Text(t.Period(r.Year, r.Month)).WithSize("sm").WithColor(periodColor),
	)

	body := line.VBox(
		line.Text(t.Greeting(names)).Bold().WithMargin("md"),
		line.Separator("md"),
		row("md", false, t.RegularHours, formatNumber(r.RegularHours)+" hrs"),
		row("sm", false, t.BasePay, amount(r.BasePay)),
		line.Separator("md"),
		row("md", true, t.NetPay, amount(r.NetPay)),
	)

	return entity.Message{
		Kind:     entity.KindFlex,
		AltText:  t.Title,
		Contents: line.NewFlexBubble(header, body),
	}
}

// row is a two-column label/value line with the value right-aligned.
func row(margin string, bold bool, label, value string) *line.FlexBox {
	l := line.Text(label).WithFlex(2)
	v := line.Text(value).WithFlex(1).WithAlign("end")
	if bold {
		l.Bold()
		v.Bold()
	}
	return line.HBox(margin, l, v)
}

func amount(v float64) string {
	return Currency + " " + formatNumber(v)
}

// formatNumber prints integers without a fractional part and keeps
// the shortest exact representation otherwise.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
