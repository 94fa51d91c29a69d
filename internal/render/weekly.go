package render

import (
	"fmt"
	"strings"

	"planfairy/internal/domain"
)

// WeeklyColumns is the exact per-day column set, in order. Downstream
// word-processor import depends on these header cells verbatim; never
// reorder or rename them.
var WeeklyColumns = []string{
	"Day", "Date", "Topic", "Key Activities", "Assessment/Exit",
	"Materials", "Notes", "Attachments",
}

// renderWeekly emits the weekly plan: a header table of week-level fields
// followed by exactly one table per configured day.
func renderWeekly(f *domain.PlanForm, selected []string) string {
	var b strings.Builder

	b.WriteString("<h1>Weekly Plan")
	if strings.TrimSpace(f.Topic) != "" {
		b.WriteString(" — ")
		b.WriteString(EscapeText(f.Topic))
	}
	b.WriteString("</h1>")

	b.WriteString(kvTable([][2]string{
		{"Subject", orPlaceholder(f.Subject, "[subject]")},
		{"Grade Band", orPlaceholder(f.GradeBand, "[grade]")},
		{"Framework", orPlaceholder(f.Taxonomy(), "[framework]")},
		{"Standards", orPlaceholder(joinStandards(selected), "[mapped]")},
		{"Materials", orPlaceholder(strings.Join(f.Materials, ", "), "[materials]")},
	}))

	for i, day := range f.ActiveDays() {
		b.WriteString(dayTable(i+1, day))
	}

	return b.String()
}

// dayTable renders one day of a weekly plan with the contractual column
// set. Empty cells carry placeholders; the table shape never varies.
func dayTable(n int, d domain.DaySlot) string {
	var b strings.Builder
	b.WriteString("<table><thead><tr>")
	for _, col := range WeeklyColumns {
		b.WriteString("<th>")
		b.WriteString(col)
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody><tr>")

	cells := []string{
		EscapeText(fmt.Sprintf("Day %d", n)),
		orPlaceholder(d.Date, "[date]"),
		orPlaceholder(d.Topic, "[topic]"),
		orPlaceholder(d.Activities, "[activities]"),
		orPlaceholder(d.Assessment, "[assessment]"),
		orPlaceholder(d.Materials, "[materials]"),
		orPlaceholder(d.Notes, "[notes]"),
		orPlaceholder(attachmentNames(d.Attachments), "[none]"),
	}
	for _, c := range cells {
		b.WriteString("<td>")
		b.WriteString(c)
		b.WriteString("</td>")
	}

	b.WriteString("</tr></tbody></table>")
	return b.String()
}
