package render

import (
	"fmt"
	"strings"

	"planfairy/internal/domain"
)

// renderUnit emits the unit plan: header table, then the grouped sections
// Core Components, Learning Cycle, Progression & Misconceptions, and the
// Pacing Guide with one table per configured week.
func renderUnit(f *domain.PlanForm, selected []string) string {
	var b strings.Builder

	b.WriteString("<h1>Unit Plan")
	if strings.TrimSpace(f.Topic) != "" {
		b.WriteString(" — ")
		b.WriteString(EscapeText(f.Topic))
	}
	b.WriteString("</h1>")

	b.WriteString(kvTable([][2]string{
		{"Subject", orPlaceholder(f.Subject, "[subject]")},
		{"Framework", orPlaceholder(f.Taxonomy(), "[framework]")},
		{"Grade Band", orPlaceholder(f.GradeBand, "[grade]")},
		{"Length of Time", orPlaceholder(f.LengthOfTime, "[length]")},
		{"Standards", orPlaceholder(joinStandards(selected), "[mapped]")},
	}))

	b.WriteString("<h2>Core Components</h2>")
	b.WriteString(htmlList("Essential Questions", f.EssentialQuestions))
	b.WriteString(htmlList("Vocabulary", f.Vocabulary))
	b.WriteString(htmlList("Must Know", f.MustKnow))
	b.WriteString(htmlList("Must Do", f.MustDo))

	b.WriteString("<h2>Learning Cycle</h2>")
	objectiveLabel := "Objective"
	if f.ObjectiveStyle != "" {
		objectiveLabel = "Objective (" + f.ObjectiveStyle + ")"
	}
	b.WriteString(kvTable([][2]string{
		{objectiveLabel, orPlaceholder(f.Objective, "[objective]")},
		{"Key Activities", orPlaceholder(f.Activity, "[activity]")},
		{"Checks for Understanding", orPlaceholder(f.Checks, "[checks]")},
		{"Materials", orPlaceholder(strings.Join(f.Materials, ", "), "[materials]")},
	}))

	b.WriteString("<h2>Progression &amp; Misconceptions</h2>")
	b.WriteString(htmlList("Learning Progression", f.Progression))
	b.WriteString(kvTable([][2]string{
		{"Common Misconceptions", orPlaceholder(f.Misconceptions, "[misconceptions]")},
		{"Differentiation", orPlaceholder(f.Differentiation, "[differentiation]")},
		{"Accommodations", orPlaceholder(f.Accommodations, "[accommodations]")},
	}))

	b.WriteString("<h2>Pacing Guide</h2>")
	for i, week := range f.Weeks {
		b.WriteString(pacingWeekTable(i+1, week))
	}

	return b.String()
}

func pacingWeekTable(n int, w domain.PacingWeek) string {
	title := w.Title
	if strings.TrimSpace(title) == "" {
		title = fmt.Sprintf("Week %d", n)
	}
	var b strings.Builder
	b.WriteString("<h3>")
	b.WriteString(EscapeText(title))
	b.WriteString("</h3>")
	b.WriteString(kvTable([][2]string{
		{"Objective", orPlaceholder(w.Objective, "[objective]")},
		{"Common Errors", orPlaceholder(w.CommonErrors, "[errors]")},
		{"Notes", orPlaceholder(w.Notes, "[notes]")},
	}))
	return b.String()
}
