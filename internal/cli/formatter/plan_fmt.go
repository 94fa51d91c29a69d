package formatter

import (
	"fmt"
	"html"
	"strings"

	"planfairy/internal/domain"
	"planfairy/internal/render"
)

// FormatPlanSummary renders the current form and selection as a terminal
// summary block.
func FormatPlanSummary(state *domain.ProjectState) string {
	form := &state.Form

	var b strings.Builder
	b.WriteString(Header("Plan") + "\n")

	rows := [][]string{
		{"Type", string(form.Type)},
		{"State", form.State},
		{"Subject", form.Subject},
		{"Grade Band", form.GradeBand},
		{"Framework", form.Taxonomy()},
		{"Objective Style", form.ObjectiveStyle},
		{"Topic", orDim(form.Topic)},
		{"Materials", orDim(strings.Join(form.Materials, ", "))},
	}
	b.WriteString(RenderTable([]string{"Field", "Value"}, rows))

	if form.Type == domain.PlanWeekly {
		b.WriteString("\n" + Header("Days") + "\n")
		dayRows := make([][]string, 0, len(form.Days))
		for i, day := range form.Days {
			dayRows = append(dayRows, []string{
				fmt.Sprintf("Day %d", i+1),
				orDim(day.Date),
				orDim(day.Topic),
				fmt.Sprintf("%d", len(day.Attachments)),
			})
		}
		b.WriteString(RenderTable([]string{"Slot", "Date", "Topic", "Files"}, dayRows))
	}

	b.WriteString("\n" + Header("Standards") + "\n")
	if len(state.SelectedStandards) == 0 {
		b.WriteString(Dim("none selected") + "\n")
	} else {
		for _, s := range state.SelectedStandards {
			b.WriteString("  " + StyleGreen.Render("•") + " " + s + "\n")
		}
	}

	return b.String()
}

// FormatSuggestions renders suggestion results, marking already-selected
// entries.
func FormatSuggestions(displays []string, selected map[string]bool) string {
	if len(displays) == 0 {
		return Dim("No suggestions for this catalog key.")
	}

	var b strings.Builder
	for i, d := range displays {
		marker := Dim(" ")
		if selected[d] {
			marker = StyleGreen.Render("✓")
		}
		b.WriteString(fmt.Sprintf("%3d %s %s\n", i+1, marker, d))
	}
	return strings.TrimRight(b.String(), "\n")
}

// PreviewText converts a rendered plan fragment into plain terminal text:
// block boundaries become line breaks, tags are stripped, entities decoded.
func PreviewText(fragment string) string {
	s := fragment
	for _, closer := range []string{"</h1>", "</h2>", "</h3>", "</h4>", "</p>", "</li>", "</tr>", "</table>"} {
		s = strings.ReplaceAll(s, closer, closer+"\n")
	}
	s = strings.ReplaceAll(s, "<br/>", "\n")
	s = strings.ReplaceAll(s, "</th>", " | ")
	s = strings.ReplaceAll(s, "</td>", " | ")

	s = html.UnescapeString(render.StripTags(s))

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(strings.TrimSpace(line), "|")
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func orDim(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("(unset)")
	}
	return s
}
