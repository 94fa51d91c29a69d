// Package render turns a completed plan form into a constrained HTML
// fragment: a top-level heading followed by headings, paragraphs, lists and
// tables only. Rendering is pure: same form in, same fragment out, with no
// clock or network dependency.
package render

import (
	"fmt"
	"strings"

	"planfairy/internal/domain"
)

// Render produces the HTML fragment for the form's plan type.
func Render(form *domain.PlanForm, selectedStandards []string) (string, error) {
	switch form.Type {
	case domain.PlanDaily:
		return renderDaily(form, selectedStandards, DailyFieldSpecs()), nil
	case domain.PlanWeekly:
		return renderWeekly(form, selectedStandards), nil
	case domain.PlanUnit:
		return renderUnit(form, selectedStandards), nil
	default:
		return "", fmt.Errorf("cannot render plan type %q", form.Type)
	}
}

// orPlaceholder substitutes the bracketed placeholder for empty values in
// fixed-shape tables.
func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return MultilineHTML(value)
}

// kvTable renders a two-column label/value table. Values are expected to be
// escaped already.
func kvTable(rows [][2]string) string {
	var b strings.Builder
	b.WriteString("<table><tbody>")
	for _, r := range rows {
		b.WriteString("<tr><th>")
		b.WriteString(EscapeText(r[0]))
		b.WriteString("</th><td>")
		b.WriteString(r[1])
		b.WriteString("</td></tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

// htmlList renders an optional group heading plus an unordered list of the
// escaped items. An empty list renders as an empty string: inline list
// blocks are omitted entirely, unlike the fixed-shape tables.
func htmlList(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	if title != "" {
		b.WriteString("<h4>")
		b.WriteString(EscapeText(title))
		b.WriteString("</h4>")
	}
	b.WriteString("<ul>")
	for _, it := range items {
		b.WriteString("<li>")
		b.WriteString(MultilineHTML(it))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// joinStandards renders the selected standards as a single semicolon-joined
// cell value, or empty when none are selected.
func joinStandards(selected []string) string {
	return strings.Join(selected, "; ")
}

// attachmentNames lists file names for an attachments cell.
func attachmentNames(refs []domain.FileRef) string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}
