package render

import (
	"strings"

	"planfairy/internal/domain"
)

// renderDaily emits the daily plan: a top-level heading and one two-column
// table whose row set is driven by the ordered field specs.
func renderDaily(f *domain.PlanForm, selected []string, specs []FieldSpec) string {
	var b strings.Builder

	b.WriteString("<h1>Daily Plan")
	if strings.TrimSpace(f.Topic) != "" {
		b.WriteString(" — ")
		b.WriteString(EscapeText(f.Topic))
	}
	b.WriteString("</h1>")

	rows := make([][2]string, 0, len(specs))
	for _, spec := range specs {
		if !spec.Enabled {
			continue
		}
		rows = append(rows, [2]string{dailyLabel(spec, f), dailyValue(spec, f, selected)})
	}
	b.WriteString(kvTable(rows))

	return b.String()
}

func dailyLabel(spec FieldSpec, f *domain.PlanForm) string {
	if spec.Key == "objective" && f.ObjectiveStyle != "" {
		return spec.Label + " (" + f.ObjectiveStyle + ")"
	}
	return spec.Label
}

func dailyValue(spec FieldSpec, f *domain.PlanForm, selected []string) string {
	switch spec.Key {
	case "date":
		return orPlaceholder(f.Date, spec.Placeholder)
	case "topic":
		return orPlaceholder(f.Topic, spec.Placeholder)
	case "grade":
		return orPlaceholder(f.GradeBand, spec.Placeholder)
	case "standards":
		return orPlaceholder(joinStandards(selected), spec.Placeholder)
	case "criteria":
		return orPlaceholder(f.Criteria, spec.Placeholder)
	case "objective":
		return orPlaceholder(f.Objective, spec.Placeholder)
	case "activity":
		return orPlaceholder(f.Activity, spec.Placeholder)
	case "checks":
		return orPlaceholder(f.Checks, spec.Placeholder)
	case "differentiation":
		return orPlaceholder(f.Differentiation, spec.Placeholder)
	case "accommodations":
		return orPlaceholder(f.Accommodations, spec.Placeholder)
	case "materials":
		return orPlaceholder(strings.Join(f.Materials, ", "), spec.Placeholder)
	case "interventions":
		return orPlaceholder(f.Interventions, spec.Placeholder)
	case "exemplar":
		return orPlaceholder(f.Exemplar, spec.Placeholder)
	case "attachments":
		return orPlaceholder(attachmentNames(f.Attachments), spec.Placeholder)
	default:
		return spec.Placeholder
	}
}
