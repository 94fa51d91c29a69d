package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"planfairy/internal/cli/formatter"
	"planfairy/internal/domain"
)

// planfairyHuhTheme returns the shared huh theme for all interactive forms.
func planfairyHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// planTypeSelect builds the plan type selector.
func planTypeSelect(value *string) *huh.Select[string] {
	types := []domain.PlanType{domain.PlanDaily, domain.PlanWeekly, domain.PlanUnit}
	options := make([]huh.Option[string], 0, len(types))
	for _, t := range types {
		options = append(options, huh.NewOption(string(t), string(t)))
	}
	return huh.NewSelect[string]().
		Title("Plan Type").
		Options(options...).
		Value(value)
}

// sharedFieldsGroup collects the scalar fields every plan type carries.
func sharedFieldsGroup(form *domain.PlanForm) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().Title("State / Jurisdiction").Placeholder("Colorado").Value(&form.State),
		huh.NewInput().Title("Subject").Placeholder("Social Studies").Value(&form.Subject),
		huh.NewInput().Title("Grade Band").Placeholder("6-8").Value(&form.GradeBand),
		huh.NewInput().Title("Framework").Value(&form.Framework),
		huh.NewInput().Title("Custom Taxonomy (overrides framework)").Value(&form.CustomTaxonomy),
		huh.NewInput().Title("Objective Style").Placeholder("I can…").Value(&form.ObjectiveStyle),
		huh.NewInput().Title("Topic").Value(&form.Topic),
	)
}

// dailyFieldsGroup collects the daily-specific free text fields.
func dailyFieldsGroup(form *domain.PlanForm) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().Title("Date").Placeholder("2026-09-07").Value(&form.Date),
		huh.NewText().Title("Success Criteria").Value(&form.Criteria),
		huh.NewText().Title("Objective").Value(&form.Objective),
		huh.NewText().Title("Learning Activity").Value(&form.Activity),
		huh.NewText().Title("Checks for Understanding").Value(&form.Checks),
		huh.NewText().Title("Differentiation").Value(&form.Differentiation),
		huh.NewText().Title("Accommodations").Value(&form.Accommodations),
		huh.NewText().Title("Interventions").Value(&form.Interventions),
		huh.NewText().Title("Exemplar").Value(&form.Exemplar),
	)
}

// daySlotGroup edits one weekly day slot.
func daySlotGroup(i int, day *domain.DaySlot) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().Title(fmt.Sprintf("Day %d Date", i+1)).Placeholder("2026-09-07").Value(&day.Date),
		huh.NewInput().Title(fmt.Sprintf("Day %d Topic", i+1)).Value(&day.Topic),
		huh.NewText().Title("Key Activities").Value(&day.Activities),
		huh.NewText().Title("Assessment / Exit").Value(&day.Assessment),
		huh.NewInput().Title("Materials").Value(&day.Materials),
		huh.NewText().Title("Notes").Value(&day.Notes),
	)
}

// unitFieldsGroup collects the unit-level fields. List-valued fields are
// edited as one item per line.
func unitFieldsGroup(form *domain.PlanForm, lists *unitListInputs) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().Title("Length of Time").Placeholder("3 weeks").Value(&form.LengthOfTime),
		huh.NewText().Title("Essential Questions (one per line)").Value(&lists.EssentialQuestions),
		huh.NewText().Title("Vocabulary (one per line)").Value(&lists.Vocabulary),
		huh.NewText().Title("Students Must Know (one per line)").Value(&lists.MustKnow),
		huh.NewText().Title("Students Must Do (one per line)").Value(&lists.MustDo),
		huh.NewText().Title("Learning Progression (one step per line)").Value(&lists.Progression),
		huh.NewText().Title("Common Misconceptions").Value(&form.Misconceptions),
	)
}

// unitListInputs buffers list fields as newline-joined text for the wizard.
type unitListInputs struct {
	EssentialQuestions string
	Vocabulary         string
	MustKnow           string
	MustDo             string
	Progression        string
}

func newUnitListInputs(form *domain.PlanForm) *unitListInputs {
	return &unitListInputs{
		EssentialQuestions: joinLines(form.EssentialQuestions),
		Vocabulary:         joinLines(form.Vocabulary),
		MustKnow:           joinLines(form.MustKnow),
		MustDo:             joinLines(form.MustDo),
		Progression:        joinLines(form.Progression),
	}
}

func (u *unitListInputs) apply(form *domain.PlanForm) {
	form.EssentialQuestions = splitLines(u.EssentialQuestions)
	form.Vocabulary = splitLines(u.Vocabulary)
	form.MustKnow = splitLines(u.MustKnow)
	form.MustDo = splitLines(u.MustDo)
	form.Progression = splitLines(u.Progression)
}

// typeForm asks for the plan type before the main wizard so the right
// variant groups are shown.
func typeForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(planTypeSelect(value)),
	).WithTheme(planfairyHuhTheme()).WithShowHelp(false)
}

// editForm assembles the wizard for the form's current plan type. For unit
// plans the returned inputs must be applied back after the form runs.
func editForm(form *domain.PlanForm) (*huh.Form, *unitListInputs) {
	groups := []*huh.Group{sharedFieldsGroup(form)}
	var lists *unitListInputs

	switch form.Type {
	case domain.PlanDaily:
		groups = append(groups, dailyFieldsGroup(form))
	case domain.PlanWeekly:
		for i := range form.Days {
			groups = append(groups, daySlotGroup(i, &form.Days[i]))
		}
	case domain.PlanUnit:
		lists = newUnitListInputs(form)
		groups = append(groups, unitFieldsGroup(form, lists))
	}

	return huh.NewForm(groups...).WithTheme(planfairyHuhTheme()).WithShowHelp(false), lists
}
