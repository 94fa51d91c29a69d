package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"planfairy/internal/cli/formatter"
	"planfairy/internal/domain"
	"planfairy/internal/extract"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "View and edit the working plan",
	}

	cmd.AddCommand(
		newPlanShowCmd(app),
		newPlanTypeCmd(app),
		newPlanSetCmd(app),
		newPlanEditCmd(app),
		newPlanDayCmd(app),
		newPlanWeekCmd(app),
		newPlanAttachCmd(app),
		newPlanResetCmd(app),
	)

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the working plan summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(context.Background(), app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanSummary(state))
			return nil
		},
	}
}

func newPlanTypeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "type {daily|weekly|unit}",
		Short: "Switch the plan type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			planType, err := domain.ParsePlanType(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			state, err := loadState(ctx, app)
			if err != nil {
				return err
			}

			// Switching type keeps the shared fields; the variant
			// sections stay in place for switching back.
			state.Form.Type = planType
			if planType == domain.PlanWeekly && len(state.Form.Days) == 0 {
				state.Form.Days = make([]domain.DaySlot, domain.MaxDaySlots)
			}

			if err := saveState(ctx, app, state); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan type set to %s\n", planType)
			return nil
		},
	}
}

// planSetFields maps --flag names to form string fields.
func planSetFields(form *domain.PlanForm) map[string]*string {
	return map[string]*string{
		"state":           &form.State,
		"subject":         &form.Subject,
		"grade-band":      &form.GradeBand,
		"framework":       &form.Framework,
		"taxonomy":        &form.CustomTaxonomy,
		"objective-style": &form.ObjectiveStyle,
		"topic":           &form.Topic,
		"date":            &form.Date,
		"objective":       &form.Objective,
		"criteria":        &form.Criteria,
		"activity":        &form.Activity,
		"checks":          &form.Checks,
		"differentiation": &form.Differentiation,
		"accommodations":  &form.Accommodations,
		"interventions":   &form.Interventions,
		"exemplar":        &form.Exemplar,
		"length-of-time":  &form.LengthOfTime,
		"misconceptions":  &form.Misconceptions,
	}
}

func newPlanSetCmd(app *App) *cobra.Command {
	values := map[string]*string{}
	var materials string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set plan fields from flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			state, err := loadState(ctx, app)
			if err != nil {
				return err
			}

			fields := planSetFields(&state.Form)
			changed := 0
			for name, target := range fields {
				if cmd.Flags().Changed(name) {
					*target = *values[name]
					changed++
				}
			}
			if cmd.Flags().Changed("materials") {
				state.Form.Materials = splitList(materials)
				changed++
			}
			if changed == 0 {
				return fmt.Errorf("no fields given; see 'planfairy plan set --help'")
			}

			if err := saveState(ctx, app, state); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d field(s)\n", changed)
			return nil
		},
	}

	for name := range planSetFields(&domain.PlanForm{}) {
		v := new(string)
		values[name] = v
		cmd.Flags().StringVar(v, name, "", "Set the "+strings.ReplaceAll(name, "-", " ")+" field")
	}
	cmd.Flags().StringVar(&materials, "materials", "", "Comma-separated materials list")

	return cmd
}

func newPlanEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the plan interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Interactive() {
				return fmt.Errorf("interactive edit needs a terminal; use 'planfairy plan set' instead")
			}

			ctx := context.Background()
			state, err := loadState(ctx, app)
			if err != nil {
				return err
			}

			typeStr := string(state.Form.Type)
			if err := typeForm(&typeStr).Run(); err != nil {
				return err
			}
			if planType, err := domain.ParsePlanType(typeStr); err == nil {
				state.Form.Type = planType
				if planType == domain.PlanWeekly && len(state.Form.Days) == 0 {
					state.Form.Days = make([]domain.DaySlot, domain.MaxDaySlots)
				}
			}

			form, lists := editForm(&state.Form)
			if err := form.Run(); err != nil {
				return err
			}
			if lists != nil {
				lists.apply(&state.Form)
			}

			if err := saveState(ctx, app, state); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Plan saved.")
			return nil
		},
	}
}

func newPlanDayCmd(app *App) *cobra.Command {
	var date, topic, activities, assessment, materials, notes string

	cmd := &cobra.Command{
		Use:   "day N",
		Short: "Set one weekly day slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var n int
			if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil || n < 1 || n > domain.MaxDaySlots {
				return fmt.Errorf("day must be 1-%d", domain.MaxDaySlots)
			}

			ctx := context.Background()
			state, err := loadState(ctx, app)
			if err != nil {
				return err
			}
			if len(state.Form.Days) < domain.MaxDaySlots {
				days := make([]domain.DaySlot, domain.MaxDaySlots)
				copy(days, state.Form.Days)
				state.Form.Days = days
			}

			day := &state.Form.Days[n-1]
			if cmd.Flags().Changed("date") {
				day.Date = date
			}
			if cmd.Flags().Changed("topic") {
				day.Topic = topic
			}
			if cmd.Flags().Changed("activities") {
				day.Activities = activities
			}
			if cmd.Flags().Changed("assessment") {
				day.Assessment = assessment
			}
			if cmd.Flags().Changed("materials") {
				day.Materials = materials
			}
			if cmd.Flags().Changed("notes") {
				day.Notes = notes
			}

			if err := saveState(ctx, app, state); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Day %d updated\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&topic, "topic", "", "Day topic")
	cmd.Flags().StringVar(&activities, "activities", "", "Key activities")
	cmd.Flags().StringVar(&assessment, "assessment", "", "Assessment / exit ticket")
	cmd.Flags().StringVar(&materials, "materials", "", "Materials")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")

	return cmd
}

func newPlanResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the form and selection to a fresh state",
		Long:  "Reset the working form and selected standards to the fresh-install defaults. Drive backup settings are kept.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			state, err := loadState(ctx, app)
			if err != nil {
				return err
			}

			fresh := domain.DefaultProjectState()
			fresh.Drive = state.Drive

			if err := saveState(ctx, app, fresh); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Plan reset.")
			return nil
		},
	}
}

func newPlanWeekCmd(app *App) *cobra.Command {
	var title, objective, commonErrors, notes string

	cmd := &cobra.Command{
		Use:   "week N",
		Short: "Set one unit pacing week",
		Long:  "Set one square of the unit plan's pacing guide. The guide grows to cover N when it is shorter.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var n int
			if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil || n < 1 {
				return fmt.Errorf("week must be a positive number")
			}

			ctx := context.Background()
			state, err := loadState(ctx, app)
			if err != nil {
				return err
			}
			for len(state.Form.Weeks) < n {
				state.Form.Weeks = append(state.Form.Weeks, domain.PacingWeek{})
			}

			week := &state.Form.Weeks[n-1]
			if cmd.Flags().Changed("title") {
				week.Title = title
			}
			if cmd.Flags().Changed("objective") {
				week.Objective = objective
			}
			if cmd.Flags().Changed("errors") {
				week.CommonErrors = commonErrors
			}
			if cmd.Flags().Changed("notes") {
				week.Notes = notes
			}

			if err := saveState(ctx, app, state); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Week %d updated\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Week title")
	cmd.Flags().StringVar(&objective, "objective", "", "Week objective")
	cmd.Flags().StringVar(&commonErrors, "errors", "", "Common errors to watch for")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")

	return cmd
}

func newPlanAttachCmd(app *App) *cobra.Command {
	var day int

	cmd := &cobra.Command{
		Use:   "attach FILE",
		Short: "Attach a file to the plan",
		Long:  "Attach a file to the plan. Text content is extracted where possible and sent with remote generation requests.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := extract.FromFile(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			state, err := loadState(ctx, app)
			if err != nil {
				return err
			}

			if day > 0 {
				if day > domain.MaxDaySlots {
					return fmt.Errorf("day must be 1-%d", domain.MaxDaySlots)
				}
				if len(state.Form.Days) < domain.MaxDaySlots {
					days := make([]domain.DaySlot, domain.MaxDaySlots)
					copy(days, state.Form.Days)
					state.Form.Days = days
				}
				state.Form.Days[day-1].Attachments = append(state.Form.Days[day-1].Attachments, ref)
			} else {
				state.Form.Attachments = append(state.Form.Attachments, ref)
			}

			if err := saveState(ctx, app, state); err != nil {
				return err
			}

			note := ""
			if ref.Text == "" {
				note = formatter.Dim(" (no text extracted)")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Attached %s (%d bytes)%s\n", ref.Name, ref.Size, note)
			return nil
		},
	}

	cmd.Flags().IntVar(&day, "day", 0, "Attach to a weekly day slot (1-5) instead of the plan")

	return cmd
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
