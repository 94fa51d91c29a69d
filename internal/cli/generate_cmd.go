package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"planfairy/internal/cli/formatter"
	"planfairy/internal/domain"
	"planfairy/internal/export"
)

func newGenerateCmd(app *App) *cobra.Command {
	var (
		useAI        bool
		outPath      string
		copyHTML     bool
		instructions string
		preview      bool
	)

	cmd := &cobra.Command{
		Use:   "generate [daily|weekly|unit]",
		Short: "Generate the plan document",
		Long: "Generate the plan document from the working form. Without --ai the plan " +
			"is rendered locally; with --ai the remote plan service is asked for a richer " +
			"fragment, falling back to the local render on failure.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			state, err := loadState(ctx, app)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				planType, err := domain.ParsePlanType(args[0])
				if err != nil {
					return err
				}
				state.Form.Type = planType
			}

			var (
				html      string
				remoteErr error
			)
			if useAI {
				stop := func() {}
				if app.Interactive() {
					stop = formatter.StartSpinner("Asking the plan service…")
				}
				result, err := app.Generator.Generate(ctx, &state.Form, state.SelectedStandards, instructions)
				stop()
				if err != nil && result.State != domain.GenDone {
					return err
				}
				html = result.HTML
				remoteErr = err
			} else {
				html, err = app.Generator.GenerateLocal(&state.Form, state.SelectedStandards)
				if err != nil {
					return err
				}
			}

			if remoteErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s remote generation failed (%v); using local render\n",
					formatter.StyleYellow.Render("warning:"), remoteErr)
			}

			if outPath != "" {
				written, err := export.WriteDoc(outPath, html)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", written)
			}
			if copyHTML {
				if err := export.CopyHTML(html); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Copied HTML to clipboard")
			}
			if preview || (outPath == "" && !copyHTML) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Header(string(state.Form.Type)+" plan"))
				fmt.Fprintln(cmd.OutOrStdout(), formatter.PreviewText(html))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&useAI, "ai", false, "Use the remote plan service")
	cmd.Flags().StringVar(&outPath, "out", "", "Write a Word-compatible .doc file to this path")
	cmd.Flags().BoolVar(&copyHTML, "copy", false, "Copy the HTML fragment to the clipboard")
	cmd.Flags().StringVar(&instructions, "instructions", "", "Extra directives for the remote plan service")
	cmd.Flags().BoolVar(&preview, "preview", false, "Print a terminal preview even when exporting")

	return cmd
}
