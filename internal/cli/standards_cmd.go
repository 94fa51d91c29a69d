package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"planfairy/internal/cli/formatter"
	"planfairy/internal/standards"
)

func newStandardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standards",
		Short: "Suggest, select, and manage curriculum standards",
	}

	cmd.AddCommand(
		newStandardsSuggestCmd(app),
		newStandardsAddCmd(app),
		newStandardsRemoveCmd(app),
		newStandardsListCmd(app),
		newStandardsClearCmd(app),
		newStandardsImportCmd(app),
		newStandardsExportCmd(app),
	)

	return cmd
}

func newStandardsSuggestCmd(app *App) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest standards for the current form",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(context.Background(), app)
			if err != nil {
				return err
			}

			displays := standards.Suggest(app.Catalog, catalogKey(&state.Form), suggestionCorpus(&state.Form), search)

			selected := make(map[string]bool, len(state.SelectedStandards))
			for _, s := range state.SelectedStandards {
				selected[s] = true
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSuggestions(displays, selected))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter suggestions by text or tag keywords")

	return cmd
}

func newStandardsAddCmd(app *App) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "add STANDARD",
		Short: "Add a standard to the selection",
		Long: "Add a standard to the selection. STANDARD is either a 1-based index into " +
			"the current suggestion list or a literal standard string (custom standards welcome).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			state, err := loadState(ctx, app)
			if err != nil {
				return err
			}

			displays := standards.Suggest(app.Catalog, catalogKey(&state.Form), suggestionCorpus(&state.Form), search)
			display, err := resolveDisplay(args[0], displays)
			if err != nil {
				return err
			}

			sel := standards.NewSelection(state.SelectedStandards)
			sel.Add(display)
			state.SelectedStandards = sel.Items()

			if err := saveState(ctx, app, state); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Selected %d standard(s)\n", sel.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Resolve indexes against this filtered suggestion list")

	return cmd
}

func newStandardsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove STANDARD",
		Short: "Remove a standard from the selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			state, err := loadState(ctx, app)
			if err != nil {
				return err
			}

			display, err := resolveDisplay(args[0], state.SelectedStandards)
			if err != nil {
				return err
			}

			sel := standards.NewSelection(state.SelectedStandards)
			sel.Remove(display)
			state.SelectedStandards = sel.Items()

			if err := saveState(ctx, app, state); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Selected %d standard(s)\n", sel.Len())
			return nil
		},
	}
}

func newStandardsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List selected standards",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(context.Background(), app)
			if err != nil {
				return err
			}

			if len(state.SelectedStandards) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No standards selected.")
				return nil
			}
			for i, s := range state.SelectedStandards {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i+1, s)
			}
			return nil
		},
	}
}

func newStandardsClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			state, err := loadState(ctx, app)
			if err != nil {
				return err
			}
			state.SelectedStandards = nil
			if err := saveState(ctx, app, state); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Selection cleared.")
			return nil
		},
	}
}

func newStandardsImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a standards catalog (replaces the current import)",
		Long: "Import a standards catalog from JSON. Accepts either a keyed object " +
			`{"State|Subject|GradeBand": [entries]} or a flat row list. The import replaces ` +
			"the previous catalog; a malformed file changes nothing.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading catalog file: %w", err)
			}

			parsed, err := standards.ParseDocument(data)
			if err != nil {
				return err
			}

			if err := app.Store.ReplaceCatalog(context.Background(), parsed); err != nil {
				return err
			}
			app.Catalog.Replace(parsed)

			count := 0
			for _, entries := range parsed {
				count += len(entries)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d standards across %d catalog key(s)\n", count, len(parsed))
			return nil
		},
	}
}

func newStandardsExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the imported catalog as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := standards.ExportDocument(app.Catalog.Map())
			if err != nil {
				return err
			}

			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if info, err := os.Stat(outPath); err == nil && info.IsDir() {
				outPath = filepath.Join(outPath, standards.DefaultExportName)
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("writing catalog file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Write to a file instead of stdout")

	return cmd
}
