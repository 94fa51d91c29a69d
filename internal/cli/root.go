package cli

import (
	"github.com/spf13/cobra"

	"planfairy/internal/backup"
	"planfairy/internal/generate"
	"planfairy/internal/standards"
	"planfairy/internal/store"
)

// App holds references to all services used by CLI commands.
type App struct {
	Store     store.Store
	Catalog   *standards.Catalog
	Generator *generate.Service
	Backup    *backup.Service

	// IsInteractive gates the huh wizard: non-interactive runs must use
	// flags only.
	IsInteractive func() bool
}

// Interactive reports whether the wizard can run.
func (a *App) Interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "planfairy" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "planfairy",
		Short: "Standards-aligned lesson plan authoring",
	}

	root.AddCommand(
		newPlanCmd(app),
		newGenerateCmd(app),
		newStandardsCmd(app),
		newBackupCmd(app),
		newRestoreCmd(app),
	)

	return root
}
