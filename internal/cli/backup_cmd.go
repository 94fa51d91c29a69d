package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"planfairy/internal/cli/formatter"
)

func newBackupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up everything to the configured drive",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Backup == nil {
				return fmt.Errorf("drive backup is not configured; set PLANFAIRY_DRIVE_CLIENT_EMAIL and PLANFAIRY_DRIVE_KEY_FILE")
			}

			ctx := context.Background()
			state, err := loadState(ctx, app)
			if err != nil {
				return err
			}

			stop := func() {}
			if app.Interactive() {
				stop = formatter.StartSpinner("Uploading backup…")
			}
			receipt, err := app.Backup.Backup(ctx, state.Drive.FolderName)
			stop()
			if err != nil {
				return err
			}

			ts := time.UnixMilli(receipt.TS).Format(time.RFC3339)
			fmt.Fprintf(cmd.OutOrStdout(), "Backed up %s (file %s, %s)\n", receipt.Name, receipt.FileID, ts)
			return nil
		},
	}

	cmd.AddCommand(newBackupFolderCmd(app), newBackupWatchCmd(app))

	return cmd
}

func newBackupWatchCmd(app *App) *cobra.Command {
	var everyMin int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Back up on a fixed interval until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Backup == nil {
				return fmt.Errorf("drive backup is not configured; set PLANFAIRY_DRIVE_CLIENT_EMAIL and PLANFAIRY_DRIVE_KEY_FILE")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			state, err := loadState(ctx, app)
			if err != nil {
				return err
			}

			interval := everyMin
			if !cmd.Flags().Changed("every") {
				interval = state.Drive.AutoEveryMin
			}
			if interval < 1 {
				return fmt.Errorf("backup interval must be at least 1 minute")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Backing up every %d minute(s); press Ctrl-C to stop\n", interval)

			ticker := time.NewTicker(time.Duration(interval) * time.Minute)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					fmt.Fprintln(cmd.OutOrStdout(), "Stopped.")
					return nil
				case <-ticker.C:
				}

				// Re-read state each tick so edits made while watching
				// land in the next backup.
				state, err := loadState(ctx, app)
				if err != nil {
					return err
				}
				receipt, err := app.Backup.Backup(ctx, state.Drive.FolderName)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "backup failed: %v\n", err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backed up %s at %s\n",
					receipt.Name, time.UnixMilli(receipt.TS).Format(time.RFC3339))
			}
		},
	}

	cmd.Flags().IntVar(&everyMin, "every", 0, "Interval in minutes (defaults to the saved setting)")

	return cmd
}

func newBackupFolderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "folder [NAME]",
		Short: "Show or set the drive backup folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			state, err := loadState(ctx, app)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				if state.Drive.FolderName == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "Backups go to the drive root.")
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Backup folder: %s\n", state.Drive.FolderName)
				}
				return nil
			}

			state.Drive.FolderName = args[0]
			state.Drive.FolderID = ""
			if err := saveState(ctx, app, state); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup folder set to %s\n", args[0])
			return nil
		},
	}
}

func newRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore everything from the most recent backup",
		Long: "Restore the project form, selection, and imported standards catalog from " +
			"the most recent drive backup. The local state is replaced wholesale.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Backup == nil {
				return fmt.Errorf("drive backup is not configured; set PLANFAIRY_DRIVE_CLIENT_EMAIL and PLANFAIRY_DRIVE_KEY_FILE")
			}

			ctx := context.Background()
			state, err := loadState(ctx, app)
			if err != nil {
				return err
			}

			stop := func() {}
			if app.Interactive() {
				stop = formatter.StartSpinner("Downloading backup…")
			}
			payload, err := app.Backup.Restore(ctx, state.Drive.FolderName)
			stop()
			if err != nil {
				return err
			}

			// The in-memory catalog must match what was just restored.
			app.Catalog.Replace(payload.StandardsDB)

			ts := time.UnixMilli(payload.TS).Format(time.RFC3339)
			fmt.Fprintf(cmd.OutOrStdout(), "Restored backup from %s\n", ts)
			return nil
		},
	}
}
