package cli

import (
	"punchlist-cli/internal/store"

	"github.com/spf13/cobra"
)

func newBackupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore the whole store as one file",
	}
	cmd.AddCommand(newBackupExportCmd(app))
	cmd.AddCommand(newBackupImportCmd(app))
	return cmd
}

func newBackupExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write a bundle with items, theme, and events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s := store.Store{Dir: dir}
			b, err := s.ExportBackup()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.WriteBackupFile(args[0], b); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":   args[0],
				"items":  len(b.Collection.Items),
				"events": len(b.Events),
			}})
		},
	}
}

func newBackupImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the store state with a bundle's",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := store.ReadBackupFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s := store.Store{Dir: dir}
			if err := s.ImportBackup(b); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"restoredItems":  len(b.Collection.Items),
				"restoredEvents": len(b.Events),
			}})
		},
	}
}
