package cli

import (
	"punchlist-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s := store.Store{Dir: dir}
			col, err := s.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			// Write the (possibly empty) snapshot so the store exists on disk.
			if err := s.Save(col); err != nil {
				return writeErr(cmd, err)
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":     dir,
					"backend": s.Backend(),
					"items":   len(col.Items),
				},
			})
		},
	}
	return cmd
}
