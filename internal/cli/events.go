package cli

import (
	"punchlist-cli/internal/model"
	"punchlist-cli/internal/store"

	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int
	var tail bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the local audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var evs []model.Event
			if tail {
				evs, err = store.ReadEventsTail(dir, limit)
			} else {
				evs, err = store.ReadEvents(dir, limit)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": evs})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 200, "Max events to return (0 = all)")
	cmd.Flags().BoolVar(&tail, "tail", false, "Return the newest events instead of the oldest")

	return cmd
}
