package cli

import (
	"fmt"
	"os"
	"strings"

	"punchlist-cli/internal/format"
	"punchlist-cli/internal/items"
	"punchlist-cli/internal/store"
	"punchlist-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "punchlist",
		Short:        "punchlist (local-first) CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive list
  punchlist

  # Scriptable commands
  punchlist items add --name "Fix the gate latch" --description "Left post" --priority high
  punchlist items list --filter priority --priority high
  punchlist theme toggle
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("PUNCHLIST_DIR", ""), "Path to store dir (default: discovered .punchlist, else ~/.punchlist)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("PUNCHLIST_FORMAT", "json"), "Output format (json|edn)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newBackupCmd(app))

	return cmd
}

func runTUI(app *App) error {
	list, s, err := openList(app)
	if err != nil {
		return err
	}
	return tui.Run(s, list)
}

// resolveDir picks the store directory:
// 1) --dir / PUNCHLIST_DIR
// 2) global config dataDir
// 3) a .punchlist directory discovered upward from the cwd
// 4) ~/.punchlist
func resolveDir(app *App) (string, error) {
	if app.Dir != "" {
		return app.Dir, nil
	}
	if cfg, err := store.LoadConfig(); err == nil && strings.TrimSpace(cfg.DataDir) != "" {
		app.Dir = cfg.DataDir
		return app.Dir, nil
	}
	dir, err := store.DefaultDir()
	if err != nil {
		return "", err
	}
	app.Dir = dir
	return dir, nil
}

func openList(app *App) (*items.List, store.Store, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return nil, store.Store{}, err
	}
	s := store.Store{Dir: dir}
	list, err := items.Open(s)
	if err != nil {
		return nil, s, err
	}
	return list, s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	f, err := format.Parse(app.Format)
	if err != nil {
		return writeErr(cmd, err)
	}
	return format.Write(cmd.OutOrStdout(), v, f, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
