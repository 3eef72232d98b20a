package cli

import (
	"punchlist-cli/internal/store"
	"punchlist-cli/internal/theme"

	"github.com/spf13/cobra"
)

func openTheme(app *App) (*theme.Store, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return nil, err
	}
	kv, err := store.Store{Dir: dir}.KV()
	if err != nil {
		return nil, err
	}
	return theme.Open(kv)
}

func newThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the light/dark theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := openTheme(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"theme": ts.Current()}})
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle",
		Short: "Flip between light and dark",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s := store.Store{Dir: dir}
			kv, err := s.KV()
			if err != nil {
				return writeErr(cmd, err)
			}
			ts, err := theme.Open(kv)
			if err != nil {
				return writeErr(cmd, err)
			}
			next, err := ts.Toggle()
			if err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("theme.toggle", "", map[string]any{"theme": next})
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"theme": next}})
		},
	}

	setCmd := func(t theme.Theme) *cobra.Command {
		return &cobra.Command{
			Use:   string(t),
			Short: "Switch to the " + string(t) + " theme",
			RunE: func(cmd *cobra.Command, args []string) error {
				ts, err := openTheme(app)
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := ts.Set(t); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"theme": t}})
			},
		}
	}

	cmd.AddCommand(toggleCmd)
	cmd.AddCommand(setCmd(theme.Light))
	cmd.AddCommand(setCmd(theme.Dark))

	return cmd
}
