package cli

import (
	"fmt"

	"punchlist-cli/internal/docs"
	"punchlist-cli/internal/theme"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool
	var render bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show on-demand documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := docs.DefaultTopic
			if len(args) == 0 && !raw && !render {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topics": docs.Topics()}})
			}
			if len(args) > 0 {
				topic = args[0]
			}

			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `punchlist docs` to list topics)", topic))
			}

			if render {
				out, err := renderMarkdown(app, body)
				if err != nil {
					return writeErr(cmd, err)
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"topic": topic, "markdown": body}})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
	cmd.Flags().BoolVar(&render, "render", false, "Render markdown for the terminal, using the stored theme")

	return cmd
}

// renderMarkdown styles a topic with the persisted theme so `docs
// --render` matches the TUI palette.
func renderMarkdown(app *App, body string) (string, error) {
	style := "light"
	if ts, err := openTheme(app); err == nil && ts.Current() == theme.Dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(96),
	)
	if err != nil {
		return "", err
	}
	return r.Render(body)
}
