package cli

import (
	"strconv"

	"punchlist-cli/internal/items"
	"punchlist-cli/internal/model"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Item commands",
	}

	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsShowCmd(app))
	cmd.AddCommand(newItemsEditCmd(app))
	cmd.AddCommand(newItemsDeleteCmd(app))

	return cmd
}

func parseItemID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, errBadArg("item id", arg, "a positive integer")
	}
	return id, nil
}

func newItemsAddCmd(app *App) *cobra.Command {
	var name string
	var description string
	var priority string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, _, err := openList(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, ok := model.ParsePriority(priority)
			if !ok {
				return writeErr(cmd, errBadArg("--priority", priority, "low|medium|high"))
			}

			list.Form.Name = name
			list.Form.Description = description
			list.Form.Priority = p
			it, err := list.Add()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name (min 3 characters)")
	cmd.Flags().StringVar(&description, "description", "", "Item description (min 3 characters)")
	cmd.Flags().StringVar(&priority, "priority", "low", "Priority (low|medium|high)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func newItemsListCmd(app *App) *cobra.Command {
	var filter string
	var priority string
	var query string
	var order string
	var page int
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items (filtered, sorted, paged)",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, _, err := openList(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if all {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"items": list.Items(),
					"total": list.Len(),
				}})
			}

			var mode items.FilterMode
			switch items.FilterKind(filter) {
			case items.FilterByPriority:
				p, ok := model.ParsePriority(priority)
				if !ok {
					return writeErr(cmd, errBadArg("--priority", priority, "low|medium|high"))
				}
				mode = items.ByPriority(p)
			case items.FilterByName:
				mode = items.ByName(query)
			case items.FilterByDate, "":
				o, ok := items.ParseSortOrder(order)
				if !ok {
					return writeErr(cmd, errBadArg("--order", order, "asc|desc"))
				}
				mode = items.ByDate(o)
			default:
				return writeErr(cmd, errBadArg("--filter", filter, "priority|name|date"))
			}

			v := list.View(mode, page)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"items":      v.Items,
				"page":       v.Page,
				"totalPages": v.TotalPages,
				"total":      v.Total,
				"filter":     mode.String(),
			}})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "date", "Filter mode (priority|name|date)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority to match (with --filter priority)")
	cmd.Flags().StringVar(&query, "query", "", "Name substring, case-insensitive (with --filter name)")
	cmd.Flags().StringVar(&order, "order", "asc", "Creation-date order (asc|desc, with --filter date)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number (pages hold 10 items)")
	cmd.Flags().BoolVar(&all, "all", false, "Dump the whole collection in insertion order, unpaged")

	return cmd
}

func newItemsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, _, err := openList(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseItemID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			it, ok := list.Find(id)
			if !ok {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
	return cmd
}

func newItemsEditCmd(app *App) *cobra.Command {
	var name string
	var description string
	var priority string

	cmd := &cobra.Command{
		Use:   "edit <item-id>",
		Short: "Edit an item's name, description, or priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, _, err := openList(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseItemID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !list.StartEdit(id) {
				return writeErr(cmd, errNotFound("item", args[0]))
			}

			// Flags that were not passed keep the item's current values.
			if cmd.Flags().Changed("name") {
				list.Form.Name = name
			}
			if cmd.Flags().Changed("description") {
				list.Form.Description = description
			}
			if cmd.Flags().Changed("priority") {
				p, ok := model.ParsePriority(priority)
				if !ok {
					return writeErr(cmd, errBadArg("--priority", priority, "low|medium|high"))
				}
				list.Form.Priority = p
			}

			it, err := list.Update()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name (min 3 characters)")
	cmd.Flags().StringVar(&description, "description", "", "New description (min 3 characters)")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority (low|medium|high)")

	return cmd
}

func newItemsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Delete an item (no error if the id is already gone)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, _, err := openList(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseItemID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := list.Delete(id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}
	return cmd
}
