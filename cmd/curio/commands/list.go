package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/curio/internal/api"
	"github.com/five82/curio/internal/state"
)

func listCmd(root *rootOptions) *cobra.Command {
	var (
		page       int
		filterTerm string
		filterType string
		sortBy     string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of objects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.Close()

			settings := state.Settings{}.WithPage(page)
			if cmd.Flags().Changed("filter") {
				settings = settings.WithFilterTerm(filterTerm)
			}
			if cmd.Flags().Changed("type") {
				settings = settings.WithFilterType(filterType)
			}
			if cmd.Flags().Changed("sort") {
				settings = settings.WithSortBy(sortBy)
			}
			a.Store.List.ApplySettings(settings)

			if err := a.Store.List.FetchObjects(cmd.Context(), a.Store.List.GetQuery()); err != nil {
				return err
			}
			snap := a.Store.List.Snapshot()

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, struct {
					Objects    []api.Object   `json:"objects"`
					Pagination api.Pagination `json:"pagination"`
					Page       int            `json:"page"`
				}{snap.Objects, snap.Pagination, snap.CurrentPage})
			}

			if len(snap.Objects) == 0 {
				fmt.Fprintln(out, "no objects")
				return nil
			}
			fmt.Fprintln(out, objectsTable(snap.Objects).Render())
			printFooter(out, "Page %d/%d · %d objects", snap.CurrentPage, max(snap.Pagination.TotalPages, 1), snap.Pagination.TotalObjects)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&filterTerm, "filter", "", "filter term")
	cmd.Flags().StringVar(&filterType, "type", "", "filter type")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort key")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

func objectsTable(objects []api.Object) *table.Table {
	extras := extraFields(objects[0])
	headers := append([]string{"ID", "TITLE"}, extras...)

	rows := make([][]string, 0, len(objects))
	for _, obj := range objects {
		row := []string{fmt.Sprintf("%d", obj.ID), obj.Title()}
		for _, field := range extras {
			row = append(row, obj.String(field))
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// extraFields returns up to two scalar fields beyond id and title.
func extraFields(obj api.Object) []string {
	var out []string
	for _, name := range obj.FieldNames() {
		switch name {
		case "id", "title", "name", "label":
			continue
		}
		if obj.String(name) == "" {
			continue
		}
		out = append(out, name)
		if len(out) == 2 {
			break
		}
	}
	return out
}
