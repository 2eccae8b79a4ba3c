package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/curio/internal/state"
)

func showCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a single object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("%q: %w", args[0], state.ErrInvalidObjectID)
			}

			a, err := buildApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Store.Detail.FetchObject(cmd.Context(), id); err != nil {
				return err
			}
			obj, _ := a.Store.Detail.GetObject()

			out := cmd.OutOrStdout()
			if asJSON {
				var buf bytes.Buffer
				if err := json.Indent(&buf, obj.Raw, "", "  "); err != nil {
					return fmt.Errorf("format object %d: %w", id, err)
				}
				buf.WriteByte('\n')
				_, err := out.Write(buf.Bytes())
				return err
			}

			fields, err := obj.Fields()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(fields))
			for _, name := range obj.FieldNames() {
				value := obj.String(name)
				if value == "" {
					value = string(fields[name])
				}
				rows = append(rows, []string{name, value})
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("FIELD", "VALUE").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				})
			fmt.Fprintln(out, t.Render())
			printFooter(out, "%s · %s", obj.Title(), a.Router.ObjectPath(obj.ID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}
