package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/five82/curio/internal/config"
	"github.com/five82/curio/internal/router"
)

func routeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "route <path>",
		Short: "Resolve a path to its view and props",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			match := router.New(cfg.BasePath).Resolve(args[0])

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "view:  %s\n", match.View)
			fmt.Fprintf(out, "route: %s\n", match.Name)
			fmt.Fprintf(out, "path:  %s\n", match.Path)

			keys := make([]string, 0, len(match.Params))
			for k := range match.Params {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "prop:  %s=%s\n", k, match.Params[k])
			}
			return nil
		},
	}
}
