package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/five82/curio/internal/app"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	prefsPath  string
	logLevel   string
	startPath  string
	resume     bool
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "curio",
		Short:         "Browse an objects catalogue in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: opts.configPath,
				PrefsPath:  opts.prefsPath,
				LogLevel:   opts.logLevel,
				StartPath:  opts.startPath,
				Resume:     opts.resume,
			})
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/curio/config.toml)")
	root.PersistentFlags().StringVar(&opts.prefsPath, "prefs", "", "preferences file (default ~/.config/curio/prefs.toml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.Flags().StringVar(&opts.startPath, "path", "", "initial route, e.g. /objects/list or /objects/42")
	root.Flags().BoolVar(&opts.resume, "resume", false, "start from the last visited path")

	root.AddCommand(listCmd(opts), showCmd(opts), routeCmd(opts))
	return root
}

// buildApp wires an App for a one-shot subcommand. Logs go to stderr.
func buildApp(cmd *cobra.Command, opts *rootOptions) (*app.App, error) {
	level := opts.logLevel
	if strings.TrimSpace(level) == "" {
		level = "warn"
	}
	return app.Build(app.Options{
		ConfigPath: opts.configPath,
		PrefsPath:  opts.prefsPath,
		LogLevel:   level,
		LogWriter:  cmd.ErrOrStderr(),
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Faint(true)
)

func printFooter(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, footerStyle.Render(fmt.Sprintf(format, args...)))
}
