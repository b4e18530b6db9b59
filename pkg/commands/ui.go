package commands

import (
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/fetchlist/pkg/commands/options"
	"tableflip.dev/fetchlist/pkg/runner/tui"
	"tableflip.dev/fetchlist/pkg/source"
)

func addUI(topLevel *cobra.Command, ro *options.RootOptions) {
	wo := &options.WatchOptions{}
	co := &options.CollapseOptions{}
	var logFile string

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive list.",
		Example: `
fetchlist ui
fetchlist ui --source ./hiring.json --watch
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if fd := os.Stdout.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
				return errors.New("ui needs an interactive terminal, use get instead")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			collapsed, err := co.IDs()
			if err != nil {
				return err
			}

			// The screen belongs to the UI, so logs go to a file or nowhere.
			var logOut io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err != nil {
					return err
				}
				defer f.Close()
				logOut = f
			}

			s, err := setup(ro, logOut, collapsed)
			if err != nil {
				return err
			}

			i := tui.UI{Controller: s.controller, CollapseAll: co.CollapseAll, Log: s.log}
			if wo.Watch {
				i.Watch = source.Files(s.src)
				if len(i.Watch) == 0 {
					return errors.New("--watch needs at least one file source")
				}
			}
			return i.Do(cmd.Context())
		},
	}

	options.AddWatchArgs(cmd, wo)
	options.AddCollapseArgs(cmd, co)
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file while the UI runs.")

	topLevel.AddCommand(cmd)
}
