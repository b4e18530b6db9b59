package commands

import (
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/fetchlist/pkg/commands/options"
)

func New() *cobra.Command {
	ro := &options.RootOptions{}

	cmd := &cobra.Command{
		Use:   "fetchlist",
		Short: base.Wrap80("Fetch a list of records and browse it grouped by list id."),
		Long: base.Wrap80("fetchlist fetches records from one or more sources, drops the ones " +
			"without a name, and shows them grouped by list id with each list " +
			"sorted by the number in its item names. Lists can be folded."),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if termenv.EnvNoColor() {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddRootArgs(cmd, ro)
	AddCommands(cmd, ro)
	return cmd
}

func AddCommands(topLevel *cobra.Command, ro *options.RootOptions) {
	addGet(topLevel, ro)
	addUI(topLevel, ro)
	addVersion(topLevel)
}
