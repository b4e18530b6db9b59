package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/fetchlist/pkg/commands/options"
	"tableflip.dev/fetchlist/pkg/runner/get"
)

func addGet(topLevel *cobra.Command, ro *options.RootOptions) {
	oo := &options.OutputOptions{}
	io := &options.IDOptions{}
	co := &options.CollapseOptions{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Fetch once and print the grouped list.",
		Example: `
fetchlist get
fetchlist get --output table --collapse 2,3
fetchlist get --source ./hiring.json -o json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collapsed, err := co.IDs()
			if err != nil {
				return oo.HandleError(err)
			}
			s, err := setup(ro, cmd.ErrOrStderr(), collapsed)
			if err != nil {
				return oo.HandleError(err)
			}
			g := get.Get{
				Controller:  s.controller,
				Output:      oo.Output,
				ShowID:      io.ShowID,
				CollapseAll: co.CollapseAll,
				Out:         cmd.OutOrStdout(),
			}
			return oo.HandleError(g.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo, get.Formats())
	options.AddShowIDArgs(cmd, io)
	options.AddCollapseArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
