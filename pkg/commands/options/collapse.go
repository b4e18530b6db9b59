package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/fetchlist/pkg/config"
)

// CollapseOptions
type CollapseOptions struct {
	Collapse    string
	CollapseAll bool
}

func AddCollapseArgs(cmd *cobra.Command, o *CollapseOptions) {
	cmd.Flags().StringVar(&o.Collapse, "collapse", "",
		"Comma separated list ids that start collapsed, added to the configured ones.")
	cmd.Flags().BoolVar(&o.CollapseAll, "collapse-all", false,
		"Start with every list collapsed.")
}

// IDs parses --collapse.
func (o *CollapseOptions) IDs() ([]int, error) {
	return config.ParseIDs(o.Collapse)
}
