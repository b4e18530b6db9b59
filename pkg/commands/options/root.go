package options

import (
	"github.com/spf13/cobra"
)

// RootOptions holds the persistent flags shared by every command.
type RootOptions struct {
	ConfigFile string
	Sources    []string
	LogLevel   string
}

func AddRootArgs(cmd *cobra.Command, o *RootOptions) {
	cmd.PersistentFlags().StringVar(&o.ConfigFile, "config", "",
		"Config file (default is .fetchlist.yaml in the working or home directory).")
	cmd.PersistentFlags().StringArrayVar(&o.Sources, "source", nil,
		"Record location, a http(s) URL or a local file. Repeat to merge several sources.")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "",
		"Log level: trace, debug, info, warn, error.")
}
