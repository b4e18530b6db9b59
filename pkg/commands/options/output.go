package options

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	Output string
}

func AddOutputArg(cmd *cobra.Command, o *OutputOptions, formats []string) {
	cmd.Flags().StringVarP(&o.Output, "output", "o", formats[0],
		fmt.Sprintf("Output format. One of %s.", strings.Join(formats, ", ")))
}

// JSON reports whether errors should be rendered as JSON.
func (o *OutputOptions) JSON() bool {
	return strings.EqualFold(o.Output, "json")
}

func (o *OutputOptions) HandleError(err error) error {
	if o.JSON() && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
