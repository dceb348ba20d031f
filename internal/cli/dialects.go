package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoobzio/jsonsql"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the available SQL dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			if rootOpts.Format == "json" {
				return formatter.Success(jsonsql.Dialects())
			}
			return formatter.Success(strings.Join(jsonsql.Dialects(), "\n"))
		},
	}
}
