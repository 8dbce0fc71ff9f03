package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the objcat release.
const Version = "0.1.0"

const versionCmdName = "version"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   versionCmdName,
		Short: "Print the objcat version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "objcat", Version)
		},
	}
}
