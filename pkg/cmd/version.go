package cmd

import (
	"fmt"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"

	"github.com/fakemap/fakemap/internal/version"
)

func RegisterVersionFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("include-deps", false, "include versions of dependencies")
}

func NewVersionCommand(programName string) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "displays the version of " + programName,
		Args:    cobra.NoArgs,
		PreRunE: DefaultPreRunE(programName),
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.UsageVersion(programName, cobrautil.MustGetBool(cmd, "include-deps")))
			return err
		},
	}
}
