package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewKeysCommand(programName string, config *DocumentConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "keys [file]",
		Short:   "print the top-level keys of a document in order, one per line",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: DefaultPreRunE(programName),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.load(cmd, pathArg(args, 0))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for key := range loaded.doc.Keys() {
				if _, err := fmt.Fprintln(out, key); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
