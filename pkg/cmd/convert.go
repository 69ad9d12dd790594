package cmd

import (
	"github.com/spf13/cobra"

	log "github.com/fakemap/fakemap/internal/logging"
)

func NewConvertCommand(programName string, config *DocumentConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "convert [file]",
		Short:   "re-encode a document, keeping key order and duplicate keys",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: DefaultPreRunE(programName),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.load(cmd, pathArg(args, 0))
			if err != nil {
				return err
			}

			log.Info().
				Str("from", string(loaded.inputFormat)).
				Str("to", string(loaded.outputFormat)).
				Msg("converting document")
			return loaded.write(cmd)
		},
	}
}
