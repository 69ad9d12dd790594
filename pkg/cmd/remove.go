package cmd

import (
	"github.com/spf13/cobra"

	log "github.com/fakemap/fakemap/internal/logging"
)

// RemoveConfig is the configuration for the remove command.
type RemoveConfig struct {
	DocumentConfig

	// All removes every entry with the key instead of the first one.
	All bool
}

func RegisterRemoveFlags(cmd *cobra.Command, config *RemoveConfig) error {
	cmd.Flags().BoolVar(&config.All, "all", false, "remove every entry with the key instead of the first one")
	return RegisterDocumentFlags(cmd, &config.DocumentConfig)
}

func NewRemoveCommand(programName string, config *RemoveConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <key> [file]",
		Short:   "remove the first entry with a key, or every entry with --all",
		Args:    cobra.RangeArgs(1, 2),
		PreRunE: DefaultPreRunE(programName),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			loaded, err := config.load(cmd, pathArg(args, 1))
			if err != nil {
				return err
			}

			removed := 0
			if config.All {
				removed = loaded.doc.RemoveAll(key)
			} else if _, ok := loaded.doc.Remove(key); ok {
				removed = 1
			}

			if removed == 0 {
				log.Warn().Str("key", key).Msg("key not found, document left unchanged")
			} else {
				log.Debug().Str("key", key).Int("removed", removed).Msg("removed entries")
			}
			return loaded.write(cmd)
		},
	}
}
