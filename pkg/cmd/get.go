package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakemap/fakemap/internal/document"
	log "github.com/fakemap/fakemap/internal/logging"
)

// GetConfig is the configuration for the get command.
type GetConfig struct {
	DocumentConfig

	// All prints every value stored under the key as a sequence.
	All bool
}

func RegisterGetFlags(cmd *cobra.Command, config *GetConfig) error {
	cmd.Flags().BoolVar(&config.All, "all", false, "print every value of the key as a sequence instead of the first one")
	return RegisterDocumentFlags(cmd, &config.DocumentConfig)
}

func NewGetCommand(programName string, config *GetConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "get <key> [file]",
		Short:   "print the value of a top-level key",
		Args:    cobra.RangeArgs(1, 2),
		PreRunE: DefaultPreRunE(programName),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			loaded, err := config.load(cmd, pathArg(args, 1))
			if err != nil {
				return err
			}

			if !loaded.doc.Has(key) {
				log.Debug().Str("key", key).Msg("key missing from document")
				return fmt.Errorf("%w: %q", ErrKeyNotFound, key)
			}

			if config.All {
				return loaded.writeValue(cmd, document.NewValue(loaded.doc.GetAll(key)))
			}

			value, _ := loaded.doc.Get(key)
			return loaded.writeValue(cmd, value)
		},
	}
}
