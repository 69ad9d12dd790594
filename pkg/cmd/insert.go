package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/fakemap/fakemap/internal/document"
	log "github.com/fakemap/fakemap/internal/logging"
)

func NewInsertCommand(programName string, config *DocumentConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "insert <key> <value> [file]",
		Short: "append an entry to a document",
		Long: "Appends an entry at the end of the document. An existing entry with the same key is kept, " +
			"and continues to be the one returned by get. The value is parsed as YAML, so it may be a " +
			"scalar or a flow collection such as '{a: 1}' or '[1, 2]'.",
		Args:    cobra.RangeArgs(2, 3),
		PreRunE: DefaultPreRunE(programName),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, rawValue := args[0], args[1]

			var value document.Value
			if err := yamlv3.Unmarshal([]byte(rawValue), &value); err != nil {
				return fmt.Errorf("failed to parse value for key %q: %w", key, err)
			}

			loaded, err := config.load(cmd, pathArg(args, 2))
			if err != nil {
				return err
			}

			loaded.doc.Insert(key, value)
			log.Debug().Str("key", key).Int("count", loaded.doc.CountOf(key)).Msg("inserted entry")
			return loaded.write(cmd)
		},
	}
}
