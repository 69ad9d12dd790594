package cmd

import (
	"errors"

	"github.com/jzelinskie/cobrautil/v2/cobrazerolog"
	"github.com/spf13/cobra"
)

const programName = "fakemap"

// ErrParsing is returned when the command line could not be parsed. The usage
// has already been printed when it is returned.
var ErrParsing = errors.New("parsing error")

func RegisterRootFlags(cmd *cobra.Command) {
	cobrazerolog.New().RegisterFlags(cmd.PersistentFlags())
}

func NewRootCommand(programName string) *cobra.Command {
	return &cobra.Command{
		Use:           programName,
		Short:         "Edit structured documents without losing key order or duplicate keys",
		Long:          "Reads YAML, JSON and CBOR documents as ordered multimaps, so that conversions and edits keep every entry where it was.",
		Example:       DocumentExample(programName),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
}

// BuildRootCommand assembles the complete command tree used by main.
func BuildRootCommand() (*cobra.Command, error) {
	rootCmd := NewRootCommand(programName)
	RegisterRootFlags(rootCmd)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		cmd.Println(err)
		cmd.Println(cmd.UsageString())
		return ErrParsing
	})

	convertConfig := &DocumentConfig{}
	convertCmd := NewConvertCommand(programName, convertConfig)
	if err := RegisterDocumentFlags(convertCmd, convertConfig); err != nil {
		return nil, err
	}

	keysConfig := &DocumentConfig{}
	keysCmd := NewKeysCommand(programName, keysConfig)
	if err := RegisterInputFlags(keysCmd, keysConfig); err != nil {
		return nil, err
	}

	getConfig := &GetConfig{}
	getCmd := NewGetCommand(programName, getConfig)
	if err := RegisterGetFlags(getCmd, getConfig); err != nil {
		return nil, err
	}

	insertConfig := &DocumentConfig{}
	insertCmd := NewInsertCommand(programName, insertConfig)
	if err := RegisterDocumentFlags(insertCmd, insertConfig); err != nil {
		return nil, err
	}

	removeConfig := &RemoveConfig{}
	removeCmd := NewRemoveCommand(programName, removeConfig)
	if err := RegisterRemoveFlags(removeCmd, removeConfig); err != nil {
		return nil, err
	}

	versionCmd := NewVersionCommand(programName)
	RegisterVersionFlags(versionCmd)

	rootCmd.AddCommand(convertCmd, keysCmd, getCmd, insertCmd, removeCmd, versionCmd)
	return rootCmd, nil
}
