package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/go-logr/zerologr"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/jzelinskie/cobrautil/v2/cobrazerolog"
	"github.com/rs/zerolog"

	"github.com/fakemap/fakemap/internal/logging"
)

// DocumentExample creates an example usage string with the provided program
// name.
func DocumentExample(programName string) string {
	return fmt.Sprintf(`	%[1]s:
		%[4]s convert values.yaml --to json

	%[2]s:
		%[4]s get labels values.yaml --all

	%[3]s:
		cat values.yaml | %[4]s insert team '{name: storage}' | %[4]s remove team
`,
		color.YellowString("Convert without reordering"),
		color.GreenString("Read every value of a duplicated key"),
		color.CyanString("Edit a document read from stdin"),
		programName,
	)
}

// DefaultPreRunE sets up viper and zerolog flag handling for a command.
func DefaultPreRunE(programName string) cobrautil.CobraRunFunc {
	return cobrautil.CommandStack(
		cobrautil.SyncViperDotEnvPreRunE(programName, programName+".env", zerologr.New(&logging.Logger)),
		cobrazerolog.New(
			cobrazerolog.WithTarget(func(logger zerolog.Logger) {
				logging.SetGlobalLogger(logger)
			}),
		).RunE(),
	)
}
