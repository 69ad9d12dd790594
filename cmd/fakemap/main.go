package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/fakemap/fakemap/pkg/cmd"
)

func main() {
	rootCmd, err := cmd.BuildRootCommand()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("failed to build command:"), err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrParsing) {
			fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		}
		os.Exit(1)
	}
}
