package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/homevault/internal/cli"
	"github.com/arthur-debert/homevault/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.NewRenderer(style.FormatAuto, os.Stderr).RenderError(err))
		os.Exit(cli.ExitCode(err))
	}
}
