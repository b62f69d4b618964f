package cli

import (
	"fmt"

	"github.com/arthur-debert/homevault/internal/version"
	"github.com/arthur-debert/homevault/pkg/errors"
	"github.com/arthur-debert/homevault/pkg/logging"
	"github.com/arthur-debert/homevault/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Exit statuses of the homevault binary.
const (
	ExitOK         = 0
	ExitVaultError = 1
	ExitFailure    = 2
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbosity  int
	configFile string
	format     string
}

func (g *globalFlags) outputFormat() (style.Format, error) {
	f, err := style.ParseFormat(g.format)
	if err != nil {
		return style.FormatAuto, fmt.Errorf(MsgErrOutputFormat, err)
	}
	return f, nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "homevault",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&g.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetVersionTemplate(version.Info() + "\n")

	rootCmd.AddCommand(newTransferCmd(g, "export", MsgExportShort))
	rootCmd.AddCommand(newTransferCmd(g, "import", MsgImportShort))
	rootCmd.AddCommand(newUnitCmd(g))
	rootCmd.AddCommand(newPlanCmd(g))
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.GetErrorCode(err) != errors.ErrUnknown {
		return ExitVaultError
	}
	return ExitFailure
}
