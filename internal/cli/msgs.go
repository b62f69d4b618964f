package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Back up and restore application files through vaults"
	MsgExportShort     = "Copy context paths from home into their vaults"
	MsgImportShort     = "Restore context paths from their vaults into home"
	MsgUnitShort       = "Run one export or import with all inputs as flags"
	MsgPlanShort       = "Show the resolved paths of a context without copying"
	MsgGenConfigShort  = "Print a sample context or configuration file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgExported      = "exported"
	MsgImported      = "imported"
	MsgNothingToDo   = "Context lists no data types."
	MsgVersionFormat = "homevault version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrVaultFlag    = "invalid --vault value %q, expected TYPE=DIR"
	MsgErrOutputFormat = "invalid --format value: %w"

	// Flag descriptions
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig        = "Configuration file (default $XDG_CONFIG_HOME/homevault/config.toml)"
	MsgFlagFormat        = "Output format: auto, term or text"
	MsgFlagContext       = "Context file (.toml, .yaml, .json) or - for stdin"
	MsgFlagContextFormat = "Format of a context read from stdin or an extensionless file"
	MsgFlagHomeDir       = "Home directory (default: the current user's)"
	MsgFlagDataDir       = "Vault directory of the data data type"
	MsgFlagBinDir        = "Vault directory of the bin data type"
	MsgFlagVault         = "Vault directory of a data type as TYPE=DIR (repeatable)"
	MsgFlagOverwrite     = "Replace existing files on import"
	MsgFlagAction        = "Action to run: export or import"
	MsgFlagAppName       = "Application name, used to label logs"
	MsgFlagSettings      = "Print the configuration file instead of a sample context"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/transfer-example.txt
	msgTransferExampleRaw string
	MsgTransferExample    = strings.TrimRight(msgTransferExampleRaw, "\n")

	//go:embed msgs/unit-long.txt
	msgUnitLongRaw string
	MsgUnitLong    = strings.TrimSpace(msgUnitLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
