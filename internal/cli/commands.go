package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/homevault/internal/version"
	"github.com/arthur-debert/homevault/pkg/config"
	"github.com/arthur-debert/homevault/pkg/logging"
	"github.com/arthur-debert/homevault/pkg/style"
	"github.com/arthur-debert/homevault/pkg/transfer"
	"github.com/arthur-debert/homevault/pkg/unit"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// contextFlags locate the context file and the home it applies to.
type contextFlags struct {
	context       string
	contextFormat string
	homeDir       string
}

func (c *contextFlags) register(cmd *cobra.Command, homeShort string) {
	cmd.Flags().StringVar(&c.context, "context", "", MsgFlagContext)
	cmd.Flags().StringVar(&c.contextFormat, "context-format", "", MsgFlagContextFormat)
	cmd.Flags().StringVarP(&c.homeDir, "home-dir", homeShort, "", MsgFlagHomeDir)
	_ = cmd.MarkFlagRequired("context")
}

func (c *contextFlags) load(cmd *cobra.Command) (map[string]interface{}, error) {
	return config.LoadContext(c.context, c.contextFormat, cmd.InOrStdin())
}

// vaultFlags name vault directories on the command line.
type vaultFlags struct {
	dataDir   string
	binDir    string
	vaults    []string
	overwrite bool
	appName   string
}

// configOverrides turns the flags into config paths for config.Load.
func (v *vaultFlags) configOverrides(homeDir string) (map[string]interface{}, error) {
	flags := map[string]interface{}{
		"home":        homeDir,
		"app_name":    v.appName,
		"vaults.data": v.dataDir,
		"vaults.bin":  v.binDir,
	}
	for _, spec := range v.vaults {
		dataType, dir, ok := strings.Cut(spec, "=")
		if !ok || dataType == "" || dir == "" {
			return nil, fmt.Errorf(MsgErrVaultFlag, spec)
		}
		flags["vaults."+dataType] = dir
	}
	return flags, nil
}

// overwriteOption is nil unless --overwrite was given explicitly.
func (v *vaultFlags) overwriteOption(cmd *cobra.Command) *bool {
	if !cmd.Flags().Changed("overwrite") {
		return nil
	}
	value := v.overwrite
	return &value
}

func newTransferCmd(g *globalFlags, action, short string) *cobra.Command {
	var (
		cf contextFlags
		vf vaultFlags
	)

	cmd := &cobra.Command{
		Use:     action,
		Short:   short,
		Example: MsgTransferExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, g, unit.Action(action), &cf, &vf)
		},
	}

	cf.register(cmd, "H")
	cmd.Flags().StringVarP(&vf.dataDir, "dir", "d", "", MsgFlagDataDir)
	cmd.Flags().StringVarP(&vf.binDir, "bin-dir", "b", "", MsgFlagBinDir)
	cmd.Flags().StringArrayVar(&vf.vaults, "vault", nil, MsgFlagVault)
	cmd.Flags().BoolVar(&vf.overwrite, "overwrite", false, MsgFlagOverwrite)

	return cmd
}

func newUnitCmd(g *globalFlags) *cobra.Command {
	var (
		cf     contextFlags
		vf     vaultFlags
		action string
	)

	cmd := &cobra.Command{
		Use:     "unit",
		Short:   MsgUnitShort,
		Long:    MsgUnitLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := unit.ParseAction(action)
			if err != nil {
				return err
			}
			return runOperation(cmd, g, a, &cf, &vf)
		},
	}

	cf.register(cmd, "H")
	cmd.Flags().StringVarP(&action, "action", "a", "", MsgFlagAction)
	cmd.Flags().StringVarP(&vf.dataDir, "dir", "d", "", MsgFlagDataDir)
	cmd.Flags().StringVarP(&vf.binDir, "bin-dir", "b", "", MsgFlagBinDir)
	cmd.Flags().StringVarP(&vf.appName, "name", "n", "", MsgFlagAppName)
	cmd.Flags().BoolVar(&vf.overwrite, "overwrite", false, MsgFlagOverwrite)
	_ = cmd.MarkFlagRequired("action")

	return cmd
}

// runOperation loads configuration and context, runs the action and
// prints one line per data type.
func runOperation(cmd *cobra.Command, g *globalFlags, action unit.Action, cf *contextFlags, vf *vaultFlags) error {
	format, err := g.outputFormat()
	if err != nil {
		return err
	}

	overrides, err := vf.configOverrides(cf.homeDir)
	if err != nil {
		return err
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: g.configFile,
		Flags:      overrides,
	})
	if err != nil {
		return err
	}

	raw, err := cf.load(cmd)
	if err != nil {
		return err
	}

	op, err := unit.New(unit.Config{
		Home:      cfg.Home,
		Vaults:    transfer.Vaults(cfg.Vaults),
		Layout:    cfg.DatastoreLayout(),
		Overwrite: vf.overwriteOption(cmd),
		AppName:   cfg.AppName,
	})
	if err != nil {
		return err
	}

	logger := logging.GetLogger("cli")
	logger.Info().
		Str("action", string(action)).
		Str("home", op.Home()).
		Str("context", cf.context).
		Msg("Running")

	results, runErr := op.Execute(action, raw)

	verb := MsgExported
	if action == unit.ActionImport {
		verb = MsgImported
	}
	renderer := style.NewRenderer(format, os.Stdout)
	out := cmd.OutOrStdout()
	for _, res := range results {
		fmt.Fprintln(out, renderer.RenderResult(verb, res))
	}
	if runErr == nil && len(results) == 0 {
		fmt.Fprintln(out, MsgNothingToDo)
	}

	return runErr
}

// planOutput is the YAML document printed by plan.
type planOutput struct {
	Home      string       `yaml:"home"`
	Overwrite *bool        `yaml:"overwrite,omitempty"`
	DataTypes []unit.Group `yaml:"data_types"`
}

func newPlanCmd(g *globalFlags) *cobra.Command {
	var cf contextFlags

	cmd := &cobra.Command{
		Use:     "plan",
		Short:   MsgPlanShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{
				ConfigFile: g.configFile,
				Flags:      map[string]interface{}{"home": cf.homeDir},
			})
			if err != nil {
				return err
			}

			raw, err := cf.load(cmd)
			if err != nil {
				return err
			}

			op, err := unit.New(unit.Config{Home: cfg.Home})
			if err != nil {
				return err
			}

			ctx, err := op.Plan(raw)
			if err != nil {
				return err
			}

			overwrite := ctx.HomeOptions.Overwrite
			if overwrite == nil {
				overwrite = ctx.Options.Overwrite
			}
			doc := planOutput{
				Home:      op.Home(),
				Overwrite: overwrite,
				DataTypes: ctx.Groups,
			}
			if doc.DataTypes == nil {
				doc.DataTypes = []unit.Group{}
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cf.register(cmd, "H")
	return cmd
}

func newGenConfigCmd() *cobra.Command {
	var settings bool

	cmd := &cobra.Command{
		Use:     "genconfig [data-type...]",
		Short:   MsgGenConfigShort,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if settings {
				fmt.Fprint(cmd.OutOrStdout(), config.GenerateConfigContent())
				return nil
			}
			content, err := config.GenerateContext(args)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&settings, "settings", false, MsgFlagSettings)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletion(out)
			case "zsh":
				err = cmd.Root().GenZshCompletion(out)
			case "fish":
				err = cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			if err != nil {
				log.Error().Err(err).Str("shell", args[0]).Msg("Failed to generate completion")
			}
			return err
		},
	}
}
