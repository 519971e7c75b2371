package main

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dshills/ropecut/internal/app"
	"github.com/dshills/ropecut/internal/config"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configPath   string
	logLevel     string
	construction string
	validate     bool
	format       string
	digest       bool
}

var flags globalFlags

// flagSettings maps persistent flags to the settings they override.
var flagSettings = []struct {
	flag    string
	setting string
	value   func() any
}{
	{"log-level", "log.level", func() any { return flags.logLevel }},
	{"construction", "rope.construction", func() any { return flags.construction }},
	{"validate", "rope.validate", func() any { return flags.validate }},
	{"format", "output.format", func() any { return flags.format }},
	{"digest", "output.digest", func() any { return flags.digest }},
}

// initializeCommands sets up the cobra commands.
func initializeCommands() *cobra.Command {
	rootCmd := createRootCommand()

	rootCmd.AddCommand(
		createRunCommand(),
		createApplyCommand(),
		createWatchCommand(),
		createConfigCommand(),
		createVersionCommand(),
	)

	return rootCmd
}

func createRootCommand() *cobra.Command {
	flags = globalFlags{}

	cmd := &cobra.Command{
		Use:   "ropecut",
		Short: "ropecut cuts ranges out of a text and pastes them elsewhere, fast",
		Long: `ropecut applies move operations to a text. Each move (i, j, k) removes
the bytes at positions i..j and reinserts them after position k of what
remains. The text lives in a splay-tree rope, so every move costs
amortized O(log n) regardless of the size of the range.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to a TOML configuration file")
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&flags.construction, "construction", "balanced", "initial tree construction (balanced, merge)")
	pf.BoolVar(&flags.validate, "validate", false, "check tree invariants after every move")
	pf.StringVar(&flags.format, "format", "text", "output format (text, json)")
	pf.BoolVar(&flags.digest, "digest", false, "also print the xxhash64 of the result")

	return cmd
}

// loadConfig builds the configuration for cmd: defaults, the config file,
// the environment, then any flags set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	overrides := make(map[string]any)
	for _, fs := range flagSettings {
		if cmd.Flags().Changed(fs.flag) {
			overrides[fs.setting] = fs.value()
		}
	}

	return config.Load(afero.NewOsFs(), flags.configPath,
		config.WithOverrides(overrides),
		config.WithRequiredFile(flags.configPath != ""),
	)
}

// newRunner loads the configuration and builds a runner writing to the
// command's output and logging to its error stream.
func newRunner(cmd *cobra.Command) (*app.Runner, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.NewRunner(cfg,
		app.WithOutput(cmd.OutOrStdout()),
		app.WithLogger(newLogger(cfg, cmd.ErrOrStderr())),
	), nil
}

func newLogger(cfg config.Config, w io.Writer) *app.Logger {
	lc := app.DefaultLoggerConfig()
	lc.Level = app.ParseLogLevel(cfg.Log.Level)
	lc.Output = w
	return app.NewLogger(lc)
}
