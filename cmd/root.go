package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/TRC-Loop/mak/internal/config"
	"github.com/TRC-Loop/mak/internal/logger"
	"github.com/TRC-Loop/mak/internal/store"
)

// debug flag indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag or MAK_DEBUG_MODE.
var debug bool

// dataPath optionally overrides the datastore location for one invocation.
// It is set via the `--data` command-line flag.
var dataPath string

// rootCmd is the base command for the CLI tool `mak`.
// It sets up the root-level CLI structure and provides global flags.
var rootCmd = &cobra.Command{
	Use:   "mak",                                              // The name of the CLI tool
	Short: "Aliases, macros and advanced command-chains",      // Short description shown in help output
	Long:  "Mak - Aliases, Macros and advanced command-chains.",

	// PersistentPreRun is a hook that runs before any subcommand.
	// Here, we initialize the logger based on the debug flag.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug || config.DebugFromEnv())
	},
}

// Execute initializes flags, registers subcommands, and starts the command execution.
// It's the entry point for the CLI when invoked by the user.
func Execute() {
	// Register the global flags before any command is executed.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Override datastore file path")

	// Execute runs the appropriate subcommand or displays help if none is provided.
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads config.yaml, treating a parse failure as fatal for
// the invocation (never a silent fallback to defaults).
func loadConfig() config.Config {
	cfg, err := config.Load(config.Path())
	if err != nil {
		logger.Error("%v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openStore builds the Store for this invocation, honoring the --data
// override, then MAK_DATASTORE_NAME, then the config file.
func openStore(cfg config.Config) *store.Store {
	if dataPath != "" {
		return store.New(dataPath)
	}
	return store.New(cfg.DatastorePath())
}
