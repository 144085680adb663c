package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/TRC-Loop/mak/internal/dispatch"
	"github.com/TRC-Loop/mak/internal/executor"
)

// shellMode indicates whether stateful steps should be emitted on stdout
// for the outer shell wrapper to evaluate. Set via the `--shell` flag.
var shellMode bool

// runCmd executes a macro or keybind by name.
// Everything after the name is passed to the chain as trailing arguments.
var runCmd = &cobra.Command{
	Use:   "run <name> [args...]",
	Short: "Run a macro or keybind",
	Long: `Run a macro or keybind by name and append trailing arguments.

With --shell, stateful commands (cd, export, ...) are written to stdout
for the wrapper function installed in your shell rc to evaluate; all
other output goes to stderr. Without --shell every step runs as a child
process and directory or environment changes do not outlive the run.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		st := openStore(cfg)

		ex := &executor.Executor{
			Shell:  cfg.Shell,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		}

		code := dispatch.Run(context.Background(), st, ex, args[0], args[1:], shellMode)
		if code != 0 {
			os.Exit(code)
		}
	},
}

// init sets up CLI flags and registers the run command.
func init() {
	runCmd.Flags().BoolVar(&shellMode, "shell", false, "Emit stateful commands on stdout for the shell wrapper")

	// Flags stop being parsed after the macro name so that trailing
	// arguments like `-v` reach the chain instead of cobra.
	runCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(runCmd)
}
