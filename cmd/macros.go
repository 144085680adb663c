package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TRC-Loop/mak/internal/logger"
	"github.com/TRC-Loop/mak/internal/store"
)

// Flags for `mak maks add`.
var (
	macroSep   string // separator splitting the raw command string into steps
	macroDesc  string // optional free-form description
	macroForce bool   // overwrite an existing macro with the same name
)

// maksCmd groups the macro management subcommands.
var maksCmd = &cobra.Command{
	Use:   "maks",
	Short: "Manage all macros in Mak",
}

// maksAddCmd creates a new macro from a separator-joined command string.
var maksAddCmd = &cobra.Command{
	Use:   "add <name> <commands>",
	Short: "Create a new macro",
	Long: `Create a new macro from a command string, split into steps by the
separator (default ";"). Each step is classified automatically: commands
like cd and export become stateful steps that only take effect with
'mak run --shell' behind the shell wrapper.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore(loadConfig())

		name := store.SanitizeName(args[0])
		if name != args[0] {
			logger.Warn("Sanitized: %s -> %s\n", args[0], name)
		}

		steps := store.ParseSteps(args[1], macroSep)
		m := store.Macro{Name: name, Description: macroDesc, Steps: steps}

		if err := st.AddMacro(m, macroForce); err != nil {
			if errors.Is(err, store.ErrConflict) {
				logger.Error("Macro '%s' already exists (use --force to overwrite).\n", name)
			} else {
				logger.Error("%v\n", err)
			}
			os.Exit(1)
		}

		logger.Info("Macro '%s' added.\n", name)
		for _, s := range steps {
			logger.Debug("[DEBUG]   step (%s): %s\n", s.Kind, s.Command)
		}
	},
}

// maksRemoveCmd deletes a macro by name.
var maksRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a macro",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore(loadConfig())

		if err := st.RemoveMacro(args[0]); err != nil {
			logger.Error("%v\n", err)
			os.Exit(1)
		}
		logger.Info("Removed macro: %s\n", args[0])
	},
}

// maksListCmd lists all macros with their step chains.
var maksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all macros",
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore(loadConfig())

		macros, err := st.Macros()
		if err != nil {
			logger.Error("%v\n", err)
			os.Exit(1)
		}
		if len(macros) == 0 {
			logger.Warn("No macros found.\n")
			return
		}

		for i, m := range macros {
			commands := make([]string, len(m.Steps))
			for j, s := range m.Steps {
				commands[j] = s.Command
			}
			fmt.Printf("%3d  %-20s %s\n", i+1, m.Name, strings.Join(commands, " ; "))
			if m.Description != "" {
				fmt.Printf("     %-20s %s\n", "", m.Description)
			}
		}
	},
}

// init sets up CLI flags and wires the macro subcommands together.
func init() {
	maksAddCmd.Flags().StringVarP(&macroSep, "sep", "s", ";", "Command separator")
	maksAddCmd.Flags().StringVarP(&macroDesc, "desc", "d", "", "Macro description")
	maksAddCmd.Flags().BoolVarP(&macroForce, "force", "f", false, "Overwrite an existing macro")

	maksCmd.AddCommand(maksAddCmd)
	maksCmd.AddCommand(maksRemoveCmd)
	maksCmd.AddCommand(maksListCmd)
	rootCmd.AddCommand(maksCmd)
}
