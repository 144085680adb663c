package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TRC-Loop/mak/internal/logger"
	"github.com/TRC-Loop/mak/internal/store"
)

// Flags for `mak keys add`.
var (
	keybindMacro   string // macro name the chord resolves to
	keybindCommand string // inline command the chord resolves to
	keybindForce   bool   // overwrite an existing keybind with the same chord
)

// keysCmd groups the keybind management subcommands.
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage all available keybinds in Mak",
}

// keysAddCmd binds a key chord to a macro or an inline command.
var keysAddCmd = &cobra.Command{
	Use:   "add <chord>",
	Short: "Add a new keybind",
	Long: `Bind a key-chord identifier (e.g. "ctrl+alt+m") to a target. The
target is either an existing macro (--macro) or a literal command
(--command); exactly one must be given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore(loadConfig())

		kb := store.Keybind{Chord: args[0], Macro: keybindMacro, Command: keybindCommand}
		if err := st.AddKeybind(kb, keybindForce); err != nil {
			if errors.Is(err, store.ErrConflict) {
				logger.Error("Keybind '%s' already exists (use --force to overwrite).\n", kb.Chord)
			} else {
				logger.Error("%v\n", err)
			}
			os.Exit(1)
		}
		logger.Info("Added keybind: %s\n", kb.Chord)
	},
}

// keysRemoveCmd deletes a keybind by chord.
var keysRemoveCmd = &cobra.Command{
	Use:   "remove <chord>",
	Short: "Remove a keybind",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore(loadConfig())

		if err := st.RemoveKeybind(args[0]); err != nil {
			logger.Error("%v\n", err)
			os.Exit(1)
		}
		logger.Info("Removed keybind: %s\n", args[0])
	},
}

// keysListCmd lists all registered keybinds and their targets.
var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all keybinds",
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore(loadConfig())

		keybinds, err := st.Keybinds()
		if err != nil {
			logger.Error("%v\n", err)
			os.Exit(1)
		}
		if len(keybinds) == 0 {
			logger.Warn("No keybinds found.\n")
			return
		}

		for i, kb := range keybinds {
			target := "macro " + kb.Macro
			if kb.Macro == "" {
				target = kb.Command
			}
			fmt.Printf("%3d  %-20s %s\n", i+1, kb.Chord, target)
		}
	},
}

// init sets up CLI flags and wires the keybind subcommands together.
func init() {
	keysAddCmd.Flags().StringVarP(&keybindMacro, "macro", "m", "", "Macro to bind the chord to")
	keysAddCmd.Flags().StringVarP(&keybindCommand, "command", "c", "", "Inline command to bind the chord to")
	keysAddCmd.Flags().BoolVarP(&keybindForce, "force", "f", false, "Overwrite an existing keybind")

	keysCmd.AddCommand(keysAddCmd)
	keysCmd.AddCommand(keysRemoveCmd)
	keysCmd.AddCommand(keysListCmd)
	rootCmd.AddCommand(keysCmd)
}
