package main

import (
	"github.com/TRC-Loop/mak/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// This design cleanly separates the CLI interface (cmd package) from main,
// allowing easier testing, extension, and reuse of the CLI commands.
//
// Mak is a macro/keybind command runner with shell-state integration:
//   - Stores named macros (ordered chains of shell commands) and keybinds
//     (key chords bound to a macro or inline command) in a JSON datastore
//     under the user config directory
//   - Runs a chain strictly in order, stopping at the first failing step
//   - Classifies each step as a plain process or as stateful (cd, export, ...);
//     in --shell mode stateful steps are not spawned but written to stdout,
//     one command per line, for the wrapper function in the user's shell rc
//     to evaluate, which is how directory and environment changes reach the
//     invoking shell across the process boundary
//   - Keeps stdout reserved for those emitted lines; every diagnostic and
//     all forwarded step output goes to stderr
//
// Error handling strategy:
//   - A name that is neither a macro nor a keybind exits with the reserved
//     code 127 without spawning anything
//   - A failing step propagates its own exit code; stateful lines queued
//     before the failure are still flushed so the shell applies them
//   - A datastore file that exists but does not parse is fatal for the
//     invocation; it is never silently replaced by an empty store
func main() {
	cmd.Execute()
}
