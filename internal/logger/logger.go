package logger

import (
	"github.com/fatih/color" // Colored console output for the different log levels
)

// All log output is written to stderr via color.Error. Standard output is
// reserved for the shell-integration protocol: in --shell mode the outer
// wrapper evaluates every stdout line as shell source, so a single stray
// log line on stdout would be executed as a command.

// Info logs informational messages in green color.
// Green is typically used for success or normal info to catch user attention pleasantly.
var Info = newPrintf(color.FgGreen)

// Warn logs warning messages in bright magenta color.
// Magenta is bright and stands out, signaling caution without being too alarming.
var Warn = newPrintf(color.FgHiMagenta)

// Error logs error messages in red color.
// Red is commonly associated with errors or critical problems to draw immediate attention.
var Error = newPrintf(color.FgRed)

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// This is a function variable that is assigned dynamically during Init based on the debug flag.
// When debug logging is disabled, Debug is assigned to an empty function that does nothing.
var Debug = func(format string, a ...any) {}

// newPrintf builds a printf-style function that writes colorized text to
// stderr (color.Error handles terminal detection on all platforms).
func newPrintf(attr color.Attribute) func(format string, a ...any) {
	f := color.New(attr).FprintfFunc()
	return func(format string, a ...any) {
		f(color.Error, format, a...)
	}
}

// Init initializes the logger package, specifically enabling or disabling debug logging.
// Parameters:
// - enableDebug: boolean flag to turn debug messages on or off.
// When enabled, Debug will print messages in cyan color.
// When disabled, Debug will be a no-op function that silently ignores debug logs.
func Init(enableDebug bool) {
	if enableDebug {
		// Assign Debug to print cyan-colored debug messages.
		Debug = newPrintf(color.FgCyan)
	} else {
		// Assign Debug to a no-op function that ignores all debug logs to avoid runtime overhead.
		Debug = func(format string, a ...any) {}
	}
}
