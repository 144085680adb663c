package store

import (
	"regexp"
	"strings"
)

// statefulBuiltins are shell builtins whose whole point is mutating the
// calling shell's own state. A child process running one of these has no
// effect on the invoker, so they must be emitted for the outer shell to
// evaluate instead of being spawned.
var statefulBuiltins = map[string]bool{
	"cd":      true,
	"export":  true,
	"unset":   true,
	"setenv":  true,
	"alias":   true,
	"unalias": true,
	"source":  true,
	".":       true,
	"pushd":   true,
	"popd":    true,
}

// assignRE matches a bare variable assignment like FOO=bar at the start
// of a command, which only takes effect in the evaluating shell.
var assignRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*=`)

// Classify tags a command line as KindStateful when its effect can only
// apply inside the invoking shell's process, and KindProcess otherwise.
// Classification looks at the first word only; a stateful builtin buried
// later in a pipeline is executed as a process (a known limitation, since
// such compounds cannot be meaningfully emitted line-by-line anyway).
func Classify(command string) StepKind {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return KindProcess
	}
	first, _, _ := strings.Cut(trimmed, " ")
	if statefulBuiltins[first] {
		return KindStateful
	}
	if assignRE.MatchString(first) {
		// FOO=bar with no following command mutates the shell; FOO=bar cmd
		// is a prefixed environment for a child and runs fine as a process.
		rest := strings.TrimSpace(strings.TrimPrefix(trimmed, first))
		if rest == "" {
			return KindStateful
		}
	}
	return KindProcess
}

// ParseSteps splits a raw command string on sep, trims each part, drops
// empties, and classifies every surviving command into a Step.
func ParseSteps(raw, sep string) []Step {
	if sep == "" {
		sep = ";"
	}
	var steps []Step
	for _, part := range strings.Split(raw, sep) {
		cmd := strings.TrimSpace(part)
		if cmd == "" {
			continue
		}
		steps = append(steps, Step{Command: cmd, Kind: Classify(cmd)})
	}
	return steps
}
