// Package dispatch is the front door for running a macro or keybind:
// it resolves the name, applies trailing arguments, drives the executor
// and turns the aggregate outcome into a process exit code.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/TRC-Loop/mak/internal/executor"
	"github.com/TRC-Loop/mak/internal/logger"
	"github.com/TRC-Loop/mak/internal/store"
)

// Reserved process exit codes. Anything else is propagated verbatim
// from the first failing step.
const (
	ExitOK       = 0   // full success
	ExitFatal    = 1   // store corruption, spawn failures, other fatal errors
	ExitUsage    = 2   // bad invocation (e.g. missing placeholder arguments)
	ExitNotFound = 127 // name resolves to neither a macro nor a keybind
)

// placeholderRE matches positional placeholders like {0} inside a step.
var placeholderRE = regexp.MustCompile(`\{(\d+)\}`)

// Run resolves name against the store, applies args, executes the chain
// and returns the process exit code for the invocation.
//
// Resolution order is fixed: exact macro name first, then keybind chord.
// A keybind pointing at a macro borrows that macro's chain; a keybind
// carrying an inline command becomes a single classified step.
func Run(ctx context.Context, st *store.Store, ex *executor.Executor, name string, args []string, shellMode bool) int {
	steps, err := resolve(st, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Error("'%s' is neither a macro nor a keybind.\n", name)
			return ExitNotFound
		}
		logger.Error("%v\n", err)
		return ExitFatal
	}

	steps, err = applyArgs(steps, args)
	if err != nil {
		logger.Error("%v\n", err)
		return ExitUsage
	}

	mode := executor.ModeDirect
	if shellMode {
		mode = executor.ModeShell
	}

	logger.Debug("[DEBUG] Executing '%s' (%d steps, shell=%t)\n", name, len(steps), shellMode)
	for _, step := range steps {
		logger.Debug("[DEBUG]   %s\n", executor.Describe(step))
	}

	res, err := ex.Run(ctx, steps, mode)
	if err != nil {
		logger.Error("%v\n", err)
		return ExitFatal
	}
	return res.ExitCode
}

// resolve maps a name to its step chain: macro first, keybind second.
func resolve(st *store.Store, name string) ([]store.Step, error) {
	m, err := st.ResolveMacro(name)
	if err == nil {
		return m.Steps, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	kb, err := st.ResolveKeybind(name)
	if err != nil {
		return nil, err
	}
	if kb.Macro != "" {
		m, err := st.ResolveMacro(kb.Macro)
		if err != nil {
			return nil, fmt.Errorf("keybind %q targets %w", kb.Chord, err)
		}
		return m.Steps, nil
	}
	return []store.Step{{Command: kb.Command, Kind: store.Classify(kb.Command)}}, nil
}

// applyArgs merges trailing invocation arguments into the chain.
//
// If any step carries {N} placeholders, args substitute positionally
// across the whole chain and nothing is appended. Otherwise the chain is
// a template whose trailing args belong to the final command only, so
// they are appended verbatim to the last step. This mirrors ordinary
// alias semantics and is a fixed policy, not per-step configurable.
func applyArgs(steps []store.Step, args []string) ([]store.Step, error) {
	if len(steps) == 0 {
		return steps, nil
	}

	out := make([]store.Step, len(steps))
	copy(out, steps)

	if chainHasPlaceholders(out) {
		for i := range out {
			sub, err := substitute(out[i].Command, args)
			if err != nil {
				return nil, err
			}
			out[i].Command = sub
		}
		return out, nil
	}

	if len(args) > 0 {
		last := len(out) - 1
		out[last].Command = out[last].Command + " " + strings.Join(args, " ")
	}
	return out, nil
}

func chainHasPlaceholders(steps []store.Step) bool {
	for _, s := range steps {
		if placeholderRE.MatchString(s.Command) {
			return true
		}
	}
	return false
}

// substitute replaces every {N} in command with args[N].
func substitute(command string, args []string) (string, error) {
	var missing string
	result := placeholderRE.ReplaceAllStringFunc(command, func(match string) string {
		idx, _ := strconv.Atoi(placeholderRE.FindStringSubmatch(match)[1])
		if idx >= len(args) {
			missing = match
			return match
		}
		return args[idx]
	})
	if missing != "" {
		return "", fmt.Errorf("missing argument %s for command: %s", missing, command)
	}
	return result, nil
}
