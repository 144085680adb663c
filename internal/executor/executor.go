// Package executor runs a resolved step chain either directly or under
// the shell-integration contract, where stateful commands are emitted on
// stdout for the invoking shell to evaluate in its own process.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/TRC-Loop/mak/internal/logger"
	"github.com/TRC-Loop/mak/internal/store"
)

// Mode selects how a chain is executed. It is chosen once per invocation.
type Mode int

const (
	// ModeDirect spawns every step as a child process, stateful ones
	// included. A stateful step run this way has no effect outside the
	// child; that is the accepted limitation of direct mode.
	ModeDirect Mode = iota
	// ModeShell implements the --shell contract: process steps run as
	// children with their output forwarded to stderr, stateful steps are
	// buffered and finally written to stdout, one command per line, for
	// the outer wrapper to source.
	ModeShell
)

// DefaultMaxCapture bounds how much combined output is retained per step.
const DefaultMaxCapture = 1 << 20 // 1 MB

// Executor runs step chains through a shell interpreter.
// Stdout must carry nothing but emitted stateful command lines; all
// diagnostics and forwarded process output go to Stderr.
type Executor struct {
	Shell      string    // shell binary used for `-c` spawning; empty means DefaultShell()
	Stdout     io.Writer // emission channel read by the outer wrapper
	Stderr     io.Writer // diagnostics and forwarded step output
	MaxCapture int       // per-step capture cap in bytes; 0 means DefaultMaxCapture
}

// StepResult is the per-step outcome of a chain run.
type StepResult struct {
	Step     store.Step
	ExitCode int    // exit code of the spawned process; 0 for emitted steps
	Output   []byte // captured combined output (may be truncated); nil for emitted steps
	Emitted  bool   // true when the step was queued for the outer shell instead of spawned
}

// ChainResult aggregates a whole run. ExitCode is 0 iff every process
// step exited 0; otherwise it is the first failing step's code.
type ChainResult struct {
	Steps    []StepResult
	ExitCode int
}

// Success reports whether every executed process step exited 0.
func (r *ChainResult) Success() bool {
	return r.ExitCode == 0
}

// DefaultShell returns the user's shell from $SHELL, falling back to /bin/sh.
func DefaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// Run executes steps strictly in order under the given mode.
//
// The chain is fail-fast: the first process step with a non-zero exit
// aborts everything after it. In ModeShell, stateful lines buffered
// before the failure are still flushed to Stdout so the outer shell
// applies whatever state changes had already been queued. An empty
// chain succeeds with no output.
func (e *Executor) Run(ctx context.Context, steps []store.Step, mode Mode) (*ChainResult, error) {
	res := &ChainResult{}
	var emitted []string

	// Whatever happens below, the buffered stateful lines reach stdout.
	defer func() {
		if mode != ModeShell {
			return
		}
		for _, line := range emitted {
			fmt.Fprintln(e.Stdout, line)
		}
	}()

	for _, step := range steps {
		if mode == ModeShell && step.Kind == store.KindStateful {
			// Emission always "succeeds"; whether the text is valid shell
			// is only decided when the outer wrapper evaluates it.
			emitted = append(emitted, step.Command)
			res.Steps = append(res.Steps, StepResult{Step: step, Emitted: true})
			logger.Debug("[DEBUG] Queued stateful step for shell: %s\n", step.Command)
			continue
		}

		sr, err := e.spawn(ctx, step, mode)
		if err != nil {
			res.ExitCode = 1
			return res, err
		}
		res.Steps = append(res.Steps, sr)

		if sr.ExitCode != 0 {
			res.ExitCode = sr.ExitCode
			logger.Error("Command failed with code %d: %s\n", sr.ExitCode, step.Command)
			return res, nil
		}
	}

	return res, nil
}

// spawn runs a single step through `<shell> -c <command>` and waits for it.
func (e *Executor) spawn(ctx context.Context, step store.Step, mode Mode) (StepResult, error) {
	shell := e.Shell
	if shell == "" {
		shell = DefaultShell()
	}
	maxCapture := e.MaxCapture
	if maxCapture == 0 {
		maxCapture = DefaultMaxCapture
	}

	logger.Debug("[DEBUG] Running step via %s -c: %s\n", shell, step.Command)

	var capture bytes.Buffer
	limited := &limitWriter{buf: &capture, limit: maxCapture}

	cmd := exec.CommandContext(ctx, shell, "-c", step.Command)
	cmd.Stdin = os.Stdin
	if mode == ModeShell {
		// Output must be visible immediately but never land on stdout,
		// where the wrapper would evaluate it as shell source.
		cmd.Stdout = io.MultiWriter(e.Stderr, limited)
		cmd.Stderr = io.MultiWriter(e.Stderr, limited)
	} else {
		cmd.Stdout = io.MultiWriter(e.Stdout, limited)
		cmd.Stderr = io.MultiWriter(e.Stderr, limited)
	}

	runErr := cmd.Run()

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			// Shell binary not found or another exec-level failure.
			return StepResult{}, fmt.Errorf("executing %q: %w", step.Command, runErr)
		}
	}

	return StepResult{Step: step, ExitCode: exitCode, Output: capture.Bytes()}, nil
}

// limitWriter writes up to limit bytes to buf, then silently discards the rest.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil // discard
	}
	if len(p) > remaining {
		// Write only what fits, but report all bytes as consumed
		// to avoid short write errors from io.Copy.
		w.buf.Write(p[:remaining])
		return len(p), nil
	}
	return w.buf.Write(p)
}

// EmittedLines returns the stateful command lines a chain would place on
// stdout, in order. Useful for previews and tests.
func EmittedLines(res *ChainResult) []string {
	var lines []string
	for _, sr := range res.Steps {
		if sr.Emitted {
			lines = append(lines, sr.Step.Command)
		}
	}
	return lines
}

// Describe renders a one-line human summary of a step for diagnostics.
func Describe(step store.Step) string {
	kind := "run"
	if step.Kind == store.KindStateful {
		kind = "emit"
	}
	return kind + " " + strings.TrimSpace(step.Command)
}
