package executor

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/TRC-Loop/mak/internal/store"
)

type testExec struct {
	ex     *Executor
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestExecutor(t *testing.T) *testExec {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &testExec{
		ex:     &Executor{Shell: "/bin/sh", Stdout: stdout, Stderr: stderr},
		stdout: stdout,
		stderr: stderr,
	}
}

func step(cmd string) store.Step {
	return store.Step{Command: cmd, Kind: store.Classify(cmd)}
}

func TestRun_EmptyChain(t *testing.T) {
	te := newTestExecutor(t)

	res, err := te.ex.Run(context.Background(), nil, ModeShell)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
	if te.stdout.Len() != 0 || te.stderr.Len() != 0 {
		t.Errorf("empty chain produced output: stdout=%q stderr=%q", te.stdout, te.stderr)
	}
}

func TestShellMode_EmitsStatefulOnly(t *testing.T) {
	te := newTestExecutor(t)

	steps := []store.Step{step("echo one"), step("cd /tmp"), step("echo two")}
	res, err := te.ex.Run(context.Background(), steps, ModeShell)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}

	// The emit protocol is bit-exact: exactly one line, no decoration.
	if got := te.stdout.String(); got != "cd /tmp\n" {
		t.Errorf("stdout = %q, want %q", got, "cd /tmp\n")
	}

	// Process output is forwarded to stderr, in order.
	errText := te.stderr.String()
	one := strings.Index(errText, "one")
	two := strings.Index(errText, "two")
	if one < 0 || two < 0 {
		t.Fatalf("stderr = %q, want both echo outputs", errText)
	}
	if one > two {
		t.Errorf("stderr = %q, outputs out of order", errText)
	}
}

func TestShellMode_FailFast(t *testing.T) {
	te := newTestExecutor(t)

	steps := []store.Step{step("exit 3"), step("cd /tmp")}
	res, err := te.ex.Run(context.Background(), steps, ModeShell)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if te.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty (stateful step after failure never ran)", te.stdout)
	}
	if len(res.Steps) != 1 {
		t.Errorf("len(Steps) = %d, want 1 (chain aborted)", len(res.Steps))
	}
}

func TestShellMode_FlushesQueuedLinesOnFailure(t *testing.T) {
	te := newTestExecutor(t)

	steps := []store.Step{step("cd /tmp"), step("exit 3")}
	res, err := te.ex.Run(context.Background(), steps, ModeShell)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	// The queued cd still reaches the shell even though the chain aborted.
	if got := te.stdout.String(); got != "cd /tmp\n" {
		t.Errorf("stdout = %q, want %q", got, "cd /tmp\n")
	}
}

func TestShellMode_EmissionOrderPreserved(t *testing.T) {
	te := newTestExecutor(t)

	steps := []store.Step{
		step("cd /tmp"),
		step("echo mid"),
		step("export FOO=1"),
	}
	res, err := te.ex.Run(context.Background(), steps, ModeShell)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "cd /tmp\nexport FOO=1\n"
	if got := te.stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if lines := EmittedLines(res); len(lines) != 2 || lines[0] != "cd /tmp" || lines[1] != "export FOO=1" {
		t.Errorf("EmittedLines = %v", lines)
	}
}

func TestDirectMode_NothingEmitted(t *testing.T) {
	te := newTestExecutor(t)

	// In direct mode the stateful step is spawned like any other; it has
	// no outer effect and nothing lands on the emission channel beyond
	// ordinary process stdout.
	steps := []store.Step{step("cd /tmp"), step("echo hi")}
	res, err := te.ex.Run(context.Background(), steps, ModeDirect)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
	if got := te.stdout.String(); got != "hi\n" {
		t.Errorf("stdout = %q, want only the echo output", got)
	}
	for _, sr := range res.Steps {
		if sr.Emitted {
			t.Errorf("step %q emitted in direct mode", sr.Step.Command)
		}
	}
}

func TestModes_AgreeOnProcessOnlyChains(t *testing.T) {
	chains := [][]store.Step{
		{step("echo ok")},
		{step("echo a"), step("echo b")},
		{step("exit 5")},
		{step("echo a"), step("exit 2"), step("echo never")},
	}

	for _, chain := range chains {
		direct := newTestExecutor(t)
		shell := newTestExecutor(t)

		dres, err := direct.ex.Run(context.Background(), chain, ModeDirect)
		if err != nil {
			t.Fatalf("direct: unexpected error: %v", err)
		}
		sres, err := shell.ex.Run(context.Background(), chain, ModeShell)
		if err != nil {
			t.Fatalf("shell: unexpected error: %v", err)
		}
		if dres.ExitCode != sres.ExitCode {
			t.Errorf("chain %v: direct exit %d != shell exit %d", chain, dres.ExitCode, sres.ExitCode)
		}
	}
}

func TestRun_CapturesOutput(t *testing.T) {
	te := newTestExecutor(t)

	res, err := te.ex.Run(context.Background(), []store.Step{step("echo captured")}, ModeShell)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(res.Steps[0].Output), "captured") {
		t.Errorf("Output = %q, want to contain 'captured'", res.Steps[0].Output)
	}
}

func TestRun_OutputTruncation(t *testing.T) {
	te := newTestExecutor(t)
	te.ex.MaxCapture = 16

	res, err := te.ex.Run(context.Background(), []store.Step{step("yes x | head -c 4096")}, ModeShell)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(res.Steps[0].Output); got > 16 {
		t.Errorf("captured %d bytes, want at most 16", got)
	}
	// Forwarding to stderr is not capped, only the capture is.
	if te.stderr.Len() < 4096 {
		t.Errorf("stderr got %d bytes, want full forward", te.stderr.Len())
	}
}

func TestRun_ShellNotFound(t *testing.T) {
	te := newTestExecutor(t)
	te.ex.Shell = "/nonexistent-shell-xyz-123"

	_, err := te.ex.Run(context.Background(), []store.Step{step("echo hi")}, ModeDirect)
	if err == nil {
		t.Fatal("expected error for missing shell binary")
	}
}

func TestDefaultShell(t *testing.T) {
	t.Setenv("SHELL", "/bin/bash")
	if got := DefaultShell(); got != "/bin/bash" {
		t.Errorf("DefaultShell() = %q, want /bin/bash", got)
	}

	t.Setenv("SHELL", "")
	if got := DefaultShell(); got != "/bin/sh" {
		t.Errorf("DefaultShell() = %q, want /bin/sh fallback", got)
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(step("cd /tmp")); got != "emit cd /tmp" {
		t.Errorf("Describe = %q, want 'emit cd /tmp'", got)
	}
	if got := Describe(step("echo hi")); got != "run echo hi" {
		t.Errorf("Describe = %q, want 'run echo hi'", got)
	}
}
