package rood

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner abstracts external process execution for testability.
// Arguments are always passed as a vector; no shell is involved.
type CommandRunner interface {
	// Run executes name with args and waits for it to exit.
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec, attaching the given streams.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates an ExecRunner attached to the process's standard streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes name with args.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

// exitCoder is satisfied by *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

// runCommand runs argv through runner.
// A command that ran but exited non-zero yields GeneralError(failMsg);
// any other failure (not found, not executable) yields an IOError.
func runCommand(ctx context.Context, runner CommandRunner, log *slog.Logger, category string, argv []string, failMsg string) error {
	log.Debug("exec "+strings.Join(argv, " "), LogAttrKeyCategory.Attr(category))

	err := runner.Run(ctx, argv[0], argv[1:]...)
	if err == nil {
		return nil
	}

	var ec exitCoder
	if errors.As(err, &ec) {
		log.Debug(failMsg, LogAttrKeyCategory.Attr(category), slog.Int("exit_code", ec.ExitCode()))
		return &Error{Cause: CauseGeneral, Message: failMsg, Err: err}
	}
	return IOError(err)
}
