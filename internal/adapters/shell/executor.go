// Package shell provides an os/exec based executor for compile and link commands.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"go.trai.ch/cclink/internal/core/domain"
	"go.trai.ch/cclink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec, optionally attached to a PTY
// so that tools keep their terminal colouring.
type Executor struct {
	usePTY bool
}

// Option configures an Executor.
type Option func(*Executor)

// WithPTY runs commands inside a pseudo terminal when one can be allocated.
// Stdout and stderr are merged in that mode.
func WithPTY(enable bool) Option {
	return func(e *Executor) {
		e.usePTY = enable
	}
}

// NewExecutor creates a new Executor.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs the invocation and waits for it to complete.
func (e *Executor) Execute(ctx context.Context, inv domain.Invocation, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	proc, err := e.start(ctx, inv, stdout, stderr)
	if err != nil {
		return domain.Tag(domain.ErrCommandStart,
			zerr.With(zerr.Wrap(err, "failed to start process"), "command", inv.Command))
	}

	if err := proc.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zerr.With(zerr.Wrap(ctxErr, "command cancelled"), "command", inv.Command)
		}

		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return domain.Tag(domain.ErrCommandExited,
			zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "command", inv.Command), "exit_code", exitCode))
	}

	return nil
}

// process is a started command.
type process interface {
	Wait() error
}

func (e *Executor) start(ctx context.Context, inv domain.Invocation, stdout, stderr io.Writer) (process, error) {
	if e.usePTY {
		proc, err := startPTY(ctx, inv, stdout)
		if !errors.Is(err, errNoPTY) {
			return proc, err
		}
	}

	cmd := command(ctx, inv)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}

func command(ctx context.Context, inv domain.Invocation) *exec.Cmd {
	cmd := exec.CommandContext(ctx, inv.Command, inv.Args...) //nolint:gosec // user provided command
	cmd.Dir = inv.Dir
	cmd.Env = os.Environ()
	return cmd
}
