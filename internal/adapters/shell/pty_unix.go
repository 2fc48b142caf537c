//go:build !windows

package shell

import (
	"context"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
	"go.trai.ch/cclink/internal/core/domain"
	"go.trai.ch/zerr"
)

var errNoPTY = zerr.New("pseudo terminal unavailable")

type ptyProcess struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	ioDone <-chan struct{}
}

func (p *ptyProcess) Wait() error {
	err := p.cmd.Wait()

	// The copy loop ends once the child side of the PTY is gone.
	<-p.ioDone
	return err
}

// startPTY starts the command with a PTY as its controlling terminal.
// It returns errNoPTY when no PTY could be opened, so the caller can fall back to pipes.
func startPTY(ctx context.Context, inv domain.Invocation, out io.Writer) (*ptyProcess, error) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return nil, errNoPTY
	}
	defer func() { _ = tty.Close() }()

	cmd := command(ctx, inv)
	cmd.Stdin = tty
	cmd.Stdout = tty
	cmd.Stderr = tty
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true, Setctty: true}

	if err := cmd.Start(); err != nil {
		_ = ptmx.Close()
		return nil, err
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		// PTY merges stdout and stderr.
		_, _ = io.Copy(out, ptmx)
	}()

	return &ptyProcess{cmd: cmd, ptmx: ptmx, ioDone: ioDone}, nil
}
