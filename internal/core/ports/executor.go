// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/cclink/internal/core/domain"
)

// Executor defines the interface for running external compile and link commands.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the invocation to completion, streaming its output.
	//
	// A process that cannot be started yields an error tagged with domain.ErrCommandStart.
	// A process that ran but exited unsuccessfully yields an error tagged with
	// domain.ErrCommandExited, carrying the exit code as "exit_code" metadata.
	Execute(ctx context.Context, inv domain.Invocation, stdout, stderr io.Writer) error
}
