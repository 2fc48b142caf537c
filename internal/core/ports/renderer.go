package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for output rendering.
// It decouples telemetry collection from presentation logic.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and flush buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	// For synchronous renderers, this may return immediately.
	Wait() error

	// OnPlanEmit is called with the ordered invocations of a build before any of them runs.
	OnPlanEmit(steps []string)

	// OnTaskStart is called when an invocation begins.
	// spanID: unique identifier for this invocation
	// parentID: spanID of the enclosing span (empty if root)
	// name: human-readable step name
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskLog is called when an invocation emits output.
	// data may contain partial lines.
	OnTaskLog(spanID string, data []byte)

	// OnTaskComplete is called when an invocation finishes.
	// err is nil if successful.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
