//go:build windows

package shell

import (
	"context"
	"io"

	"go.trai.ch/cclink/internal/core/domain"
	"go.trai.ch/zerr"
)

var errNoPTY = zerr.New("pseudo terminal unavailable")

func startPTY(_ context.Context, _ domain.Invocation, _ io.Writer) (process, error) {
	return nil, errNoPTY
}
