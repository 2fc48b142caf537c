// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/cclink/internal/adapters/cas"
	_ "go.trai.ch/cclink/internal/adapters/config"
	_ "go.trai.ch/cclink/internal/adapters/fs"
	_ "go.trai.ch/cclink/internal/adapters/logger"
	_ "go.trai.ch/cclink/internal/adapters/shell"
	// Register app nodes.
	_ "go.trai.ch/cclink/internal/app"
)
