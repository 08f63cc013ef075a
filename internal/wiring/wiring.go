// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/stamp/internal/adapters/artifact"
	_ "go.trai.ch/stamp/internal/adapters/config"
	_ "go.trai.ch/stamp/internal/adapters/environment"
	_ "go.trai.ch/stamp/internal/adapters/linear"
	_ "go.trai.ch/stamp/internal/adapters/logger"
	_ "go.trai.ch/stamp/internal/adapters/manifest"
	_ "go.trai.ch/stamp/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/stamp/internal/app"
	_ "go.trai.ch/stamp/internal/engine/fallback"
	_ "go.trai.ch/stamp/internal/engine/version"
)
