package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/stamp/internal/adapters/artifact" //nolint:depguard // Wired in app layer
	"go.trai.ch/stamp/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/stamp/internal/adapters/linear"   //nolint:depguard // Wired in app layer
	"go.trai.ch/stamp/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/stamp/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"go.trai.ch/stamp/internal/adapters/watcher"  //nolint:depguard // Wired in app layer
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/stamp/internal/engine/fallback"
	"go.trai.ch/stamp/internal/engine/version"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			version.NodeID,
			fallback.NodeID,
			artifact.NodeID,
			manifest.NodeID,
			watcher.NodeID,
			logger.NodeID,
			linear.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[*version.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	materializer, err := graft.Dep[*fallback.Materializer](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ArtifactStore](ctx)
	if err != nil {
		return nil, err
	}

	mf, err := graft.Dep[ports.Manifest](ctx)
	if err != nil {
		return nil, err
	}

	fileWatcher, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	reporter, err := graft.Dep[ports.StepReporter](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, resolver, materializer, store, mf, fileWatcher, log, reporter), nil
}
