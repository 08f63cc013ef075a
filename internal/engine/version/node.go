package version

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/stamp/internal/adapters/environment" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stamp/internal/adapters/manifest"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stamp/internal/core/ports"
)

// NodeID is the unique identifier for the version resolver Graft node.
const NodeID graft.ID = "engine.version"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			environment.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			reader, err := graft.Dep[ports.Manifest](ctx)
			if err != nil {
				return nil, err
			}

			env, err := graft.Dep[ports.EnvironmentReader](ctx)
			if err != nil {
				return nil, err
			}

			return NewResolver(reader, env, clockwork.NewRealClock()), nil
		},
	})
}
