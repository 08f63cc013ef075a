package fallback

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/stamp/internal/adapters/artifact" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stamp/internal/core/ports"
)

// NodeID is the unique identifier for the fallback materializer Graft node.
const NodeID graft.ID = "engine.fallback"

func init() {
	graft.Register(graft.Node[*Materializer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{artifact.NodeID},
		Run: func(ctx context.Context) (*Materializer, error) {
			store, err := graft.Dep[ports.ArtifactStore](ctx)
			if err != nil {
				return nil, err
			}
			return NewMaterializer(store), nil
		},
	})
}
