package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/stamp/internal/core/ports"
)

// NodeID is the unique identifier for the manifest Graft node.
const NodeID graft.ID = "adapter.manifest"

func init() {
	graft.Register(graft.Node[ports.Manifest]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Manifest, error) {
			return New(), nil
		},
	})
}
