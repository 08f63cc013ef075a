package linear

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/stamp/internal/core/ports"
)

// NodeID is the unique identifier for the step reporter Graft node.
const NodeID graft.ID = "adapter.linear"

func init() {
	graft.Register(graft.Node[ports.StepReporter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StepReporter, error) {
			return NewReporter(os.Stderr), nil
		},
	})
}
