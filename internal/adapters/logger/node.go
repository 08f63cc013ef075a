package logger

import (
	"context"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/grindlemire/graft"
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			var opts Options
			if err := env.Parse(&opts); err != nil {
				return nil, zerr.Wrap(err, "failed to parse logger options")
			}
			return NewWithOptions(os.Stderr, opts), nil
		},
	})
}
