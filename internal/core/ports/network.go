package ports

import (
	"context"

	"go.trai.ch/stamp/internal/core/domain"
)

// Network performs fetches that miss the cache.
//
//go:generate mockgen -source=network.go -destination=mocks/mock_network.go -package=mocks
type Network interface {
	// Fetch performs the request. An error means no response was obtained;
	// HTTP error statuses are returned as responses.
	Fetch(ctx context.Context, req *domain.Request) (*domain.Response, error)
}
