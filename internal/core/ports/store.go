package ports

import (
	"context"

	"go.trai.ch/stamp/internal/core/domain"
)

// CacheStorage is the set of named cache stores available to a worker.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStorage interface {
	// Open returns the named store, creating it when it does not exist.
	Open(ctx context.Context, name string) (Cache, error)

	// Lookup returns the named store, or nil when it does not exist.
	Lookup(ctx context.Context, name string) (Cache, error)

	// Keys returns the names of all stores in creation order.
	Keys(ctx context.Context) ([]string, error)

	// Delete removes the named store and its entries.
	// It reports whether the store existed.
	Delete(ctx context.Context, name string) (bool, error)

	// Match looks the request up in every store in creation order.
	// Returns nil, nil on a miss.
	Match(ctx context.Context, req *domain.Request) (*domain.Response, error)

	// Close releases the backing storage.
	Close() error
}

// Cache is a single named store of request/response pairs.
type Cache interface {
	// Name returns the store name.
	Name() string

	// Match returns the stored response for the request, or nil, nil on a miss.
	Match(ctx context.Context, req *domain.Request) (*domain.Response, error)

	// Put stores the response for the request, replacing any previous entry.
	Put(ctx context.Context, req *domain.Request, resp *domain.Response) error

	// PutAll stores every entry atomically.
	PutAll(ctx context.Context, entries []domain.CacheEntry) error

	// Keys returns the URLs held by the store.
	Keys(ctx context.Context) ([]string, error)
}
